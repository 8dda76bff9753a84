package clickup

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Object is a JSON object whose keys have been normalized with Snakeify.
//
// Every model keeps the full Object it was built from in its Attrs field, so
// keys without a typed field are still reachable.
type Object map[string]interface{}

// NewObject builds an Object from a decoded JSON map. Keys from data are
// normalized; extras are injected afterwards and win on collision.
//
// When two keys of data normalize to the same name, the one that was already
// snake_case wins.
func NewObject(data map[string]interface{}, extras map[string]interface{}) Object {
	obj := make(Object, len(data)+len(extras))
	for k, v := range data {
		if nk := Snakeify(k); nk != k {
			obj[nk] = v
		}
	}
	for k, v := range data {
		if Snakeify(k) == k {
			obj[k] = v
		}
	}
	for k, v := range extras {
		obj[Snakeify(k)] = v
	}
	return obj
}

// Has reports whether key is present.
func (o Object) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// Get returns the raw value for key.
func (o Object) Get(key string) (interface{}, bool) {
	v, ok := o[key]
	return v, ok
}

// Field returns the value for key, or a lookup error when the key was never
// present in the source JSON.
func (o Object) Field(key string) (interface{}, error) {
	v, ok := o[key]
	if !ok {
		return nil, newLookupError(fmt.Sprintf("field %s not present", key))
	}
	return v, nil
}

// String returns key as a string. Numbers are formatted; anything else
// yields "".
func (o Object) String(key string) string {
	return asString(o[key])
}

// Int returns key as an integer. Numeric strings are parsed; anything else
// yields 0.
func (o Object) Int(key string) int64 {
	return asInt(o[key])
}

// Bool returns key as a boolean.
func (o Object) Bool(key string) bool {
	return asBool(o[key])
}

// Map returns key as a nested JSON object, or nil.
func (o Object) Map(key string) map[string]interface{} {
	m, _ := o[key].(map[string]interface{})
	return m
}

// Slice returns key as a JSON array, or nil.
func (o Object) Slice(key string) []interface{} {
	s, _ := o[key].([]interface{})
	return s
}

// Time interprets key as a millisecond timestamp. Absent, null, zero and
// unparseable values yield nil.
func (o Object) Time(key string) *time.Time {
	ms := asInt(o[key])
	if ms == 0 {
		return nil
	}
	t := MillisToTime(ms)
	return &t
}

func asString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

func asInt(v interface{}) int64 {
	switch val := v.(type) {
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return n
		}
		if f, err := val.Float64(); err == nil {
			return int64(f)
		}
	case float64:
		return int64(val)
	case int:
		return int64(val)
	case int64:
		return val
	case string:
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return int64(f)
		}
	}
	return 0
}

func asBool(v interface{}) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		b, _ := strconv.ParseBool(val)
		return b
	case nil:
		return false
	default:
		return asInt(val) != 0
	}
}

// asMaps keeps the object elements of a JSON array.
func asMaps(items []interface{}) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]interface{}); ok {
			out = append(out, m)
		}
	}
	return out
}
