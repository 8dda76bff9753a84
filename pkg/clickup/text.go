package clickup

import (
	"regexp"
	"strings"
	"time"
)

var (
	firstCap = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	allCap   = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// Snakeify converts a camelCase or PascalCase identifier to snake_case.
//
// An acronym followed by a capitalized word gets a single separator, so
// "URLPath" becomes "url_path". Input that is already snake_case is returned
// unchanged.
func Snakeify(text string) string {
	s := firstCap.ReplaceAllString(text, "${1}_${2}")
	s = allCap.ReplaceAllString(s, "${1}_${2}")
	return strings.ToLower(s)
}

// MillisToTime converts a POSIX timestamp in milliseconds to a UTC time,
// truncated to whole seconds.
func MillisToTime(ms int64) time.Time {
	return time.Unix(ms/1000, 0).UTC()
}

// TimeToMillis converts t to a POSIX timestamp in milliseconds.
func TimeToMillis(t time.Time) int64 {
	return t.UnixMilli()
}
