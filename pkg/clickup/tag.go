package clickup

import "fmt"

// Tag is a task tag.
type Tag struct {
	Name string `json:"name"`

	Attrs Object `json:"-"`
}

// NewTag builds a Tag from a tag object.
func NewTag(data map[string]interface{}) *Tag {
	attrs := NewObject(data, nil)
	return &Tag{Name: attrs.String("name"), Attrs: attrs}
}

func (t *Tag) String() string {
	return fmt.Sprintf("<%s.Tag '%s'>", Library, t.Name)
}
