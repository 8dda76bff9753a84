package clickup

import "fmt"

// StatusType is the semantic kind of a status.
type StatusType string

const (
	StatusTypeOpen   StatusType = "open"
	StatusTypeCustom StatusType = "custom"
	StatusTypeClosed StatusType = "closed"
)

// Status is a workflow status of a space, project or task.
type Status struct {
	Status     string     `json:"status"`
	Type       StatusType `json:"type"`
	OrderIndex int        `json:"orderindex"`
	Color      string     `json:"color"`

	// At most one of these back-references is set.
	Project *Project `json:"-"`
	Space   *Space   `json:"-"`

	Attrs  Object `json:"-"`
	client *Client
}

// NewStatus builds a Status from a status object.
func NewStatus(c *Client, data map[string]interface{}) *Status {
	attrs := NewObject(data, nil)
	return &Status{
		Status:     attrs.String("status"),
		Type:       StatusType(attrs.String("type")),
		OrderIndex: int(attrs.Int("orderindex")),
		Color:      attrs.String("color"),
		Attrs:      attrs,
		client:     c,
	}
}

// DefaultStatuses returns the five statuses a project uses when it does not
// override them. Each call returns fresh maps.
func DefaultStatuses() []map[string]interface{} {
	return []map[string]interface{}{
		{"status": "Open", "type": "open", "orderindex": 0, "color": "#d3d3d3"},
		{"status": "todo", "type": "custom", "orderindex": 1, "color": "#ff00df"},
		{"status": "in progress", "type": "custom", "orderindex": 2, "color": "#f6762b"},
		{"status": "in review", "type": "custom", "orderindex": 3, "color": "#08adff"},
		{"status": "Closed", "type": "closed", "orderindex": 4, "color": "#6bc950"},
	}
}

func (s *Status) String() string {
	return fmt.Sprintf("<%s.Status[%d] '%s'>", Library, s.OrderIndex, s.Status)
}
