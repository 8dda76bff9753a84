package clickup

import (
	"context"
	"fmt"
	"time"
)

// Priority is a task priority. Lower non-zero values are more urgent.
type Priority int

const (
	PriorityNone Priority = iota
	PriorityUrgent
	PriorityHigh
	PriorityNormal
	PriorityLow
)

func (p Priority) String() string {
	switch p {
	case PriorityNone:
		return "none"
	case PriorityUrgent:
		return "urgent"
	case PriorityHigh:
		return "high"
	case PriorityNormal:
		return "normal"
	case PriorityLow:
		return "low"
	default:
		return fmt.Sprintf("Priority(%d)", int(p))
	}
}

// ParsePriority accepts a priority name or its number.
func ParsePriority(s string) (Priority, error) {
	for p := PriorityNone; p <= PriorityLow; p++ {
		if s == p.String() || s == fmt.Sprint(int(p)) {
			return p, nil
		}
	}
	return PriorityNone, newInvalidArgumentError(fmt.Sprintf("unknown priority %q", s))
}

// Task is a ClickUp task.
type Task struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Content     string     `json:"content,omitempty"`
	Creator     *User      `json:"creator,omitempty"`
	Status      *Status    `json:"status,omitempty"`
	Tags        []*Tag     `json:"tags"`
	Assignees   []*User    `json:"assignees"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	DateCreated *time.Time `json:"date_created,omitempty"`
	DateUpdated *time.Time `json:"date_updated,omitempty"`
	DateClosed  *time.Time `json:"date_closed,omitempty"`

	Attrs  Object `json:"-"`
	client *Client
}

// NewTask builds a Task. The priority arrives either as a number or as an
// object carrying an "id".
func NewTask(c *Client, data map[string]interface{}) *Task {
	attrs := NewObject(data, nil)
	t := &Task{
		ID:          attrs.String("id"),
		Name:        attrs.String("name"),
		Content:     attrs.String("content"),
		DueDate:     attrs.Time("due_date"),
		StartDate:   attrs.Time("start_date"),
		DateCreated: attrs.Time("date_created"),
		DateUpdated: attrs.Time("date_updated"),
		DateClosed:  attrs.Time("date_closed"),
		Attrs:       attrs,
		client:      c,
	}

	if creator := attrs.Map("creator"); creator != nil {
		t.Creator = NewUser(c, creator)
	}
	if status := attrs.Map("status"); status != nil {
		t.Status = NewStatus(c, status)
	}

	tags := asMaps(attrs.Slice("tags"))
	t.Tags = make([]*Tag, 0, len(tags))
	for _, tag := range tags {
		t.Tags = append(t.Tags, NewTag(tag))
	}

	assignees := asMaps(attrs.Slice("assignees"))
	t.Assignees = make([]*User, 0, len(assignees))
	for _, a := range assignees {
		t.Assignees = append(t.Assignees, NewUser(c, a))
	}

	if p := attrs.Map("priority"); p != nil {
		t.Priority = Priority(asInt(p["id"]))
	} else {
		t.Priority = Priority(attrs.Int("priority"))
	}

	return t
}

func (t *Task) String() string {
	return fmt.Sprintf("<%s.Task[%s] '%s'>", Library, t.ID, t.Name)
}

// Update sends a partial update. Only the supplied fields are sent; the
// assignee add/remove lists are always present. The local copy is not
// modified.
func (t *Task) Update(ctx context.Context, opts ...UpdateTaskOption) error {
	if t.client == nil {
		return newMissingClientError("task " + t.ID)
	}
	return t.client.updateTask(ctx, t.ID, opts...)
}

// Delete deletes the task and reports whether the API accepted it.
func (t *Task) Delete(ctx context.Context) bool {
	if t.client == nil {
		return false
	}
	return t.client.DeleteTask(ctx, t.ID)
}

// Members fetches the users with access to the task.
func (t *Task) Members(ctx context.Context) ([]*User, error) {
	if t.client == nil {
		return nil, newMissingClientError("task " + t.ID)
	}
	return t.client.taskMembers(ctx, t.ID)
}

// Comments fetches the task's comments.
func (t *Task) Comments(ctx context.Context) ([]*Comment, error) {
	if t.client == nil {
		return nil, newMissingClientError("task " + t.ID)
	}
	return t.client.GetComments(ctx, CommentOnTask, t.ID)
}

// AddComment posts a comment on the task. assignee may be nil.
func (t *Task) AddComment(ctx context.Context, text string, assignee Assignee) (*Comment, error) {
	if t.client == nil {
		return nil, newMissingClientError("task " + t.ID)
	}
	return t.client.CreateComment(ctx, CommentOnTask, t.ID, text, assignee)
}
