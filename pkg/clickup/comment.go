package clickup

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// CommentTarget is the kind of object a comment is attached to.
type CommentTarget string

const (
	CommentOnTask CommentTarget = "task"
	CommentOnList CommentTarget = "list"
	CommentOnView CommentTarget = "view"
)

func (k CommentTarget) valid() bool {
	switch k {
	case CommentOnTask, CommentOnList, CommentOnView:
		return true
	}
	return false
}

// Comment is a comment on a task, list or view.
type Comment struct {
	ID       string     `json:"id"`
	Text     string     `json:"comment_text"`
	User     *User      `json:"user,omitempty"`
	Assignee *User      `json:"assignee,omitempty"`
	Resolved bool       `json:"resolved"`
	Date     *time.Time `json:"date,omitempty"`

	Attrs  Object `json:"-"`
	client *Client
}

// NewComment builds a Comment.
func NewComment(c *Client, data map[string]interface{}) *Comment {
	attrs := NewObject(data, nil)
	cm := &Comment{
		ID:       attrs.String("id"),
		Text:     attrs.String("comment_text"),
		Resolved: attrs.Bool("resolved"),
		Date:     attrs.Time("date"),
		Attrs:    attrs,
		client:   c,
	}
	if u := attrs.Map("user"); u != nil {
		cm.User = NewUser(c, u)
	}
	if a := attrs.Map("assignee"); a != nil {
		cm.Assignee = NewUser(c, a)
	}
	return cm
}

func (cm *Comment) String() string {
	return fmt.Sprintf("<%s.Comment[%s] '%s'>", Library, cm.ID, cm.Text)
}

type commentRequest struct {
	Assignee *int64 `json:"assignee"`
	Content  string `json:"content"`
}

type commentUpdateRequest struct {
	CommentText string `json:"comment_text"`
	Assignee    *int64 `json:"assignee"`
	Resolved    bool   `json:"resolved"`
}

func assigneeIDPtr(a Assignee) *int64 {
	if a == nil {
		return nil
	}
	if u, ok := a.(*User); ok && u == nil {
		return nil
	}
	id := a.AssigneeID()
	return &id
}

// assigneeUser is the local view of an assignee after an update. A bare
// UserID becomes a User with only the id set.
func assigneeUser(a Assignee) *User {
	switch v := a.(type) {
	case nil:
		return nil
	case *User:
		return v
	default:
		return &User{ID: v.AssigneeID()}
	}
}

// CreateComment posts a comment on the target kind/id (API v2). assignee may
// be nil.
func (c *Client) CreateComment(ctx context.Context, kind CommentTarget, id, text string, assignee Assignee) (*Comment, error) {
	if !kind.valid() {
		return nil, newInvalidArgumentError(fmt.Sprintf("unsupported comment target %q", kind))
	}

	body := commentRequest{Assignee: assigneeIDPtr(assignee), Content: text}
	out, err := c.Post(ctx, string(kind)+"/"+id+"/comment", APIv2, body)
	if err != nil {
		return nil, err
	}
	data, ok := out.(map[string]interface{})
	if !ok {
		return nil, newRemoteError(http.StatusOK, "invalid response while creating comment", nil)
	}

	cm := NewComment(c, data)
	if cm.Text == "" {
		cm.Text = text
		cm.Attrs["comment_text"] = text
	}
	return cm, nil
}

// GetComments fetches the comments on the target kind/id (API v2).
func (c *Client) GetComments(ctx context.Context, kind CommentTarget, id string) ([]*Comment, error) {
	if !kind.valid() {
		return nil, newInvalidArgumentError(fmt.Sprintf("unsupported comment target %q", kind))
	}

	data, ok, err := c.getObject(ctx, string(kind)+"/"+id+"/comment", APIv2)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, newRemoteError(http.StatusOK, "invalid response while looking up comments", nil)
	}

	raw := asMaps(Object(data).Slice("comments"))
	comments := make([]*Comment, 0, len(raw))
	for _, cm := range raw {
		comments = append(comments, NewComment(c, cm))
	}
	return comments, nil
}

// DeleteComment deletes a comment by id. Failures are logged at debug level
// and reported as false.
func (c *Client) DeleteComment(ctx context.Context, id string) bool {
	if _, err := c.Delete(ctx, "comment/"+id, APIv2); err != nil {
		c.logger.Debug("failed to delete comment", "id", id, "error", err)
		return false
	}
	return true
}

// Update replaces the comment's text, assignee and resolved flag, then
// patches the local copy.
func (cm *Comment) Update(ctx context.Context, text string, assignee Assignee, resolved bool) error {
	if cm.client == nil {
		return newMissingClientError("comment " + cm.ID)
	}

	body := commentUpdateRequest{CommentText: text, Assignee: assigneeIDPtr(assignee), Resolved: resolved}
	if _, err := cm.client.Put(ctx, "comment/"+cm.ID, APIv2, body); err != nil {
		return err
	}

	cm.Text = text
	cm.Resolved = resolved
	cm.Attrs["comment_text"] = text
	cm.Attrs["resolved"] = resolved
	cm.Assignee = assigneeUser(assignee)
	return nil
}

// Delete deletes the comment.
func (cm *Comment) Delete(ctx context.Context) bool {
	if cm.client == nil {
		return false
	}
	return cm.client.DeleteComment(ctx, cm.ID)
}
