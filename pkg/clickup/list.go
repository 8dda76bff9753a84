package clickup

import (
	"context"
	"fmt"
)

// List is a ClickUp list, the container tasks are created in.
type List struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Project *Project `json:"-"`

	Attrs  Object `json:"-"`
	client *Client
}

// NewList builds a List belonging to project, which may be nil.
func NewList(c *Client, data map[string]interface{}, project *Project) *List {
	var extras map[string]interface{}
	if project != nil {
		extras = map[string]interface{}{"project": project.ID}
	}
	attrs := NewObject(data, extras)
	return &List{
		ID:      attrs.String("id"),
		Name:    attrs.String("name"),
		Project: project,
		Attrs:   attrs,
		client:  c,
	}
}

func (l *List) String() string {
	return fmt.Sprintf("<%s.List[%s] '%s'>", Library, l.ID, l.Name)
}

// Rename renames the list and, once the request succeeds, updates the local
// copy. The server state is not re-read.
func (l *List) Rename(ctx context.Context, newName string) error {
	if l.client == nil {
		return newMissingClientError("list " + l.ID)
	}
	if _, err := l.client.Put(ctx, "list/"+l.ID, APIv1, map[string]string{"name": newName}); err != nil {
		return err
	}
	l.Name = newName
	l.Attrs["name"] = newName
	return nil
}

// GetTasks fetches one page of the list's tasks.
func (l *List) GetTasks(ctx context.Context, opts ...TaskQueryOption) ([]*Task, error) {
	teamID, err := l.teamID()
	if err != nil {
		return nil, err
	}
	return l.client.GetTasks(ctx, teamID, appendOption(opts, WithListIDs(l.ID))...)
}

// GetAllTasks fetches every page of the list's tasks, up to pageLimit pages.
func (l *List) GetAllTasks(ctx context.Context, pageLimit int, opts ...TaskQueryOption) ([]*Task, error) {
	teamID, err := l.teamID()
	if err != nil {
		return nil, err
	}
	return l.client.GetAllTasks(ctx, teamID, pageLimit, appendOption(opts, WithListIDs(l.ID))...)
}

// CreateTask creates a task in this list.
func (l *List) CreateTask(ctx context.Context, name string, opts ...CreateTaskOption) (*Task, error) {
	if l.client == nil {
		return nil, newMissingClientError("list " + l.ID)
	}
	return l.client.CreateTask(ctx, l.ID, name, opts...)
}

// Comments fetches the comments posted on the list.
func (l *List) Comments(ctx context.Context) ([]*Comment, error) {
	if l.client == nil {
		return nil, newMissingClientError("list " + l.ID)
	}
	return l.client.GetComments(ctx, CommentOnList, l.ID)
}

func (l *List) teamID() (string, error) {
	if l.client == nil {
		return "", newMissingClientError("list " + l.ID)
	}
	if l.Project == nil {
		return "", newMissingParentError("list " + l.ID + " has no project")
	}
	return l.Project.teamID()
}
