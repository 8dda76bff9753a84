package clickup

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

// NoPageLimit makes GetAllTasks fetch until the first empty page.
const NoPageLimit = -1

// DefaultTaskStatus is the status given to tasks created without WithStatus.
const DefaultTaskStatus = "Open"

// CustomFieldValue sets one custom field on task creation.
type CustomFieldValue struct {
	ID    string      `json:"id"`
	Value interface{} `json:"value"`
}

// createTaskRequest is the JSON body of POST list/{id}/task.
type createTaskRequest struct {
	Name                      string             `json:"name"`
	Content                   string             `json:"content"`
	Status                    string             `json:"status"`
	Assignees                 []int64            `json:"assignees,omitempty"`
	Priority                  Priority           `json:"priority,omitempty"`
	DueDate                   int64              `json:"due_date,omitempty"`
	Parent                    string             `json:"parent,omitempty"`
	CheckRequiredCustomFields bool               `json:"check_required_custom_fields"`
	CustomFields              []CustomFieldValue `json:"custom_fields"`
}

// assigneeChanges always serializes both lists, empty or not.
type assigneeChanges struct {
	Add []int64 `json:"add"`
	Rem []int64 `json:"rem"`
}

// updateTaskRequest is the JSON body of PUT task/{id}. Zero values are
// omitted so only the fields the caller supplied are sent.
type updateTaskRequest struct {
	Assignees assigneeChanges `json:"assignees"`
	Name      string          `json:"name,omitempty"`
	Content   string          `json:"content,omitempty"`
	Status    string          `json:"status,omitempty"`
	Priority  Priority        `json:"priority,omitempty"`
	DueDate   int64           `json:"due_date,omitempty"`
}

// GetTasks fetches one page of a team's tasks. A response without a tasks
// array yields an empty slice.
func (c *Client) GetTasks(ctx context.Context, teamID string, opts ...TaskQueryOption) ([]*Task, error) {
	q := newTaskQuery(opts...)
	path := "team/" + teamID + "/task?" + q.encode()

	data, ok, err := c.getObject(ctx, path, APIv1)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []*Task{}, nil
	}

	raw := asMaps(Object(data).Slice("tasks"))
	tasks := make([]*Task, 0, len(raw))
	for _, t := range raw {
		tasks = append(tasks, NewTask(c, t))
	}
	return tasks, nil
}

// GetAllTasks fetches pages 0, 1, 2, ... sequentially and concatenates them,
// stopping at the first empty page or after pageLimit pages. Any negative
// pageLimit (see NoPageLimit) means no cap. A failed page aborts the whole
// call.
func (c *Client) GetAllTasks(ctx context.Context, teamID string, pageLimit int, opts ...TaskQueryOption) ([]*Task, error) {
	tasks := []*Task{}
	pageCount := 0

	page, err := c.GetTasks(ctx, teamID, withPage(opts, pageCount)...)
	if err != nil {
		return nil, err
	}
	for len(page) > 0 && (pageLimit < 0 || pageCount < pageLimit) {
		tasks = append(tasks, page...)
		pageCount++

		page, err = c.GetTasks(ctx, teamID, withPage(opts, pageCount)...)
		if err != nil {
			return nil, err
		}
	}
	return tasks, nil
}

func withPage(opts []TaskQueryOption, page int) []TaskQueryOption {
	return appendOption(opts, WithPage(page))
}

// appendOption copies opts before appending so the caller's slice is never
// written to.
func appendOption(opts []TaskQueryOption, extra TaskQueryOption) []TaskQueryOption {
	out := make([]TaskQueryOption, 0, len(opts)+1)
	out = append(out, opts...)
	return append(out, extra)
}

// CreateTask creates a task in the given list and returns the task the API
// echoes back.
func (c *Client) CreateTask(ctx context.Context, listID, name string, opts ...CreateTaskOption) (*Task, error) {
	options := defaultCreateTaskOptions()
	for _, opt := range opts {
		opt(options)
	}

	body := createTaskRequest{
		Name:                      name,
		Content:                   options.content,
		Status:                    options.status,
		DueDate:                   options.dueDate,
		Parent:                    options.parent,
		CheckRequiredCustomFields: options.checkRequiredCustomFields,
		CustomFields:              options.customFields,
	}
	if len(options.assignees) > 0 {
		body.Assignees = assigneeIDs(options.assignees)
	}
	if options.priority > PriorityNone {
		body.Priority = options.priority
	}

	out, err := c.Post(ctx, "list/"+listID+"/task", APIv1, body)
	if err != nil {
		return nil, err
	}
	data, ok := out.(map[string]interface{})
	if !ok {
		return nil, newRemoteError(http.StatusOK, "invalid response while creating task", nil)
	}
	return NewTask(c, data), nil
}

// updateTask issues PUT task/{id}.
func (c *Client) updateTask(ctx context.Context, taskID string, opts ...UpdateTaskOption) error {
	options := &updateTaskOptions{}
	for _, opt := range opts {
		opt(options)
	}

	body := updateTaskRequest{
		Assignees: assigneeChanges{
			Add: assigneeIDs(options.addAssignees),
			Rem: assigneeIDs(options.removeAssignees),
		},
		Name:    options.name,
		Content: options.content,
		Status:  options.status,
		DueDate: options.dueDate,
	}
	if options.priority > PriorityNone {
		body.Priority = options.priority
	}

	_, err := c.Put(ctx, "task/"+taskID, APIv1, body)
	return err
}

// GetTask fetches a single task by id (API v2).
func (c *Client) GetTask(ctx context.Context, id string) (*Task, error) {
	data, ok, err := c.getObject(ctx, "task/"+id, APIv2)
	if err != nil {
		return nil, err
	}
	if !ok || len(data) == 0 {
		return nil, newLookupError(fmt.Sprintf("task %s not found", id))
	}
	return NewTask(c, data), nil
}

// DeleteTask deletes a task by id (API v2). Failures are logged at debug
// level and reported as false.
func (c *Client) DeleteTask(ctx context.Context, id string) bool {
	if _, err := c.Delete(ctx, "task/"+id, APIv2); err != nil {
		c.logger.Debug("failed to delete task", "id", id, "error", err)
		return false
	}
	return true
}

// taskMembers fetches the users with access to a task (API v2).
func (c *Client) taskMembers(ctx context.Context, taskID string) ([]*User, error) {
	data, ok, err := c.getObject(ctx, "task/"+taskID+"/member", APIv2)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, newRemoteError(http.StatusOK, "invalid response while looking up task members", nil)
	}

	raw := asMaps(Object(data).Slice("members"))
	members := make([]*User, 0, len(raw))
	for _, m := range raw {
		members = append(members, NewUser(c, m))
	}
	return members, nil
}

func assigneeIDs(assignees []Assignee) []int64 {
	ids := make([]int64, 0, len(assignees))
	for _, a := range assignees {
		if a != nil {
			ids = append(ids, a.AssigneeID())
		}
	}
	return ids
}

func assigneeIDStrings(assignees []Assignee) []string {
	ids := assigneeIDs(assignees)
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = strconv.FormatInt(id, 10)
	}
	return out
}
