package request

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/goclickup/goclickup/internal/domain"
	"github.com/goclickup/goclickup/internal/store"
)

// CreateTaskRequest is the body of POST list/{id}/task.
type CreateTaskRequest struct {
	Name                      string               `json:"name"`
	Content                   string               `json:"content"`
	Status                    string               `json:"status"`
	Assignees                 []int64              `json:"assignees"`
	Priority                  int                  `json:"priority"`
	DueDate                   int64                `json:"due_date"`
	Parent                    string               `json:"parent"`
	CheckRequiredCustomFields bool                 `json:"check_required_custom_fields"`
	CustomFields              []domain.CustomField `json:"custom_fields"`
}

// Validate validates the create task request.
func (r *CreateTaskRequest) Validate() []string {
	var errors []string

	if strings.TrimSpace(r.Name) == "" {
		errors = append(errors, "Task name invalid")
	}

	if r.Priority != 0 && !domain.ValidPriority(r.Priority) {
		errors = append(errors, "Priority invalid")
	}

	return errors
}

// Input converts the request into a store input.
func (r *CreateTaskRequest) Input() store.CreateTaskInput {
	return store.CreateTaskInput{
		Name:         r.Name,
		Content:      r.Content,
		Status:       r.Status,
		Assignees:    r.Assignees,
		Priority:     r.Priority,
		DueDate:      r.DueDate,
		Parent:       r.Parent,
		CustomFields: r.CustomFields,
	}
}

// AssigneeChanges lists users to add to and remove from a task.
type AssigneeChanges struct {
	Add []int64 `json:"add"`
	Rem []int64 `json:"rem"`
}

// UpdateTaskRequest is the body of PUT task/{id}. Absent fields are left
// unchanged.
type UpdateTaskRequest struct {
	Name      *string          `json:"name,omitempty"`
	Content   *string          `json:"content,omitempty"`
	Status    *string          `json:"status,omitempty"`
	Priority  *int             `json:"priority,omitempty"`
	DueDate   *int64           `json:"due_date,omitempty"`
	Assignees *AssigneeChanges `json:"assignees,omitempty"`
}

// Validate validates the update task request.
func (r *UpdateTaskRequest) Validate() []string {
	var errors []string

	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		errors = append(errors, "Task name invalid")
	}

	if r.Priority != nil && *r.Priority != 0 && !domain.ValidPriority(*r.Priority) {
		errors = append(errors, "Priority invalid")
	}

	return errors
}

// Input converts the request into a store input.
func (r *UpdateTaskRequest) Input() store.UpdateTaskInput {
	in := store.UpdateTaskInput{
		Name:     r.Name,
		Content:  r.Content,
		Status:   r.Status,
		Priority: r.Priority,
		DueDate:  r.DueDate,
	}
	if r.Assignees != nil {
		in.AddAssignees = r.Assignees.Add
		in.RemoveAssignees = r.Assignees.Rem
	}
	return in
}

// NameRequest is the body of list create and rename.
type NameRequest struct {
	Name string `json:"name"`
}

// CommentRequest is the body of POST {kind}/{id}/comment.
type CommentRequest struct {
	Content  string `json:"content"`
	Assignee *int64 `json:"assignee"`
}

// CommentUpdateRequest is the body of PUT comment/{id}.
type CommentUpdateRequest struct {
	CommentText string `json:"comment_text"`
	Assignee    *int64 `json:"assignee"`
	Resolved    bool   `json:"resolved"`
}

// DecodeJSON decodes JSON from request body into the given value.
func DecodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// ParseTaskFilter extracts the task query filters. List filters are sent
// as key[]=a,b and may also be repeated.
func ParseTaskFilter(r *http.Request, pageSize int) store.TaskFilter {
	q := r.URL.Query()

	f := store.TaskFilter{
		PageSize:      pageSize,
		OrderBy:       q.Get("order_by"),
		Reverse:       parseBool(q.Get("reverse")),
		Subtasks:      parseBool(q.Get("subtasks")),
		IncludeClosed: parseBool(q.Get("include_closed")),
		SpaceIDs:      listParam(q["space_ids[]"]),
		ProjectIDs:    listParam(q["project_ids[]"]),
		ListIDs:       listParam(q["list_ids[]"]),
		Statuses:      listParam(q["statuses[]"]),
		Assignees:     listParam(q["assignees[]"]),
		DueDateGt:     millisParam(q.Get("due_date_gt")),
		DueDateLt:     millisParam(q.Get("due_date_lt")),
		DateCreatedGt: millisParam(q.Get("date_created_gt")),
		DateCreatedLt: millisParam(q.Get("date_created_lt")),
		DateUpdatedGt: millisParam(q.Get("date_updated_gt")),
		DateUpdatedLt: millisParam(q.Get("date_updated_lt")),
	}

	if p := q.Get("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			f.Page = v
		}
	}

	return f
}

func parseBool(s string) bool {
	v, _ := strconv.ParseBool(s)
	return v
}

func listParam(values []string) []string {
	var out []string
	for _, v := range values {
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

func millisParam(s string) *int64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}
