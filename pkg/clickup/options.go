package clickup

import (
	"log/slog"
	"net/http"
	"time"
)

// ClientOption configures a Client.
type ClientOption func(*clientConfig)

type clientConfig struct {
	apiURL     string
	apiV2URL   string
	cache      bool
	debug      bool
	userAgent  string
	logger     *slog.Logger
	httpClient *http.Client
	timeout    time.Duration
}

func defaultConfig() *clientConfig {
	return &clientConfig{
		apiURL:    DefaultAPIURL,
		apiV2URL:  DefaultAPIV2URL,
		cache:     true,
		userAgent: DefaultUserAgent,
	}
}

// WithAPIURL overrides the v1 base URL, e.g. to point at a test double.
func WithAPIURL(url string) ClientOption {
	return func(c *clientConfig) {
		c.apiURL = url
	}
}

// WithAPIV2URL overrides the v2 base URL.
func WithAPIV2URL(url string) ClientOption {
	return func(c *clientConfig) {
		c.apiV2URL = url
	}
}

// WithCache enables or disables memoization of users, teams, spaces and
// projects. With caching disabled every accessor refetches.
func WithCache(enabled bool) ClientOption {
	return func(c *clientConfig) {
		c.cache = enabled
	}
}

// WithDebug logs every request line to standard output unless a logger was
// supplied with WithLogger.
func WithDebug(enabled bool) ClientOption {
	return func(c *clientConfig) {
		c.debug = enabled
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *clientConfig) {
		c.userAgent = ua
	}
}

// WithLogger sets the logger used for request and failure diagnostics.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithHTTPClient sets the underlying HTTP client. WithTimeout is ignored
// when this is set.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *clientConfig) {
		c.httpClient = hc
	}
}

// WithTimeout sets an HTTP timeout. The default is no timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// CreateTaskOption configures a CreateTask call.
type CreateTaskOption func(*createTaskOptions)

type createTaskOptions struct {
	content                   string
	status                    string
	assignees                 []Assignee
	priority                  Priority
	dueDate                   int64
	parent                    string
	customFields              []CustomFieldValue
	checkRequiredCustomFields bool
}

func defaultCreateTaskOptions() *createTaskOptions {
	return &createTaskOptions{
		status:       DefaultTaskStatus,
		customFields: []CustomFieldValue{},
	}
}

// WithContent sets the task description.
func WithContent(content string) CreateTaskOption {
	return func(o *createTaskOptions) {
		o.content = content
	}
}

// WithStatus sets the initial status. It must match one of the list's
// statuses; the default is "Open".
func WithStatus(status string) CreateTaskOption {
	return func(o *createTaskOptions) {
		o.status = status
	}
}

// WithAssignees assigns users by id or *User.
func WithAssignees(assignees ...Assignee) CreateTaskOption {
	return func(o *createTaskOptions) {
		o.assignees = append(o.assignees, assignees...)
	}
}

// WithPriority sets the priority. PriorityNone is not sent.
func WithPriority(priority Priority) CreateTaskOption {
	return func(o *createTaskOptions) {
		o.priority = priority
	}
}

// WithDueDate sets the due date.
func WithDueDate(t time.Time) CreateTaskOption {
	return func(o *createTaskOptions) {
		o.dueDate = TimeToMillis(t)
	}
}

// WithDueDateMillis sets the due date as a POSIX timestamp in milliseconds.
func WithDueDateMillis(ms int64) CreateTaskOption {
	return func(o *createTaskOptions) {
		o.dueDate = ms
	}
}

// WithParent creates the task as a subtask of the given task id.
func WithParent(taskID string) CreateTaskOption {
	return func(o *createTaskOptions) {
		o.parent = taskID
	}
}

// WithCustomField sets a custom field value on the new task.
func WithCustomField(id string, value interface{}) CreateTaskOption {
	return func(o *createTaskOptions) {
		o.customFields = append(o.customFields, CustomFieldValue{ID: id, Value: value})
	}
}

// WithCheckRequiredCustomFields asks the API to reject the task if a
// required custom field is missing.
func WithCheckRequiredCustomFields(check bool) CreateTaskOption {
	return func(o *createTaskOptions) {
		o.checkRequiredCustomFields = check
	}
}

// UpdateTaskOption configures a Task.Update call.
type UpdateTaskOption func(*updateTaskOptions)

type updateTaskOptions struct {
	name            string
	content         string
	status          string
	priority        Priority
	dueDate         int64
	addAssignees    []Assignee
	removeAssignees []Assignee
}

// WithName renames the task.
func WithName(name string) UpdateTaskOption {
	return func(o *updateTaskOptions) {
		o.name = name
	}
}

// WithUpdateContent replaces the task description.
func WithUpdateContent(content string) UpdateTaskOption {
	return func(o *updateTaskOptions) {
		o.content = content
	}
}

// WithUpdateStatus moves the task to another status.
func WithUpdateStatus(status string) UpdateTaskOption {
	return func(o *updateTaskOptions) {
		o.status = status
	}
}

// WithUpdatePriority changes the priority. PriorityNone is not sent.
func WithUpdatePriority(priority Priority) UpdateTaskOption {
	return func(o *updateTaskOptions) {
		o.priority = priority
	}
}

// WithUpdateDueDate changes the due date.
func WithUpdateDueDate(t time.Time) UpdateTaskOption {
	return func(o *updateTaskOptions) {
		o.dueDate = TimeToMillis(t)
	}
}

// WithUpdateDueDateMillis changes the due date using a millisecond timestamp.
func WithUpdateDueDateMillis(ms int64) UpdateTaskOption {
	return func(o *updateTaskOptions) {
		o.dueDate = ms
	}
}

// WithAddAssignees adds assignees by id or *User.
func WithAddAssignees(assignees ...Assignee) UpdateTaskOption {
	return func(o *updateTaskOptions) {
		o.addAssignees = append(o.addAssignees, assignees...)
	}
}

// WithRemoveAssignees removes assignees by id or *User.
func WithRemoveAssignees(assignees ...Assignee) UpdateTaskOption {
	return func(o *updateTaskOptions) {
		o.removeAssignees = append(o.removeAssignees, assignees...)
	}
}

// TaskQueryOption filters a GetTasks or GetAllTasks call.
type TaskQueryOption func(*taskQuery)

// WithPage selects a zero-based page. GetAllTasks sets it itself.
func WithPage(page int) TaskQueryOption {
	return func(q *taskQuery) {
		q.page = &page
	}
}

// WithOrderBy sets the sort field.
func WithOrderBy(order TaskOrder) TaskQueryOption {
	return func(q *taskQuery) {
		q.orderBy = string(order)
	}
}

// WithReverse reverses the sort order.
func WithReverse(reverse bool) TaskQueryOption {
	return func(q *taskQuery) {
		q.reverse = &reverse
	}
}

// WithSubtasks includes subtasks.
func WithSubtasks(subtasks bool) TaskQueryOption {
	return func(q *taskQuery) {
		q.subtasks = &subtasks
	}
}

// WithIncludeClosed includes closed tasks. The default is false.
func WithIncludeClosed(include bool) TaskQueryOption {
	return func(q *taskQuery) {
		q.includeClosed = &include
	}
}

// WithSpaceIDs restricts the query to the given spaces.
func WithSpaceIDs(ids ...string) TaskQueryOption {
	return func(q *taskQuery) {
		q.spaceIDs = append(q.spaceIDs, ids...)
	}
}

// WithProjectIDs restricts the query to the given projects.
func WithProjectIDs(ids ...string) TaskQueryOption {
	return func(q *taskQuery) {
		q.projectIDs = append(q.projectIDs, ids...)
	}
}

// WithListIDs restricts the query to the given lists.
func WithListIDs(ids ...string) TaskQueryOption {
	return func(q *taskQuery) {
		q.listIDs = append(q.listIDs, ids...)
	}
}

// WithStatuses restricts the query to the given status names.
func WithStatuses(statuses ...string) TaskQueryOption {
	return func(q *taskQuery) {
		q.statuses = append(q.statuses, statuses...)
	}
}

// WithAssigneeFilter restricts the query to tasks assigned to any of the
// given users.
func WithAssigneeFilter(assignees ...Assignee) TaskQueryOption {
	return func(q *taskQuery) {
		q.assignees = append(q.assignees, assigneeIDStrings(assignees)...)
	}
}

// WithDueDateAfter keeps tasks due strictly after t.
func WithDueDateAfter(t time.Time) TaskQueryOption {
	return func(q *taskQuery) {
		q.dueDateGt = millisPtr(t)
	}
}

// WithDueDateBefore keeps tasks due strictly before t.
func WithDueDateBefore(t time.Time) TaskQueryOption {
	return func(q *taskQuery) {
		q.dueDateLt = millisPtr(t)
	}
}

// WithCreatedAfter keeps tasks created strictly after t.
func WithCreatedAfter(t time.Time) TaskQueryOption {
	return func(q *taskQuery) {
		q.dateCreatedGt = millisPtr(t)
	}
}

// WithCreatedBefore keeps tasks created strictly before t.
func WithCreatedBefore(t time.Time) TaskQueryOption {
	return func(q *taskQuery) {
		q.dateCreatedLt = millisPtr(t)
	}
}

// WithUpdatedAfter keeps tasks updated strictly after t.
func WithUpdatedAfter(t time.Time) TaskQueryOption {
	return func(q *taskQuery) {
		q.dateUpdatedGt = millisPtr(t)
	}
}

// WithUpdatedBefore keeps tasks updated strictly before t.
func WithUpdatedBefore(t time.Time) TaskQueryOption {
	return func(q *taskQuery) {
		q.dateUpdatedLt = millisPtr(t)
	}
}

func millisPtr(t time.Time) *int64 {
	ms := TimeToMillis(t)
	return &ms
}
