package clickup

import (
	"net/url"
	"strconv"
	"strings"
)

// TaskOrder is a sort field accepted by the task query endpoint.
type TaskOrder string

const (
	OrderByID      TaskOrder = "id"
	OrderByCreated TaskOrder = "created"
	OrderByUpdated TaskOrder = "updated"
	OrderByDueDate TaskOrder = "due_date"
)

// taskQuery holds the filters for team/{id}/task. A nil pointer or empty
// slice means the option is absent and is not serialized.
type taskQuery struct {
	page          *int
	orderBy       string
	reverse       *bool
	subtasks      *bool
	spaceIDs      []string
	projectIDs    []string
	listIDs       []string
	statuses      []string
	includeClosed *bool
	assignees     []string
	dueDateGt     *int64
	dueDateLt     *int64
	dateCreatedGt *int64
	dateCreatedLt *int64
	dateUpdatedGt *int64
	dateUpdatedLt *int64
}

func newTaskQuery(opts ...TaskQueryOption) *taskQuery {
	includeClosed := false
	q := &taskQuery{includeClosed: &includeClosed}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// encode renders the query string without the leading "?". Booleans are
// written as "true"/"false", list filters as key[]=a,b and everything else
// as key=value, in a fixed order.
func (q *taskQuery) encode() string {
	var parts []string

	scalar := func(key, value string) {
		parts = append(parts, key+"="+url.QueryEscape(value))
	}
	boolean := func(key string, v *bool) {
		if v != nil {
			parts = append(parts, key+"="+strconv.FormatBool(*v))
		}
	}
	list := func(key string, values []string) {
		if len(values) == 0 {
			return
		}
		escaped := make([]string, len(values))
		for i, v := range values {
			escaped[i] = url.QueryEscape(v)
		}
		parts = append(parts, key+"[]="+strings.Join(escaped, ","))
	}
	millis := func(key string, v *int64) {
		if v != nil {
			scalar(key, strconv.FormatInt(*v, 10))
		}
	}

	if q.page != nil {
		scalar("page", strconv.Itoa(*q.page))
	}
	if q.orderBy != "" {
		scalar("order_by", q.orderBy)
	}
	boolean("reverse", q.reverse)
	boolean("subtasks", q.subtasks)
	list("space_ids", q.spaceIDs)
	list("project_ids", q.projectIDs)
	list("list_ids", q.listIDs)
	list("statuses", q.statuses)
	boolean("include_closed", q.includeClosed)
	list("assignees", q.assignees)
	millis("due_date_gt", q.dueDateGt)
	millis("due_date_lt", q.dueDateLt)
	millis("date_created_gt", q.dateCreatedGt)
	millis("date_created_lt", q.dateCreatedLt)
	millis("date_updated_gt", q.dateUpdatedGt)
	millis("date_updated_lt", q.dateUpdatedLt)

	return strings.Join(parts, "&")
}
