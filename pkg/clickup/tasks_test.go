package clickup

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"
)

func taskFixture(id, name string) map[string]interface{} {
	return map[string]interface{}{
		"id":      id,
		"name":    name,
		"content": "Task content",
		"status": map[string]interface{}{
			"status":     "Open",
			"type":       "open",
			"orderindex": 0,
			"color":      "#d3d3d3",
		},
		"creator": map[string]interface{}{
			"id":       123,
			"username": "John Doe",
		},
		"tags": []interface{}{
			map[string]interface{}{"name": "backend", "tag_fg": "#fff"},
		},
		"assignees": []interface{}{
			map[string]interface{}{"id": 123, "username": "John Doe"},
		},
		"priority":     map[string]interface{}{"id": "2", "priority": "high", "color": "#ffcc00"},
		"dueDate":      "1508369194377",
		"startDate":    nil,
		"date_created": "1508369194377",
		"date_updated": "1508369194377",
		"date_closed":  nil,
	}
}

func TestNewTask(t *testing.T) {
	task := NewTask(nil, taskFixture("av1", "My First Task"))

	if task.ID != "av1" || task.Name != "My First Task" {
		t.Errorf("unexpected task %s", task)
	}
	if task.String() != "<goclickup.Task[av1] 'My First Task'>" {
		t.Errorf("unexpected String(): %s", task.String())
	}
	if task.Status == nil || task.Status.Status != "Open" {
		t.Errorf("expected status Open, got %v", task.Status)
	}
	if task.Creator == nil || task.Creator.ID != 123 {
		t.Errorf("expected creator 123, got %v", task.Creator)
	}
	if len(task.Tags) != 1 || task.Tags[0].Name != "backend" {
		t.Errorf("expected one tag named backend, got %v", task.Tags)
	}
	if len(task.Assignees) != 1 || task.Assignees[0].Username != "John Doe" {
		t.Errorf("expected assignee John Doe, got %v", task.Assignees)
	}
	if task.Priority != PriorityHigh {
		t.Errorf("expected priority high, got %s", task.Priority)
	}
	if task.DueDate == nil || task.DueDate.Unix() != 1508369194 {
		t.Errorf("expected due date 1508369194, got %v", task.DueDate)
	}
	if task.StartDate != nil {
		t.Errorf("expected nil start date, got %v", task.StartDate)
	}
	if task.DateClosed != nil {
		t.Errorf("expected nil closed date, got %v", task.DateClosed)
	}
	if !task.Attrs.Has("due_date") {
		t.Error("expected normalized due_date in attrs")
	}
}

func TestNewTaskNumericPriority(t *testing.T) {
	task := NewTask(nil, map[string]interface{}{"id": "1", "priority": json.Number("4")})
	if task.Priority != PriorityLow {
		t.Errorf("expected priority low, got %s", task.Priority)
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in      string
		want    Priority
		wantErr bool
	}{
		{in: "urgent", want: PriorityUrgent},
		{in: "2", want: PriorityHigh},
		{in: "none", want: PriorityNone},
		{in: "critical", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePriority(tt.in)
			if tt.wantErr {
				if !IsInvalidArgument(err) {
					t.Errorf("expected invalid argument error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestGetTasks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/team/1234/task" {
			t.Errorf("expected path /api/v1/team/1234/task, got %s", r.URL.Path)
		}
		want := "reverse=true&space_ids[]=1,2&include_closed=false"
		if r.URL.RawQuery != want {
			t.Errorf("expected query %q, got %q", want, r.URL.RawQuery)
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"tasks": []interface{}{taskFixture("av1", "My First Task")},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server)
	tasks, err := client.GetTasks(context.Background(), "1234", WithReverse(true), WithSpaceIDs("1", "2"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != "av1" {
		t.Errorf("expected task av1, got %v", tasks)
	}
}

func TestGetTasksWithoutTasksKey(t *testing.T) {
	tests := []struct {
		name string
		body interface{}
	}{
		{name: "missing key", body: map[string]interface{}{"other": 1}},
		{name: "array body", body: []interface{}{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, tt.body)
			}))
			defer server.Close()

			client := newTestClient(t, server)
			tasks, err := client.GetTasks(context.Background(), "1234")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tasks == nil || len(tasks) != 0 {
				t.Errorf("expected empty slice, got %v", tasks)
			}
		})
	}
}

// pagedServer answers every task query with one task per page until
// pages pages have been served.
func pagedServer(t *testing.T, pages int, calls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil {
			t.Errorf("expected numeric page, got %q", r.URL.Query().Get("page"))
		}
		tasks := []interface{}{}
		if page < pages {
			tasks = append(tasks, taskFixture("t"+strconv.Itoa(page), "Task"))
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"tasks": tasks})
	}))
}

func TestGetAllTasks(t *testing.T) {
	tests := []struct {
		name      string
		pages     int
		pageLimit int
		wantTasks int
		wantCalls int32
	}{
		{name: "unbounded stops at empty page", pages: 3, pageLimit: NoPageLimit, wantTasks: 3, wantCalls: 4},
		{name: "limit reached", pages: 10, pageLimit: 2, wantTasks: 2, wantCalls: 3},
		{name: "limit larger than pages", pages: 1, pageLimit: 5, wantTasks: 1, wantCalls: 2},
		{name: "first page empty", pages: 0, pageLimit: NoPageLimit, wantTasks: 0, wantCalls: 1},
		{name: "zero limit", pages: 10, pageLimit: 0, wantTasks: 0, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			server := pagedServer(t, tt.pages, &calls)
			defer server.Close()

			client := newTestClient(t, server)
			tasks, err := client.GetAllTasks(context.Background(), "1234", tt.pageLimit)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(tasks) != tt.wantTasks {
				t.Errorf("expected %d tasks, got %d", tt.wantTasks, len(tasks))
			}
			if calls != tt.wantCalls {
				t.Errorf("expected %d requests, got %d", tt.wantCalls, calls)
			}
		})
	}
}

func TestGetAllTasksAbortsOnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"tasks": []interface{}{taskFixture("av1", "My First Task")},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server)
	tasks, err := client.GetAllTasks(context.Background(), "1234", NoPageLimit)
	if !IsRateLimited(err) {
		t.Errorf("expected rate limited error, got %v", err)
	}
	if tasks != nil {
		t.Errorf("expected no partial result, got %d tasks", len(tasks))
	}
}

func TestCreateTask(t *testing.T) {
	due := time.Unix(1508369194, 0)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/api/v1/list/1234/task" {
			t.Errorf("expected path /api/v1/list/1234/task, got %s", r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected Content-Type application/json, got %s", r.Header.Get("Content-Type"))
		}

		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		if body["name"] != "New Task" {
			t.Errorf("expected name New Task, got %v", body["name"])
		}
		if body["status"] != "Open" {
			t.Errorf("expected default status Open, got %v", body["status"])
		}
		if body["priority"] != float64(2) {
			t.Errorf("expected priority 2, got %v", body["priority"])
		}
		if body["due_date"] != float64(1508369194000) {
			t.Errorf("expected due_date 1508369194000, got %v", body["due_date"])
		}
		assignees, _ := body["assignees"].([]interface{})
		if len(assignees) != 2 || assignees[0] != float64(123) || assignees[1] != float64(456) {
			t.Errorf("expected assignees [123 456], got %v", body["assignees"])
		}
		if body["check_required_custom_fields"] != false {
			t.Errorf("expected check_required_custom_fields false, got %v", body["check_required_custom_fields"])
		}
		if fields, ok := body["custom_fields"].([]interface{}); !ok || len(fields) != 0 {
			t.Errorf("expected empty custom_fields, got %v", body["custom_fields"])
		}
		if _, ok := body["parent"]; ok {
			t.Error("expected parent to be omitted")
		}

		writeJSON(w, http.StatusOK, taskFixture("9hz", "New Task"))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	task, err := client.CreateTask(context.Background(), "1234", "New Task",
		WithPriority(PriorityHigh),
		WithDueDate(due),
		WithAssignees(&User{ID: 123}, UserID(456)),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID != "9hz" {
		t.Errorf("expected task id 9hz, got %s", task.ID)
	}
}

func TestCreateTaskMinimalBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		for _, key := range []string{"assignees", "priority", "due_date", "parent"} {
			if _, ok := body[key]; ok {
				t.Errorf("expected %s to be omitted, got %v", key, body[key])
			}
		}
		writeJSON(w, http.StatusOK, taskFixture("9hz", "New Task"))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	if _, err := client.CreateTask(context.Background(), "1234", "New Task"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTaskUpdate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		if r.URL.Path != "/api/v1/task/av1" {
			t.Errorf("expected path /api/v1/task/av1, got %s", r.URL.Path)
		}

		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		if body["priority"] != float64(2) {
			t.Errorf("expected priority 2, got %v", body["priority"])
		}
		for _, key := range []string{"name", "content", "status"} {
			if _, ok := body[key]; ok {
				t.Errorf("expected %s to be omitted", key)
			}
		}
		assignees, ok := body["assignees"].(map[string]interface{})
		if !ok {
			t.Errorf("expected assignees object, got %v", body["assignees"])
		}
		for _, key := range []string{"add", "rem"} {
			list, ok := assignees[key].([]interface{})
			if !ok || len(list) != 0 {
				t.Errorf("expected empty %s list, got %v", key, assignees[key])
			}
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{"id": "av1"})
	}))
	defer server.Close()

	client := newTestClient(t, server)
	task := NewTask(client, taskFixture("av1", "My First Task"))
	if err := task.Update(context.Background(), WithUpdatePriority(PriorityHigh)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTaskUpdateAssignees(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name      string          `json:"name"`
			Assignees assigneeChanges `json:"assignees"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.Name != "Renamed" {
			t.Errorf("expected name Renamed, got %q", body.Name)
		}
		if len(body.Assignees.Add) != 1 || body.Assignees.Add[0] != 123 {
			t.Errorf("expected add [123], got %v", body.Assignees.Add)
		}
		if len(body.Assignees.Rem) != 1 || body.Assignees.Rem[0] != 456 {
			t.Errorf("expected rem [456], got %v", body.Assignees.Rem)
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{})
	}))
	defer server.Close()

	client := newTestClient(t, server)
	task := NewTask(client, taskFixture("av1", "My First Task"))
	err := task.Update(context.Background(),
		WithName("Renamed"),
		WithAddAssignees(&User{ID: 123}),
		WithRemoveAssignees(UserID(456)),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetTask(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v2/task/9hz":
			writeJSON(w, http.StatusOK, taskFixture("9hz", "Second Task"))
		default:
			writeJSON(w, http.StatusOK, map[string]interface{}{})
		}
	}))
	defer server.Close()

	client := newTestClient(t, server)
	task, err := client.GetTask(context.Background(), "9hz")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Name != "Second Task" {
		t.Errorf("expected name Second Task, got %q", task.Name)
	}

	_, err = client.GetTask(context.Background(), "missing")
	if !IsLookupFailure(err) {
		t.Errorf("expected lookup failure, got %v", err)
	}
}

func TestDeleteTask(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   bool
	}{
		{name: "deleted", status: http.StatusOK, want: true},
		{name: "not found", status: http.StatusNotFound, want: false},
		{name: "rate limited", status: http.StatusTooManyRequests, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodDelete {
					t.Errorf("expected DELETE, got %s", r.Method)
				}
				if r.URL.Path != "/api/v2/task/9hz" {
					t.Errorf("expected path /api/v2/task/9hz, got %s", r.URL.Path)
				}
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := newTestClient(t, server)
			task := NewTask(client, map[string]interface{}{"id": "9hz"})
			if got := task.Delete(context.Background()); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestTaskMembers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/task/av1/member" {
			t.Errorf("expected path /api/v2/task/av1/member, got %s", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"members": []interface{}{
				map[string]interface{}{"id": 123, "username": "John Doe"},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server)
	task := NewTask(client, map[string]interface{}{"id": "av1"})
	members, err := task.Members(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(members) != 1 || members[0].ID != 123 {
		t.Errorf("expected member 123, got %v", members)
	}
}

func TestTaskWithoutClient(t *testing.T) {
	task := NewTask(nil, map[string]interface{}{"id": "av1"})

	if err := task.Update(context.Background(), WithName("x")); !IsMissingClient(err) {
		t.Errorf("expected missing client error, got %v", err)
	}
	if _, err := task.Members(context.Background()); !IsMissingClient(err) {
		t.Errorf("expected missing client error, got %v", err)
	}
	if task.Delete(context.Background()) {
		t.Error("expected delete without client to return false")
	}
}
