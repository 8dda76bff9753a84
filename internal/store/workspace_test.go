package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goclickup/goclickup/internal/domain"
)

func newTestWorkspace(t *testing.T) *Workspace {
	t.Helper()
	ws := NewFixture()
	clock := time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC)
	ws.now = func() time.Time { return clock }
	return ws
}

func requireCode(t *testing.T, err error, code domain.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

func TestHierarchy(t *testing.T) {
	ws := newTestWorkspace(t)

	assert.Equal(t, "John Doe", ws.Owner().Username)

	teams := ws.Teams()
	require.Len(t, teams, 1)
	assert.Equal(t, domain.FixtureTeamID, teams[0].ID)

	spaces, err := ws.Spaces(domain.FixtureTeamID)
	require.NoError(t, err)
	require.Len(t, spaces, 1)
	assert.True(t, spaces[0].Private)

	projects, err := ws.Projects(domain.FixtureSpaceID)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	require.Len(t, projects[0].Lists, 1)
	assert.Equal(t, "My List", projects[0].Lists[0].Name)

	_, err = ws.Spaces("missing")
	requireCode(t, err, domain.ErrCodeNotFound)
	_, err = ws.Projects("missing")
	requireCode(t, err, domain.ErrCodeNotFound)
	_, err = ws.Team("missing")
	requireCode(t, err, domain.ErrCodeNotFound)
}

func TestReadsReturnCopies(t *testing.T) {
	ws := newTestWorkspace(t)

	projects, err := ws.Projects(domain.FixtureSpaceID)
	require.NoError(t, err)
	projects[0].Lists[0].Name = "changed"

	again, err := ws.Projects(domain.FixtureSpaceID)
	require.NoError(t, err)
	assert.Equal(t, "My List", again[0].Lists[0].Name)
}

func TestLists(t *testing.T) {
	ws := newTestWorkspace(t)

	l, err := ws.CreateList(domain.FixtureProjectID, "Sprint 1")
	require.NoError(t, err)
	assert.NotEmpty(t, l.ID)

	renamed, err := ws.RenameList(l.ID, "Sprint 2")
	require.NoError(t, err)
	assert.Equal(t, "Sprint 2", renamed.Name)

	projects, _ := ws.Projects(domain.FixtureSpaceID)
	require.Len(t, projects[0].Lists, 2)
	assert.Equal(t, "Sprint 2", projects[0].Lists[1].Name)

	_, err = ws.CreateList(domain.FixtureProjectID, " ")
	requireCode(t, err, domain.ErrCodeValidationFailed)
	_, err = ws.RenameList("missing", "x")
	requireCode(t, err, domain.ErrCodeNotFound)
}

func TestQueryTasks(t *testing.T) {
	ws := newTestWorkspace(t)

	tests := []struct {
		name   string
		filter TaskFilter
		want   []string
	}{
		{name: "top level only", filter: TaskFilter{}, want: []string{"av1"}},
		{name: "with subtasks", filter: TaskFilter{Subtasks: true}, want: []string{"av1", "9hz"}},
		{name: "reversed", filter: TaskFilter{Subtasks: true, Reverse: true}, want: []string{"9hz", "av1"}},
		{name: "by id", filter: TaskFilter{Subtasks: true, OrderBy: "id"}, want: []string{"9hz", "av1"}},
		{name: "status filter", filter: TaskFilter{Subtasks: true, Statuses: []string{"IN PROGRESS"}}, want: []string{"9hz"}},
		{name: "assignee filter", filter: TaskFilter{Subtasks: true, Assignees: []string{"123"}}, want: []string{"av1"}},
		{name: "list filter", filter: TaskFilter{ListIDs: []string{"other"}}, want: []string{}},
		{name: "second page", filter: TaskFilter{Subtasks: true, Page: 1, PageSize: 1}, want: []string{"9hz"}},
		{name: "past the end", filter: TaskFilter{Page: 5}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, err := ws.QueryTasks(domain.FixtureTeamID, tt.filter)
			require.NoError(t, err)
			ids := []string{}
			for _, task := range tasks {
				ids = append(ids, task.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	_, err := ws.QueryTasks("missing", TaskFilter{})
	requireCode(t, err, domain.ErrCodeNotFound)
}

func TestQueryTasksDateBounds(t *testing.T) {
	ws := newTestWorkspace(t)
	task, err := ws.GetTask(domain.FixtureTaskID)
	require.NoError(t, err)

	due := domain.ParseMillis(*task.DueDate)
	before := due - 1
	after := due + 1

	tasks, err := ws.QueryTasks(domain.FixtureTeamID, TaskFilter{DueDateGt: &before, DueDateLt: &after})
	require.NoError(t, err)
	assert.Len(t, tasks, 1)

	tasks, err = ws.QueryTasks(domain.FixtureTeamID, TaskFilter{DueDateGt: &due})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestCreateTask(t *testing.T) {
	ws := newTestWorkspace(t)

	task, err := ws.CreateTask(domain.FixtureListID, CreateTaskInput{
		Name:      "New Task",
		Status:    "todo",
		Assignees: []int64{domain.FixtureUserID},
		Priority:  2,
		DueDate:   1508369194000,
		Parent:    domain.FixtureTaskID,
	})
	require.NoError(t, err)

	assert.Len(t, task.ID, 7)
	assert.Equal(t, "todo", task.Status.Status)
	require.NotNil(t, task.Priority)
	assert.Equal(t, "high", task.Priority.Priority)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, "1508369194000", *task.DueDate)
	require.NotNil(t, task.Parent)
	assert.Equal(t, domain.FixtureTaskID, *task.Parent)
	assert.Equal(t, domain.FixtureSpaceID, task.Space.ID)
	assert.Equal(t, "John Doe", task.Creator.Username)

	got, err := ws.GetTask(task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.Name, got.Name)
}

func TestCreateTaskValidation(t *testing.T) {
	ws := newTestWorkspace(t)

	tests := []struct {
		name   string
		listID string
		input  CreateTaskInput
		code   domain.ErrorCode
	}{
		{name: "empty name", listID: domain.FixtureListID, input: CreateTaskInput{}, code: domain.ErrCodeValidationFailed},
		{name: "unknown list", listID: "missing", input: CreateTaskInput{Name: "x"}, code: domain.ErrCodeNotFound},
		{name: "unknown status", listID: domain.FixtureListID, input: CreateTaskInput{Name: "x", Status: "nope"}, code: domain.ErrCodeValidationFailed},
		{name: "bad priority", listID: domain.FixtureListID, input: CreateTaskInput{Name: "x", Priority: 9}, code: domain.ErrCodeValidationFailed},
		{name: "stranger assignee", listID: domain.FixtureListID, input: CreateTaskInput{Name: "x", Assignees: []int64{999}}, code: domain.ErrCodeValidationFailed},
		{name: "unknown parent", listID: domain.FixtureListID, input: CreateTaskInput{Name: "x", Parent: "missing"}, code: domain.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ws.CreateTask(tt.listID, tt.input)
			requireCode(t, err, tt.code)
		})
	}
}

func TestUpdateTask(t *testing.T) {
	ws := newTestWorkspace(t)

	name := "Renamed"
	status := "Closed"
	priority := 1
	task, err := ws.UpdateTask(domain.FixtureTaskID, UpdateTaskInput{
		Name:            &name,
		Status:          &status,
		Priority:        &priority,
		RemoveAssignees: []int64{domain.FixtureUserID},
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", task.Name)
	assert.Equal(t, "closed", task.Status.Type)
	assert.NotNil(t, task.DateClosed)
	assert.Equal(t, "urgent", task.Priority.Priority)
	assert.Empty(t, task.Assignees)
	assert.Equal(t, "1705312800000", task.DateUpdated)

	task, err = ws.UpdateTask(domain.FixtureTaskID, UpdateTaskInput{AddAssignees: []int64{domain.FixtureUserID, domain.FixtureUserID}})
	require.NoError(t, err)
	assert.Len(t, task.Assignees, 1)

	_, err = ws.UpdateTask("missing", UpdateTaskInput{})
	requireCode(t, err, domain.ErrCodeNotFound)
}

func TestRejectedUpdatesLeaveStateUnchanged(t *testing.T) {
	ws := newTestWorkspace(t)

	before, err := ws.GetTask(domain.FixtureTaskID)
	require.NoError(t, err)

	name := "Renamed"
	unknown := "no such status"
	badPriority := 9
	tests := []struct {
		name  string
		input UpdateTaskInput
	}{
		{"unknown status", UpdateTaskInput{Name: &name, Status: &unknown}},
		{"invalid priority", UpdateTaskInput{Name: &name, Priority: &badPriority}},
		{"non-member assignee", UpdateTaskInput{Name: &name, RemoveAssignees: []int64{domain.FixtureUserID}, AddAssignees: []int64{42}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ws.UpdateTask(domain.FixtureTaskID, tt.input)
			requireCode(t, err, domain.ErrCodeValidationFailed)

			after, err := ws.GetTask(domain.FixtureTaskID)
			require.NoError(t, err)
			assert.Equal(t, before, after)
		})
	}

	nonMember := int64(42)
	_, err = ws.UpdateComment(domain.FixtureCommentID, "Rewritten", &nonMember, true)
	requireCode(t, err, domain.ErrCodeValidationFailed)

	comments, err := ws.Comments("task", domain.FixtureTaskID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "Looks good", comments[0].CommentText)
	assert.False(t, comments[0].Resolved)
}

func TestDeleteTaskCascades(t *testing.T) {
	ws := newTestWorkspace(t)

	require.NoError(t, ws.DeleteTask(domain.FixtureTaskID))

	_, err := ws.GetTask(domain.FixtureTaskID)
	requireCode(t, err, domain.ErrCodeNotFound)
	_, err = ws.GetTask(domain.FixtureSubtaskID)
	requireCode(t, err, domain.ErrCodeNotFound)

	requireCode(t, ws.DeleteTask(domain.FixtureTaskID), domain.ErrCodeNotFound)
}

func TestTaskMembers(t *testing.T) {
	ws := newTestWorkspace(t)

	users, err := ws.TaskMembers(domain.FixtureTaskID)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, domain.FixtureUserID, users[0].ID)

	_, err = ws.TaskMembers("missing")
	requireCode(t, err, domain.ErrCodeNotFound)
}

func TestComments(t *testing.T) {
	ws := newTestWorkspace(t)

	comments, err := ws.Comments("task", domain.FixtureTaskID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, domain.FixtureCommentID, comments[0].ID)

	assignee := domain.FixtureUserID
	c, err := ws.CreateComment("list", domain.FixtureListID, "Ship it", &assignee)
	require.NoError(t, err)
	require.NotNil(t, c.Assignee)
	assert.Equal(t, "John Doe", c.Assignee.Username)

	updated, err := ws.UpdateComment(c.ID, "Shipped", nil, true)
	require.NoError(t, err)
	assert.Equal(t, "Shipped", updated.CommentText)
	assert.True(t, updated.Resolved)
	assert.Nil(t, updated.Assignee)

	require.NoError(t, ws.DeleteComment(c.ID))
	requireCode(t, ws.DeleteComment(c.ID), domain.ErrCodeNotFound)

	_, err = ws.Comments("view", "any-view")
	assert.NoError(t, err)
	_, err = ws.Comments("folder", "1")
	requireCode(t, err, domain.ErrCodeValidationFailed)
	_, err = ws.Comments("task", "missing")
	requireCode(t, err, domain.ErrCodeNotFound)
	_, err = ws.CreateComment("task", domain.FixtureTaskID, "", nil)
	requireCode(t, err, domain.ErrCodeValidationFailed)
}
