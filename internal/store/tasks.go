package store

import (
	"strconv"
	"strings"

	"github.com/goclickup/goclickup/internal/domain"
	"github.com/goclickup/goclickup/pkg/idgen"
)

// DefaultPageSize is the number of tasks per page of a task query.
const DefaultPageSize = 100

// TaskFilter selects tasks of a team. Empty slices and nil bounds do not
// filter.
type TaskFilter struct {
	Page          int
	PageSize      int
	OrderBy       string
	Reverse       bool
	Subtasks      bool
	IncludeClosed bool
	SpaceIDs      []string
	ProjectIDs    []string
	ListIDs       []string
	Statuses      []string
	Assignees     []string
	DueDateGt     *int64
	DueDateLt     *int64
	DateCreatedGt *int64
	DateCreatedLt *int64
	DateUpdatedGt *int64
	DateUpdatedLt *int64
}

// CreateTaskInput describes a new task.
type CreateTaskInput struct {
	Name         string
	Content      string
	Status       string
	Assignees    []int64
	Priority     int
	DueDate      int64
	Parent       string
	CustomFields []domain.CustomField
}

// UpdateTaskInput describes a partial task update. Nil fields are left
// unchanged.
type UpdateTaskInput struct {
	Name            *string
	Content         *string
	Status          *string
	Priority        *int
	DueDate         *int64
	AddAssignees    []int64
	RemoveAssignees []int64
}

// QueryTasks returns one page of a team's tasks.
func (w *Workspace) QueryTasks(teamID string, f TaskFilter) ([]domain.Task, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.findTeam(teamID) == nil {
		return nil, domain.NewNotFoundError("Team", teamID)
	}

	matched := []domain.Task{}
	for _, t := range w.tasks {
		if t.TeamID == teamID && f.matches(t) {
			matched = append(matched, t.Clone())
		}
	}
	sortTasks(matched, f.OrderBy, f.Reverse)

	size := f.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	start := f.Page * size
	if f.Page < 0 || start >= len(matched) {
		return []domain.Task{}, nil
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], nil
}

func (f TaskFilter) matches(t domain.Task) bool {
	if !f.Subtasks && t.Parent != nil {
		return false
	}
	if !f.IncludeClosed && t.Status.Type == domain.StatusTypeClosed {
		return false
	}
	if !containsOrEmpty(f.SpaceIDs, t.Space.ID) ||
		!containsOrEmpty(f.ProjectIDs, t.Project.ID) ||
		!containsOrEmpty(f.ListIDs, t.List.ID) {
		return false
	}
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if strings.EqualFold(s, t.Status.Status) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(f.Assignees) > 0 {
		found := false
		for _, a := range t.Assignees {
			if containsOrEmpty(f.Assignees, strconv.FormatInt(a.ID, 10)) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	var due int64
	if t.DueDate != nil {
		due = domain.ParseMillis(*t.DueDate)
	}
	created := domain.ParseMillis(t.DateCreated)
	updated := domain.ParseMillis(t.DateUpdated)
	return within(due, f.DueDateGt, f.DueDateLt) &&
		within(created, f.DateCreatedGt, f.DateCreatedLt) &&
		within(updated, f.DateUpdatedGt, f.DateUpdatedLt)
}

func containsOrEmpty(values []string, v string) bool {
	if len(values) == 0 {
		return true
	}
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func within(v int64, gt, lt *int64) bool {
	if gt != nil && v <= *gt {
		return false
	}
	if lt != nil && v >= *lt {
		return false
	}
	return true
}

// GetTask returns a task by id.
func (w *Workspace) GetTask(id string) (domain.Task, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	t := w.findTask(id)
	if t == nil {
		return domain.Task{}, domain.NewNotFoundError("Task", id)
	}
	return t.Clone(), nil
}

// CreateTask adds a task to a list. An empty status picks the first status
// of the list's project.
func (w *Workspace) CreateTask(listID string, in CreateTaskInput) (domain.Task, error) {
	if strings.TrimSpace(in.Name) == "" {
		return domain.Task{}, domain.NewValidationError("Task name invalid")
	}
	if in.Priority != 0 && !domain.ValidPriority(in.Priority) {
		return domain.Task{}, domain.NewValidationError("Priority invalid")
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	list, project := w.findList(listID)
	if list == nil {
		return domain.Task{}, domain.NewNotFoundError("List", listID)
	}
	space := w.findSpace(project.SpaceID)
	if space == nil {
		return domain.Task{}, domain.NewNotFoundError("Space", project.SpaceID)
	}
	team := w.findTeam(space.TeamID)
	if team == nil {
		return domain.Task{}, domain.NewNotFoundError("Team", space.TeamID)
	}

	status, err := resolveStatus(project, in.Status)
	if err != nil {
		return domain.Task{}, err
	}
	assignees, err := resolveAssignees(team, in.Assignees)
	if err != nil {
		return domain.Task{}, err
	}

	id := idgen.MustTaskID()
	now := domain.Millis(w.now())
	t := domain.Task{
		ID:           id,
		Name:         in.Name,
		Content:      in.Content,
		Status:       status,
		Creator:      w.owner,
		Tags:         []domain.Tag{},
		Assignees:    assignees,
		Priority:     domain.PriorityFor(in.Priority),
		DateCreated:  now,
		DateUpdated:  now,
		TeamID:       team.ID,
		List:         domain.Ref{ID: list.ID},
		Project:      domain.Ref{ID: project.ID},
		Space:        domain.Ref{ID: space.ID},
		CustomFields: append([]domain.CustomField{}, in.CustomFields...),
		URL:          "https://app.clickup.com/t/" + id,
	}
	if in.DueDate != 0 {
		due := strconv.FormatInt(in.DueDate, 10)
		t.DueDate = &due
	}
	if in.Parent != "" {
		if w.findTask(in.Parent) == nil {
			return domain.Task{}, domain.NewNotFoundError("Task", in.Parent)
		}
		parent := in.Parent
		t.Parent = &parent
	}

	w.tasks = append(w.tasks, t)
	return t.Clone(), nil
}

// UpdateTask applies a partial update.
func (w *Workspace) UpdateTask(id string, in UpdateTaskInput) (domain.Task, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	stored := w.findTask(id)
	if stored == nil {
		return domain.Task{}, domain.NewNotFoundError("Task", id)
	}
	_, project := w.findList(stored.List.ID)
	team := w.findTeam(stored.TeamID)

	// Changes land on a copy so a rejected update leaves the task untouched.
	t := stored.Clone()

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return domain.Task{}, domain.NewValidationError("Task name invalid")
		}
		t.Name = *in.Name
	}
	if in.Content != nil {
		t.Content = *in.Content
	}
	if in.Status != nil && project != nil {
		status, err := resolveStatus(project, *in.Status)
		if err != nil {
			return domain.Task{}, err
		}
		t.Status = status
		if status.Type == domain.StatusTypeClosed {
			closed := domain.Millis(w.now())
			t.DateClosed = &closed
		} else {
			t.DateClosed = nil
		}
	}
	if in.Priority != nil {
		if *in.Priority != 0 && !domain.ValidPriority(*in.Priority) {
			return domain.Task{}, domain.NewValidationError("Priority invalid")
		}
		t.Priority = domain.PriorityFor(*in.Priority)
	}
	if in.DueDate != nil {
		due := strconv.FormatInt(*in.DueDate, 10)
		t.DueDate = &due
	}
	if team != nil && len(in.AddAssignees) > 0 {
		added, err := resolveAssignees(team, in.AddAssignees)
		if err != nil {
			return domain.Task{}, err
		}
		for _, u := range added {
			if !hasUser(t.Assignees, u.ID) {
				t.Assignees = append(t.Assignees, u)
			}
		}
	}
	if len(in.RemoveAssignees) > 0 {
		kept := t.Assignees[:0:0]
		for _, u := range t.Assignees {
			if !containsID(in.RemoveAssignees, u.ID) {
				kept = append(kept, u)
			}
		}
		t.Assignees = kept
	}

	t.DateUpdated = domain.Millis(w.now())
	*stored = t
	return t.Clone(), nil
}

// DeleteTask removes a task, its subtasks and the comments on them.
func (w *Workspace) DeleteTask(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.findTask(id) == nil {
		return domain.NewNotFoundError("Task", id)
	}

	removed := map[string]bool{id: true}
	kept := w.tasks[:0]
	for _, t := range w.tasks {
		if removed[t.ID] || (t.Parent != nil && removed[*t.Parent]) {
			removed[t.ID] = true
			continue
		}
		kept = append(kept, t)
	}
	w.tasks = kept

	comments := w.comments[:0]
	for _, c := range w.comments {
		if c.Target == "task" && removed[c.TargetID] {
			continue
		}
		comments = append(comments, c)
	}
	w.comments = comments
	return nil
}

func resolveStatus(p *domain.Project, name string) (domain.Status, error) {
	statuses := p.EffectiveStatuses()
	if name == "" && len(statuses) > 0 {
		return statuses[0], nil
	}
	for _, s := range statuses {
		if strings.EqualFold(s.Status, name) {
			return s, nil
		}
	}
	return domain.Status{}, domain.NewValidationError("Status not found")
}

func resolveAssignees(team *domain.Team, ids []int64) ([]domain.User, error) {
	users := []domain.User{}
	for _, id := range ids {
		found := false
		for _, m := range team.Members {
			if m.User.ID == id {
				users = append(users, m.User)
				found = true
				break
			}
		}
		if !found {
			return nil, domain.NewValidationError("Assignee " + strconv.FormatInt(id, 10) + " is not a team member")
		}
	}
	return users, nil
}

func hasUser(users []domain.User, id int64) bool {
	for _, u := range users {
		if u.ID == id {
			return true
		}
	}
	return false
}

func containsID(ids []int64, id int64) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
