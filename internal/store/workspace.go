// Package store holds the in-memory state behind the fake ClickUp API.
package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goclickup/goclickup/internal/domain"
	"github.com/goclickup/goclickup/pkg/idgen"
)

// Workspace is a mutable, concurrency-safe ClickUp workspace. Every read
// returns copies, so callers may encode results without holding a lock.
type Workspace struct {
	mu       sync.RWMutex
	owner    domain.User
	teams    []domain.Team
	spaces   []domain.Space
	projects []domain.Project
	tasks    []domain.Task
	comments []domain.Comment
	now      func() time.Time
}

// New creates a workspace holding ds.
func New(ds domain.Dataset) *Workspace {
	return &Workspace{
		owner:    ds.Owner,
		teams:    append([]domain.Team{}, ds.Teams...),
		spaces:   append([]domain.Space{}, ds.Spaces...),
		projects: cloneProjects(ds.Projects),
		tasks:    cloneTasks(ds.Tasks),
		comments: append([]domain.Comment{}, ds.Comments...),
		now:      time.Now,
	}
}

// NewFixture creates a workspace holding domain.Fixture.
func NewFixture() *Workspace {
	return New(domain.Fixture(time.Now()))
}

// Owner returns the user the token belongs to.
func (w *Workspace) Owner() domain.User {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.owner
}

// Teams returns every team.
func (w *Workspace) Teams() []domain.Team {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]domain.Team{}, w.teams...)
}

// Team returns a team by id.
func (w *Workspace) Team(id string) (domain.Team, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	t := w.findTeam(id)
	if t == nil {
		return domain.Team{}, domain.NewNotFoundError("Team", id)
	}
	return *t, nil
}

// Spaces returns the spaces of a team.
func (w *Workspace) Spaces(teamID string) ([]domain.Space, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.findTeam(teamID) == nil {
		return nil, domain.NewNotFoundError("Team", teamID)
	}
	spaces := []domain.Space{}
	for _, s := range w.spaces {
		if s.TeamID == teamID {
			spaces = append(spaces, s)
		}
	}
	return spaces, nil
}

// Projects returns the projects of a space with their lists.
func (w *Workspace) Projects(spaceID string) ([]domain.Project, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.findSpace(spaceID) == nil {
		return nil, domain.NewNotFoundError("Space", spaceID)
	}
	projects := []domain.Project{}
	for _, p := range w.projects {
		if p.SpaceID == spaceID {
			projects = append(projects, cloneProject(p))
		}
	}
	return projects, nil
}

// CreateList adds a list to a project.
func (w *Workspace) CreateList(projectID, name string) (domain.List, error) {
	if strings.TrimSpace(name) == "" {
		return domain.List{}, domain.NewValidationError("List name invalid")
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	p := w.findProject(projectID)
	if p == nil {
		return domain.List{}, domain.NewNotFoundError("Project", projectID)
	}
	l := domain.List{ID: idgen.MustNumericID(), Name: name}
	p.Lists = append(p.Lists, l)
	return l, nil
}

// RenameList changes a list's name.
func (w *Workspace) RenameList(listID, name string) (domain.List, error) {
	if strings.TrimSpace(name) == "" {
		return domain.List{}, domain.NewValidationError("List name invalid")
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	l, _ := w.findList(listID)
	if l == nil {
		return domain.List{}, domain.NewNotFoundError("List", listID)
	}
	l.Name = name
	return *l, nil
}

// TaskMembers returns the users that can see a task: the members of its team.
func (w *Workspace) TaskMembers(taskID string) ([]domain.User, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	t := w.findTask(taskID)
	if t == nil {
		return nil, domain.NewNotFoundError("Task", taskID)
	}
	team := w.findTeam(t.TeamID)
	users := []domain.User{}
	if team != nil {
		for _, m := range team.Members {
			users = append(users, m.User)
		}
	}
	return users, nil
}

func (w *Workspace) findTeam(id string) *domain.Team {
	for i := range w.teams {
		if w.teams[i].ID == id {
			return &w.teams[i]
		}
	}
	return nil
}

func (w *Workspace) findSpace(id string) *domain.Space {
	for i := range w.spaces {
		if w.spaces[i].ID == id {
			return &w.spaces[i]
		}
	}
	return nil
}

func (w *Workspace) findProject(id string) *domain.Project {
	for i := range w.projects {
		if w.projects[i].ID == id {
			return &w.projects[i]
		}
	}
	return nil
}

// findList returns the list and the project holding it.
func (w *Workspace) findList(id string) (*domain.List, *domain.Project) {
	for i := range w.projects {
		p := &w.projects[i]
		for j := range p.Lists {
			if p.Lists[j].ID == id {
				return &p.Lists[j], p
			}
		}
	}
	return nil, nil
}

func (w *Workspace) findTask(id string) *domain.Task {
	for i := range w.tasks {
		if w.tasks[i].ID == id {
			return &w.tasks[i]
		}
	}
	return nil
}

func cloneProject(p domain.Project) domain.Project {
	p.Statuses = append([]domain.Status{}, p.Statuses...)
	p.Lists = append([]domain.List{}, p.Lists...)
	return p
}

func cloneProjects(in []domain.Project) []domain.Project {
	out := make([]domain.Project, len(in))
	for i, p := range in {
		out[i] = cloneProject(p)
	}
	return out
}

func cloneTasks(in []domain.Task) []domain.Task {
	out := make([]domain.Task, len(in))
	for i, t := range in {
		out[i] = t.Clone()
	}
	return out
}

func sortTasks(tasks []domain.Task, orderBy string, reverse bool) {
	key := func(t domain.Task) int64 {
		switch orderBy {
		case "updated":
			return domain.ParseMillis(t.DateUpdated)
		case "due_date":
			if t.DueDate == nil {
				return 0
			}
			return domain.ParseMillis(*t.DueDate)
		default:
			return domain.ParseMillis(t.DateCreated)
		}
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		if orderBy == "id" {
			if reverse {
				return tasks[i].ID > tasks[j].ID
			}
			return tasks[i].ID < tasks[j].ID
		}
		if reverse {
			return key(tasks[i]) > key(tasks[j])
		}
		return key(tasks[i]) < key(tasks[j])
	})
}
