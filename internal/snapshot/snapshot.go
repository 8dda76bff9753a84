// Package snapshot keeps an offline SQLite copy of a team's hierarchy and
// tasks.
package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found in snapshot")

// Team is a synced team.
type Team struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Color    string    `json:"color,omitempty"`
	SyncedAt time.Time `json:"synced_at"`
}

// Space is a synced space.
type Space struct {
	ID      string
	TeamID  string
	Name    string
	Private bool
}

// Project is a synced project.
type Project struct {
	ID               string
	SpaceID          string
	Name             string
	OverrideStatuses bool
}

// List is a synced list.
type List struct {
	ID        string
	ProjectID string
	Name      string
}

// Assignee is a user assigned to a synced task.
type Assignee struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Task is a synced task.
type Task struct {
	ID          string     `json:"id"`
	TeamID      string     `json:"team_id"`
	ListID      string     `json:"list_id,omitempty"`
	ParentID    string     `json:"parent_id,omitempty"`
	Name        string     `json:"name"`
	Content     string     `json:"content,omitempty"`
	Status      string     `json:"status"`
	StatusType  string     `json:"status_type"`
	Priority    int        `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	DateCreated *time.Time `json:"date_created,omitempty"`
	DateUpdated *time.Time `json:"date_updated,omitempty"`
	DateClosed  *time.Time `json:"date_closed,omitempty"`
	Assignees   []Assignee `json:"assignees"`
}

// TaskFilter narrows Tasks. Empty fields do not filter.
type TaskFilter struct {
	TeamID   string
	ListID   string
	Status   string
	Assignee int64
	// OpenOnly hides tasks whose status type is closed.
	OpenOnly bool
}

// Store is a snapshot database.
type Store struct {
	db     *sql.DB
	closed bool
}

// Open opens or creates a snapshot database and brings its schema up to
// date. The dsn can be a file path or ":memory:".
func Open(ctx context.Context, dsn string) (*Store, error) {
	connStr := dsn
	if !strings.Contains(dsn, "?") {
		connStr += "?"
	} else {
		connStr += "&"
	}
	connStr += "_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// WithTx executes fn within a transaction. fn must only use tx.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(&Tx{tx: sqlTx}); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Teams returns every synced team ordered by name.
func (s *Store) Teams(ctx context.Context) ([]Team, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, color, synced_at FROM teams ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	teams := []Team{}
	for rows.Next() {
		var t Team
		var color sql.NullString
		var syncedAt string
		if err := rows.Scan(&t.ID, &t.Name, &color, &syncedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		t.Color = color.String
		t.SyncedAt = parseTime(syncedAt)
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// Team returns a synced team.
func (s *Store) Team(ctx context.Context, id string) (Team, error) {
	var t Team
	var color sql.NullString
	var syncedAt string
	err := s.db.QueryRowContext(ctx, `SELECT id, name, color, synced_at FROM teams WHERE id = ?`, id).
		Scan(&t.ID, &t.Name, &color, &syncedAt)
	if err == sql.ErrNoRows {
		return Team{}, fmt.Errorf("team %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Team{}, fmt.Errorf("failed to get team: %w", err)
	}
	t.Color = color.String
	t.SyncedAt = parseTime(syncedAt)
	return t, nil
}

// Spaces returns the spaces of a team.
func (s *Store) Spaces(ctx context.Context, teamID string) ([]Space, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, team_id, name, private FROM spaces WHERE team_id = ? ORDER BY name, id`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list spaces: %w", err)
	}
	defer rows.Close()

	spaces := []Space{}
	for rows.Next() {
		var sp Space
		if err := rows.Scan(&sp.ID, &sp.TeamID, &sp.Name, &sp.Private); err != nil {
			return nil, fmt.Errorf("failed to scan space: %w", err)
		}
		spaces = append(spaces, sp)
	}
	return spaces, rows.Err()
}

// Projects returns the projects of a space.
func (s *Store) Projects(ctx context.Context, spaceID string) ([]Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, space_id, name, override_statuses FROM projects WHERE space_id = ? ORDER BY name, id`, spaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []Project{}
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.SpaceID, &p.Name, &p.OverrideStatuses); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// Lists returns the lists of a project.
func (s *Store) Lists(ctx context.Context, projectID string) ([]List, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, project_id, name FROM lists WHERE project_id = ? ORDER BY name, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lists: %w", err)
	}
	defer rows.Close()

	lists := []List{}
	for rows.Next() {
		var l List
		if err := rows.Scan(&l.ID, &l.ProjectID, &l.Name); err != nil {
			return nil, fmt.Errorf("failed to scan list: %w", err)
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

const taskColumns = `id, team_id, list_id, parent_id, name, content, status, status_type, priority,
	due_date, date_created, date_updated, date_closed`

// Tasks returns the tasks matching f, oldest first.
func (s *Store) Tasks(ctx context.Context, f TaskFilter) ([]Task, error) {
	var conditions []string
	var args []interface{}

	if f.TeamID != "" {
		conditions = append(conditions, "team_id = ?")
		args = append(args, f.TeamID)
	}
	if f.ListID != "" {
		conditions = append(conditions, "list_id = ?")
		args = append(args, f.ListID)
	}
	if f.Status != "" {
		conditions = append(conditions, "status = ? COLLATE NOCASE")
		args = append(args, f.Status)
	}
	if f.OpenOnly {
		conditions = append(conditions, "COALESCE(status_type, '') != 'closed'")
	}
	if f.Assignee != 0 {
		conditions = append(conditions, "id IN (SELECT task_id FROM task_assignees WHERE user_id = ?)")
		args = append(args, f.Assignee)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+taskColumns+" FROM tasks "+whereClause+" ORDER BY date_created, id", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, err
	}

	for i := range tasks {
		if tasks[i].Assignees, err = s.assignees(ctx, tasks[i].ID); err != nil {
			return nil, err
		}
	}
	return tasks, nil
}

// Task returns a synced task with its assignees.
func (s *Store) Task(ctx context.Context, id string) (Task, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	if err != nil {
		return Task{}, fmt.Errorf("failed to get task: %w", err)
	}
	tasks, err := scanTasks(rows)
	if err != nil {
		return Task{}, err
	}
	if len(tasks) == 0 {
		return Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}

	t := tasks[0]
	if t.Assignees, err = s.assignees(ctx, id); err != nil {
		return Task{}, err
	}
	return t, nil
}

func (s *Store) assignees(ctx context.Context, taskID string) ([]Assignee, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, username FROM task_assignees WHERE task_id = ? ORDER BY user_id`, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignees: %w", err)
	}
	defer rows.Close()

	assignees := []Assignee{}
	for rows.Next() {
		var a Assignee
		if err := rows.Scan(&a.ID, &a.Username); err != nil {
			return nil, fmt.Errorf("failed to scan assignee: %w", err)
		}
		assignees = append(assignees, a)
	}
	return assignees, rows.Err()
}

func scanTasks(rows *sql.Rows) ([]Task, error) {
	defer rows.Close()

	tasks := []Task{}
	for rows.Next() {
		var t Task
		var listID, parentID, content, status, statusType sql.NullString
		var dueDate, created, updated, closed sql.NullString
		if err := rows.Scan(&t.ID, &t.TeamID, &listID, &parentID, &t.Name, &content, &status, &statusType,
			&t.Priority, &dueDate, &created, &updated, &closed); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		t.ListID = listID.String
		t.ParentID = parentID.String
		t.Content = content.String
		t.Status = status.String
		t.StatusType = statusType.String
		t.DueDate = parseNullTime(dueDate)
		t.DateCreated = parseNullTime(created)
		t.DateUpdated = parseNullTime(updated)
		t.DateClosed = parseNullTime(closed)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatNullTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

func parseNullTime(s sql.NullString) *time.Time {
	if !s.Valid {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil
	}
	return &t
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
