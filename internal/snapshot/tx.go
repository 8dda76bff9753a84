package snapshot

import (
	"context"
	"database/sql"
	"fmt"
)

// Tx writes to the snapshot inside a transaction.
type Tx struct {
	tx *sql.Tx
}

// ReplaceTeam removes everything synced for the team, then stores the team
// row again.
func (t *Tx) ReplaceTeam(ctx context.Context, team Team) error {
	if _, err := t.tx.ExecContext(ctx, `DELETE FROM teams WHERE id = ?`, team.ID); err != nil {
		return fmt.Errorf("failed to clear team %s: %w", team.ID, err)
	}
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO teams (id, name, color, synced_at) VALUES (?, ?, ?, ?)`,
		team.ID, team.Name, nullString(team.Color), formatTime(team.SyncedAt))
	if err != nil {
		return fmt.Errorf("failed to store team: %w", err)
	}
	return nil
}

// PutSpace stores a space.
func (t *Tx) PutSpace(ctx context.Context, s Space) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO spaces (id, team_id, name, private) VALUES (?, ?, ?, ?)`,
		s.ID, s.TeamID, s.Name, s.Private)
	if err != nil {
		return fmt.Errorf("failed to store space %s: %w", s.ID, err)
	}
	return nil
}

// PutProject stores a project.
func (t *Tx) PutProject(ctx context.Context, p Project) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO projects (id, space_id, name, override_statuses) VALUES (?, ?, ?, ?)`,
		p.ID, p.SpaceID, p.Name, p.OverrideStatuses)
	if err != nil {
		return fmt.Errorf("failed to store project %s: %w", p.ID, err)
	}
	return nil
}

// PutList stores a list.
func (t *Tx) PutList(ctx context.Context, l List) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO lists (id, project_id, name) VALUES (?, ?, ?)`,
		l.ID, l.ProjectID, l.Name)
	if err != nil {
		return fmt.Errorf("failed to store list %s: %w", l.ID, err)
	}
	return nil
}

// PutTask stores a task and replaces its assignees.
func (t *Tx) PutTask(ctx context.Context, task Task) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID,
		task.TeamID,
		nullString(task.ListID),
		nullString(task.ParentID),
		task.Name,
		nullString(task.Content),
		nullString(task.Status),
		nullString(task.StatusType),
		task.Priority,
		formatNullTime(task.DueDate),
		formatNullTime(task.DateCreated),
		formatNullTime(task.DateUpdated),
		formatNullTime(task.DateClosed),
	)
	if err != nil {
		return fmt.Errorf("failed to store task %s: %w", task.ID, err)
	}

	if _, err := t.tx.ExecContext(ctx, `DELETE FROM task_assignees WHERE task_id = ?`, task.ID); err != nil {
		return fmt.Errorf("failed to clear assignees of %s: %w", task.ID, err)
	}
	for _, a := range task.Assignees {
		_, err := t.tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO task_assignees (task_id, user_id, username) VALUES (?, ?, ?)`,
			task.ID, a.ID, a.Username)
		if err != nil {
			return fmt.Errorf("failed to store assignee of %s: %w", task.ID, err)
		}
	}
	return nil
}
