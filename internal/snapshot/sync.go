package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/goclickup/goclickup/internal/logging"
	"github.com/goclickup/goclickup/pkg/clickup"
)

// SyncStats counts what a sync stored.
type SyncStats struct {
	Spaces   int
	Projects int
	Lists    int
	Tasks    int
}

// Syncer copies a team from the API into a Store.
type Syncer struct {
	client *clickup.Client
	store  *Store
	logger *slog.Logger
	now    func() time.Time
}

// NewSyncer creates a Syncer. A nil logger discards logs.
func NewSyncer(client *clickup.Client, store *Store, logger *slog.Logger) *Syncer {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Syncer{client: client, store: store, logger: logger, now: time.Now}
}

// Sync fetches the team's spaces, projects, lists and every task, including
// subtasks and closed tasks, then replaces the team's snapshot in one
// transaction. Nothing is written when a fetch fails.
func (s *Syncer) Sync(ctx context.Context, teamID string) (SyncStats, error) {
	var stats SyncStats

	team, err := s.client.GetTeamByID(ctx, teamID)
	if err != nil {
		return stats, err
	}

	spaces, err := team.RefreshSpaces(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to fetch spaces: %w", err)
	}
	projects := map[string][]*clickup.Project{}
	for _, space := range spaces {
		ps, err := space.RefreshProjects(ctx)
		if err != nil {
			return stats, fmt.Errorf("failed to fetch projects of space %s: %w", space.ID, err)
		}
		projects[space.ID] = ps
	}

	tasks, err := team.GetAllTasks(ctx, clickup.NoPageLimit,
		clickup.WithSubtasks(true), clickup.WithIncludeClosed(true))
	if err != nil {
		return stats, fmt.Errorf("failed to fetch tasks: %w", err)
	}

	err = s.store.WithTx(ctx, func(tx *Tx) error {
		stats = SyncStats{}
		if err := tx.ReplaceTeam(ctx, Team{ID: team.ID, Name: team.Name, Color: team.Color, SyncedAt: s.now()}); err != nil {
			return err
		}

		for _, space := range spaces {
			if err := tx.PutSpace(ctx, Space{ID: space.ID, TeamID: team.ID, Name: space.Name, Private: space.Private}); err != nil {
				return err
			}
			stats.Spaces++

			for _, p := range projects[space.ID] {
				if err := tx.PutProject(ctx, Project{ID: p.ID, SpaceID: space.ID, Name: p.Name, OverrideStatuses: p.OverrideStatuses}); err != nil {
					return err
				}
				stats.Projects++

				for _, l := range p.Lists {
					if err := tx.PutList(ctx, List{ID: l.ID, ProjectID: p.ID, Name: l.Name}); err != nil {
						return err
					}
					stats.Lists++
				}
			}
		}

		for _, t := range tasks {
			if err := tx.PutTask(ctx, TaskFromAPI(team.ID, t)); err != nil {
				return err
			}
			stats.Tasks++
		}
		return nil
	})
	if err != nil {
		return SyncStats{}, err
	}

	s.logger.Info("snapshot synced",
		"team", team.ID,
		"spaces", stats.Spaces,
		"projects", stats.Projects,
		"lists", stats.Lists,
		"tasks", stats.Tasks,
	)
	return stats, nil
}

// TaskFromAPI converts an API task into a snapshot row.
func TaskFromAPI(teamID string, t *clickup.Task) Task {
	row := Task{
		ID:          t.ID,
		TeamID:      teamID,
		ParentID:    t.Attrs.String("parent"),
		Name:        t.Name,
		Content:     t.Content,
		Priority:    int(t.Priority),
		DueDate:     t.DueDate,
		DateCreated: t.DateCreated,
		DateUpdated: t.DateUpdated,
		DateClosed:  t.DateClosed,
		Assignees:   make([]Assignee, 0, len(t.Assignees)),
	}
	if list := t.Attrs.Map("list"); list != nil {
		row.ListID = clickup.Object(list).String("id")
	}
	if t.Status != nil {
		row.Status = t.Status.Status
		row.StatusType = string(t.Status.Type)
	}
	for _, u := range t.Assignees {
		row.Assignees = append(row.Assignees, Assignee{ID: u.ID, Username: u.Username})
	}
	return row
}
