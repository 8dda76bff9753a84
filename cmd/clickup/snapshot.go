package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/goclickup/goclickup/internal/config"
	"github.com/goclickup/goclickup/internal/logging"
	"github.com/goclickup/goclickup/internal/snapshot"
)

// DefaultSnapshotFile is the snapshot database under the global config dir.
const DefaultSnapshotFile = "snapshot.db"

func newSnapshotCmd(a *app) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Keep an offline SQLite copy of a team",
		Long: `Keep an offline SQLite copy of a team's spaces, projects, lists and
tasks. "snapshot sync" replaces the team's copy; the other subcommands read
it without calling the API.`,
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "Snapshot database (default ~/.clickup/snapshot.db)")

	open := func(cmd *cobra.Command) (*snapshot.Store, error) {
		path, err := a.snapshotPath(dbPath)
		if err != nil {
			return nil, err
		}
		return snapshot.Open(cmd.Context(), path)
	}

	sync := &cobra.Command{
		Use:   "sync <team-id>",
		Short: "Fetch a team and replace its snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			store, err := open(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			logger := logging.Nop()
			if a.cfg.Debug {
				logger = logging.Debug(a.stderr)
			}
			stats, err := snapshot.NewSyncer(c, store, logger).Sync(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printer().syncStats(args[0], stats)
		},
	}

	teams := &cobra.Command{
		Use:   "teams",
		Short: "List the synced teams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			teams, err := store.Teams(cmd.Context())
			if err != nil {
				return err
			}
			return a.printer().snapshotTeams(teams)
		},
	}

	var filter snapshot.TaskFilter
	tasks := &cobra.Command{
		Use:   "tasks",
		Short: "Query the synced tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open(cmd)
			if err != nil {
				return err
			}
			defer store.Close()

			result, err := store.Tasks(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return a.printer().snapshotTasks(result)
		},
	}
	flags := tasks.Flags()
	flags.StringVar(&filter.TeamID, "team", "", "Only tasks of this team")
	flags.StringVar(&filter.ListID, "list", "", "Only tasks in this list")
	flags.StringVar(&filter.Status, "status", "", "Only tasks with this status")
	flags.Int64Var(&filter.Assignee, "assignee", 0, "Only tasks assigned to this user id")
	flags.BoolVar(&filter.OpenOnly, "open", false, "Hide closed tasks")

	cmd.AddCommand(sync, teams, tasks)
	return cmd
}

// snapshotPath returns path, or the default file under the global config
// dir which is created on demand.
func (a *app) snapshotPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	home := a.resolve.HomeDir
	if home == "" {
		var err error
		if home, err = os.UserHomeDir(); err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
	}
	dir := filepath.Join(home, config.GlobalConfigDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return filepath.Join(dir, DefaultSnapshotFile), nil
}
