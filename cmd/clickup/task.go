package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/goclickup/goclickup/pkg/clickup"
)

const dateLayout = "2006-01-02"

func newTasksCmd(a *app) *cobra.Command {
	var (
		lists         []string
		spaces        []string
		projects      []string
		statuses      []string
		assignees     []int64
		includeClosed bool
		subtasks      bool
		orderBy       string
		reverse       bool
		page          int
		all           bool
		pageLimit     int
	)

	cmd := &cobra.Command{
		Use:   "tasks <team-id>",
		Short: "List the tasks of a team",
		Long: `List the tasks of a team, one page at a time or with --all every page.

Filters combine: --list, --space, --project, --status and --assignee accept
several values, either repeated or comma separated.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			opts := []clickup.TaskQueryOption{
				clickup.WithIncludeClosed(includeClosed),
			}
			if len(lists) > 0 {
				opts = append(opts, clickup.WithListIDs(lists...))
			}
			if len(spaces) > 0 {
				opts = append(opts, clickup.WithSpaceIDs(spaces...))
			}
			if len(projects) > 0 {
				opts = append(opts, clickup.WithProjectIDs(projects...))
			}
			if len(statuses) > 0 {
				opts = append(opts, clickup.WithStatuses(statuses...))
			}
			if len(assignees) > 0 {
				opts = append(opts, clickup.WithAssigneeFilter(userIDs(assignees)...))
			}
			if cmd.Flags().Changed("subtasks") {
				opts = append(opts, clickup.WithSubtasks(subtasks))
			}
			if orderBy != "" {
				opts = append(opts, clickup.WithOrderBy(clickup.TaskOrder(orderBy)))
			}
			if cmd.Flags().Changed("reverse") {
				opts = append(opts, clickup.WithReverse(reverse))
			}

			var tasks []*clickup.Task
			if all {
				tasks, err = c.GetAllTasks(cmd.Context(), args[0], pageLimit, opts...)
			} else {
				tasks, err = c.GetTasks(cmd.Context(), args[0], append(opts, clickup.WithPage(page))...)
			}
			if err != nil {
				return err
			}
			return a.printer().tasks(tasks)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&lists, "list", nil, "Only tasks in these lists")
	flags.StringSliceVar(&spaces, "space", nil, "Only tasks in these spaces")
	flags.StringSliceVar(&projects, "project", nil, "Only tasks in these projects")
	flags.StringSliceVar(&statuses, "status", nil, "Only tasks with these statuses")
	flags.Int64SliceVar(&assignees, "assignee", nil, "Only tasks assigned to these user ids")
	flags.BoolVar(&includeClosed, "include-closed", false, "Include closed tasks")
	flags.BoolVar(&subtasks, "subtasks", false, "Include subtasks")
	flags.StringVar(&orderBy, "order-by", "", "Order by id, created, updated or due_date")
	flags.BoolVar(&reverse, "reverse", false, "Reverse the order")
	flags.IntVar(&page, "page", 0, "Page to fetch")
	flags.BoolVar(&all, "all", false, "Fetch every page")
	flags.IntVar(&pageLimit, "page-limit", clickup.NoPageLimit, "Maximum pages with --all (negative for no limit)")
	return cmd
}

func newTaskCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Show, create, update and delete tasks",
	}
	cmd.AddCommand(
		newTaskGetCmd(a),
		newTaskCreateCmd(a),
		newTaskUpdateCmd(a),
		newTaskDeleteCmd(a),
		newTaskMembersCmd(a),
	)
	return cmd
}

func newTaskGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <task-id>",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			task, err := c.GetTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printer().task(task)
		},
	}
}

func newTaskCreateCmd(a *app) *cobra.Command {
	var (
		content   string
		status    string
		priority  string
		due       string
		parent    string
		assignees []int64
	)

	cmd := &cobra.Command{
		Use:   "create <list-id> <name>",
		Short: "Create a task in a list",
		Long: `Create a task in a list.

Priority can be given as a number (0-4) or a name:
  1 / urgent
  2 / high
  3 / normal
  4 / low
  0 / none (not sent)`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []clickup.CreateTaskOption
			if content != "" {
				opts = append(opts, clickup.WithContent(content))
			}
			if status != "" {
				opts = append(opts, clickup.WithStatus(status))
			}
			if priority != "" {
				p, err := clickup.ParsePriority(priority)
				if err != nil {
					return err
				}
				opts = append(opts, clickup.WithPriority(p))
			}
			if due != "" {
				d, err := parseDate(due)
				if err != nil {
					return err
				}
				opts = append(opts, clickup.WithDueDate(d))
			}
			if parent != "" {
				opts = append(opts, clickup.WithParent(parent))
			}
			if len(assignees) > 0 {
				opts = append(opts, clickup.WithAssignees(userIDs(assignees)...))
			}

			c, err := a.client()
			if err != nil {
				return err
			}
			task, err := c.CreateTask(cmd.Context(), args[0], args[1], opts...)
			if err != nil {
				return err
			}
			return a.printer().task(task)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&content, "content", "c", "", "Task description")
	flags.StringVarP(&status, "status", "s", "", "Initial status")
	flags.StringVarP(&priority, "priority", "p", "", "Priority (0-4 or name)")
	flags.StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	flags.StringVar(&parent, "parent", "", "Parent task id")
	flags.Int64SliceVarP(&assignees, "assignee", "a", nil, "Assignee user ids")
	return cmd
}

func newTaskUpdateCmd(a *app) *cobra.Command {
	var (
		name     string
		content  string
		status   string
		priority string
		due      string
		add      []int64
		remove   []int64
	)

	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Update a task",
		Long:  `Update a task. Only the given flags are sent.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			var opts []clickup.UpdateTaskOption
			if flags.Changed("name") {
				opts = append(opts, clickup.WithName(name))
			}
			if flags.Changed("content") {
				opts = append(opts, clickup.WithUpdateContent(content))
			}
			if flags.Changed("status") {
				opts = append(opts, clickup.WithUpdateStatus(status))
			}
			if flags.Changed("priority") {
				p, err := clickup.ParsePriority(priority)
				if err != nil {
					return err
				}
				opts = append(opts, clickup.WithUpdatePriority(p))
			}
			if flags.Changed("due") {
				d, err := parseDate(due)
				if err != nil {
					return err
				}
				opts = append(opts, clickup.WithUpdateDueDate(d))
			}
			if len(add) > 0 {
				opts = append(opts, clickup.WithAddAssignees(userIDs(add)...))
			}
			if len(remove) > 0 {
				opts = append(opts, clickup.WithRemoveAssignees(userIDs(remove)...))
			}
			if len(opts) == 0 {
				return fmt.Errorf("nothing to update: pass at least one of --name, --content, --status, --priority, --due, --add-assignee or --remove-assignee")
			}

			c, err := a.client()
			if err != nil {
				return err
			}
			task, err := c.GetTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := task.Update(cmd.Context(), opts...); err != nil {
				return err
			}
			updated, err := c.GetTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printer().task(updated)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&name, "name", "n", "", "New name")
	flags.StringVarP(&content, "content", "c", "", "New description")
	flags.StringVarP(&status, "status", "s", "", "New status")
	flags.StringVarP(&priority, "priority", "p", "", "New priority (0-4 or name)")
	flags.StringVar(&due, "due", "", "New due date (YYYY-MM-DD)")
	flags.Int64SliceVar(&add, "add-assignee", nil, "User ids to assign")
	flags.Int64SliceVar(&remove, "remove-assignee", nil, "User ids to unassign")
	return cmd
}

func newTaskDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			if !c.DeleteTask(cmd.Context(), args[0]) {
				return errNotDeleted("task", args[0])
			}
			return a.printer().message("Deleted task " + args[0])
		},
	}
}

func newTaskMembersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "members <task-id>",
		Short: "List the users who can access a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			task, err := c.GetTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			members, err := task.Members(cmd.Context())
			if err != nil {
				return err
			}
			return a.printer().users(members)
		},
	}
}

// parseDate reads a YYYY-MM-DD date as midnight UTC.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

func userIDs(ids []int64) []clickup.Assignee {
	out := make([]clickup.Assignee, 0, len(ids))
	for _, id := range ids {
		out = append(out, clickup.UserID(id))
	}
	return out
}
