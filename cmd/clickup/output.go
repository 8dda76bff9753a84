package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goclickup/goclickup/internal/config"
	"github.com/goclickup/goclickup/internal/snapshot"
	"github.com/goclickup/goclickup/pkg/clickup"
)

// printer renders command results in the configured output format.
type printer struct {
	w      io.Writer
	format string
}

// print writes v as JSON or YAML, or calls table for the table format.
func (p printer) print(v interface{}, table func(tw *tabwriter.Writer)) error {
	switch p.format {
	case config.FormatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.FormatYAML:
		return p.yaml(v)
	default:
		tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
		table(tw)
		return tw.Flush()
	}
}

// yaml goes through JSON first so the json tags and time formats of the
// SDK types apply.
func (p printer) yaml(v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return enc.Close()
}

// message prints a one-line confirmation.
func (p printer) message(msg string) error {
	return p.print(map[string]string{"message": msg}, func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, msg)
	})
}

func (p printer) printError(err error) {
	body := map[string]interface{}{"message": err.Error()}
	var apiErr *clickup.Error
	if errors.As(err, &apiErr) {
		body["code"] = string(apiErr.Code)
		if apiErr.StatusCode != 0 {
			body["status"] = apiErr.StatusCode
		}
	}

	switch p.format {
	case config.FormatJSON, config.FormatYAML:
		p.print(map[string]interface{}{"error": body}, nil)
	default:
		fmt.Fprintf(p.w, "Error: %s\n", err.Error())
	}
}

func (p printer) user(u *clickup.User) error {
	return p.print(u, func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "ID:\t%d\n", u.ID)
		fmt.Fprintf(tw, "Username:\t%s\n", u.Username)
		if u.Email != "" {
			fmt.Fprintf(tw, "Email:\t%s\n", u.Email)
		}
		if u.Initials != "" {
			fmt.Fprintf(tw, "Initials:\t%s\n", u.Initials)
		}
	})
}

func (p printer) users(users []*clickup.User) error {
	return p.print(users, func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "ID\tUSERNAME\tEMAIL\n")
		for _, u := range users {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", u.ID, u.Username, u.Email)
		}
	})
}

func (p printer) teams(teams []*clickup.Team) error {
	return p.print(teams, func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "ID\tNAME\tMEMBERS\n")
		for _, t := range teams {
			fmt.Fprintf(tw, "%s\t%s\t%d\n", t.ID, t.Name, len(t.Members))
		}
	})
}

func (p printer) spaces(spaces []*clickup.Space) error {
	return p.print(spaces, func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "ID\tNAME\tPRIVATE\tSTATUSES\n")
		for _, s := range spaces {
			fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", s.ID, s.Name, s.Private, statusNames(s.Statuses))
		}
	})
}

func (p printer) projects(projects []*clickup.Project) error {
	return p.print(projects, func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "ID\tNAME\tLISTS\n")
		for _, pr := range projects {
			fmt.Fprintf(tw, "%s\t%s\t%d\n", pr.ID, pr.Name, len(pr.Lists))
		}
	})
}

func (p printer) lists(lists []*clickup.List) error {
	return p.print(lists, func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "ID\tNAME\n")
		for _, l := range lists {
			fmt.Fprintf(tw, "%s\t%s\n", l.ID, l.Name)
		}
	})
}

func (p printer) list(l *clickup.List) error {
	return p.print(l, func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "ID:\t%s\n", l.ID)
		fmt.Fprintf(tw, "Name:\t%s\n", l.Name)
	})
}

func (p printer) task(t *clickup.Task) error {
	return p.print(t, func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "ID:\t%s\n", t.ID)
		fmt.Fprintf(tw, "Name:\t%s\n", t.Name)
		fmt.Fprintf(tw, "Status:\t%s\n", statusName(t.Status))
		fmt.Fprintf(tw, "Priority:\t%s\n", t.Priority)
		if t.Content != "" {
			fmt.Fprintf(tw, "Content:\t%s\n", t.Content)
		}
		if parent := t.Attrs.String("parent"); parent != "" {
			fmt.Fprintf(tw, "Parent:\t%s\n", parent)
		}
		if len(t.Assignees) > 0 {
			fmt.Fprintf(tw, "Assignees:\t%s\n", usernames(t.Assignees))
		}
		if t.DueDate != nil {
			fmt.Fprintf(tw, "Due:\t%s\n", formatTime(t.DueDate))
		}
		if t.DateCreated != nil {
			fmt.Fprintf(tw, "Created:\t%s\n", formatTime(t.DateCreated))
		}
		if t.DateUpdated != nil {
			fmt.Fprintf(tw, "Updated:\t%s\n", formatTime(t.DateUpdated))
		}
		if t.DateClosed != nil {
			fmt.Fprintf(tw, "Closed:\t%s\n", formatTime(t.DateClosed))
		}
	})
}

func (p printer) tasks(tasks []*clickup.Task) error {
	if p.format == config.FormatTable && len(tasks) == 0 {
		_, err := fmt.Fprintln(p.w, "No tasks found")
		return err
	}
	return p.print(tasks, func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "ID\tNAME\tSTATUS\tPRIORITY\tDUE\n")
		for _, t := range tasks {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				t.ID, truncate(t.Name, 40), statusName(t.Status), t.Priority, formatTime(t.DueDate))
		}
	})
}

func (p printer) comments(comments []*clickup.Comment) error {
	if p.format == config.FormatTable && len(comments) == 0 {
		_, err := fmt.Fprintln(p.w, "No comments found")
		return err
	}
	return p.print(comments, func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "ID\tUSER\tDATE\tRESOLVED\tTEXT\n")
		for _, c := range comments {
			user := ""
			if c.User != nil {
				user = c.User.Username
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\n", c.ID, user, formatTime(c.Date), c.Resolved, truncate(c.Text, 50))
		}
	})
}

func (p printer) comment(c *clickup.Comment) error {
	return p.print(c, func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "ID:\t%s\n", c.ID)
		fmt.Fprintf(tw, "Text:\t%s\n", c.Text)
		if c.Date != nil {
			fmt.Fprintf(tw, "Date:\t%s\n", formatTime(c.Date))
		}
	})
}

func (p printer) syncStats(teamID string, stats snapshot.SyncStats) error {
	return p.print(stats, func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "Synced team %s\n", teamID)
		fmt.Fprintf(tw, "Spaces:\t%d\n", stats.Spaces)
		fmt.Fprintf(tw, "Projects:\t%d\n", stats.Projects)
		fmt.Fprintf(tw, "Lists:\t%d\n", stats.Lists)
		fmt.Fprintf(tw, "Tasks:\t%d\n", stats.Tasks)
	})
}

func (p printer) snapshotTeams(teams []snapshot.Team) error {
	return p.print(teams, func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "ID\tNAME\tSYNCED\n")
		for _, t := range teams {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", t.ID, t.Name, formatTime(&t.SyncedAt))
		}
	})
}

func (p printer) snapshotTasks(tasks []snapshot.Task) error {
	if p.format == config.FormatTable && len(tasks) == 0 {
		_, err := fmt.Fprintln(p.w, "No tasks found")
		return err
	}
	return p.print(tasks, func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "ID\tNAME\tSTATUS\tPRIORITY\tLIST\n")
		for _, t := range tasks {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				t.ID, truncate(t.Name, 40), t.Status, clickup.Priority(t.Priority), t.ListID)
		}
	})
}

func statusName(s *clickup.Status) string {
	if s == nil {
		return ""
	}
	return s.Status
}

func statusNames(statuses []*clickup.Status) string {
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.Status)
	}
	return strings.Join(names, ", ")
}

func usernames(users []*clickup.User) string {
	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Username)
	}
	return strings.Join(names, ", ")
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format("2006-01-02 15:04")
}

// truncate shortens s to max runes, marking the cut with "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
