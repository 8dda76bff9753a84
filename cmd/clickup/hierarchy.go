package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/goclickup/goclickup/pkg/clickup"
)

func newUserCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "user",
		Short: "Show the authenticated user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			u, err := c.User(cmd.Context())
			if err != nil {
				return err
			}
			return a.printer().user(u)
		},
	}
}

func newTeamsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "teams",
		Short: "List the teams the user belongs to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			teams, err := c.Teams(cmd.Context())
			if err != nil {
				return err
			}
			return a.printer().teams(teams)
		},
	}
}

func newSpacesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "spaces <team-id>",
		Short: "List the spaces of a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			team, err := c.GetTeamByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			spaces, err := team.Spaces(cmd.Context())
			if err != nil {
				return err
			}
			return a.printer().spaces(spaces)
		},
	}
}

func newProjectsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "projects <team-id> <space-id>",
		Short: "List the projects of a space",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			space, err := findSpace(cmd.Context(), c, args[0], args[1])
			if err != nil {
				return err
			}
			projects, err := space.Projects(cmd.Context())
			if err != nil {
				return err
			}
			return a.printer().projects(projects)
		},
	}
}

func newListsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lists <team-id> <space-id> <project-id>",
		Short: "List the lists of a project",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			project, err := findProject(cmd.Context(), c, args[0], args[1], args[2])
			if err != nil {
				return err
			}
			return a.printer().lists(project.Lists)
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Create and rename lists",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create <team-id> <space-id> <project-id> <name>",
		Short: "Create a list in a project",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			project, err := findProject(cmd.Context(), c, args[0], args[1], args[2])
			if err != nil {
				return err
			}
			list, err := project.CreateList(cmd.Context(), args[3])
			if err != nil {
				return err
			}
			return a.printer().list(list)
		},
	}, &cobra.Command{
		Use:   "rename <list-id> <name>",
		Short: "Rename a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			list := clickup.NewList(c, map[string]interface{}{"id": args[0]}, nil)
			if err := list.Rename(cmd.Context(), args[1]); err != nil {
				return err
			}
			return a.printer().list(list)
		},
	})
	return cmd
}

func findSpace(ctx context.Context, c *clickup.Client, teamID, spaceID string) (*clickup.Space, error) {
	team, err := c.GetTeamByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return team.GetSpace(ctx, spaceID)
}

func findProject(ctx context.Context, c *clickup.Client, teamID, spaceID, projectID string) (*clickup.Project, error) {
	space, err := findSpace(ctx, c, teamID, spaceID)
	if err != nil {
		return nil, err
	}
	return space.GetProject(ctx, projectID)
}
