package main

import (
	"github.com/spf13/cobra"

	"github.com/goclickup/goclickup/pkg/clickup"
)

func newCommentsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "comments <task|list|view> <id>",
		Short: "List the comments on a task, list or view",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			comments, err := c.GetComments(cmd.Context(), clickup.CommentTarget(args[0]), args[1])
			if err != nil {
				return err
			}
			return a.printer().comments(comments)
		},
	}
}

func newCommentCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Add, resolve and delete comments",
	}

	var assignee int64
	add := &cobra.Command{
		Use:   "add <task|list|view> <id> <text>",
		Short: "Comment on a task, list or view",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			var to clickup.Assignee
			if cmd.Flags().Changed("assignee") {
				to = clickup.UserID(assignee)
			}
			comment, err := c.CreateComment(cmd.Context(), clickup.CommentTarget(args[0]), args[1], args[2], to)
			if err != nil {
				return err
			}
			return a.printer().comment(comment)
		},
	}
	add.Flags().Int64VarP(&assignee, "assignee", "a", 0, "Assign the comment to this user id")

	var (
		resolved   bool
		reassignee int64
	)
	update := &cobra.Command{
		Use:   "update <comment-id> <text>",
		Short: "Edit or resolve a comment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			var to clickup.Assignee
			if cmd.Flags().Changed("assignee") {
				to = clickup.UserID(reassignee)
			}
			comment := clickup.NewComment(c, map[string]interface{}{"id": args[0]})
			if err := comment.Update(cmd.Context(), args[1], to, resolved); err != nil {
				return err
			}
			return a.printer().message("Updated comment " + args[0])
		},
	}
	update.Flags().BoolVar(&resolved, "resolved", false, "Mark the comment resolved")
	update.Flags().Int64VarP(&reassignee, "assignee", "a", 0, "Assign the comment to this user id")

	del := &cobra.Command{
		Use:   "delete <comment-id>",
		Short: "Delete a comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			if !c.DeleteComment(cmd.Context(), args[0]) {
				return errNotDeleted("comment", args[0])
			}
			return a.printer().message("Deleted comment " + args[0])
		},
	}

	cmd.AddCommand(add, update, del)
	return cmd
}
