package store

import (
	"strings"

	"github.com/goclickup/goclickup/internal/domain"
	"github.com/goclickup/goclickup/pkg/idgen"
)

// Comments returns the comments on a task, list or view, oldest first.
func (w *Workspace) Comments(kind, targetID string) ([]domain.Comment, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if err := w.checkTarget(kind, targetID); err != nil {
		return nil, err
	}
	comments := []domain.Comment{}
	for _, c := range w.comments {
		if c.Target == kind && c.TargetID == targetID {
			comments = append(comments, c)
		}
	}
	return comments, nil
}

// CreateComment posts a comment as the workspace owner.
func (w *Workspace) CreateComment(kind, targetID, text string, assignee *int64) (domain.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Comment{}, domain.NewValidationError("Comment text invalid")
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.checkTarget(kind, targetID); err != nil {
		return domain.Comment{}, err
	}
	c := domain.Comment{
		ID:          idgen.MustNumericID(),
		CommentText: text,
		User:        w.owner,
		Date:        domain.Millis(w.now()),
		Target:      kind,
		TargetID:    targetID,
	}
	if assignee != nil {
		u, err := w.memberByID(*assignee)
		if err != nil {
			return domain.Comment{}, err
		}
		c.Assignee = &u
	}
	w.comments = append(w.comments, c)
	return c, nil
}

// UpdateComment replaces a comment's text, assignee and resolved flag.
func (w *Workspace) UpdateComment(id, text string, assignee *int64, resolved bool) (domain.Comment, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	stored := w.findComment(id)
	if stored == nil {
		return domain.Comment{}, domain.NewNotFoundError("Comment", id)
	}
	c := *stored
	if text != "" {
		c.CommentText = text
	}
	c.Resolved = resolved
	c.Assignee = nil
	if assignee != nil {
		u, err := w.memberByID(*assignee)
		if err != nil {
			return domain.Comment{}, err
		}
		c.Assignee = &u
	}
	*stored = c
	return c, nil
}

// DeleteComment removes a comment.
func (w *Workspace) DeleteComment(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i := range w.comments {
		if w.comments[i].ID == id {
			w.comments = append(w.comments[:i], w.comments[i+1:]...)
			return nil
		}
	}
	return domain.NewNotFoundError("Comment", id)
}

// checkTarget validates the comment target. Views are not modeled, so any
// view id is accepted.
func (w *Workspace) checkTarget(kind, targetID string) error {
	switch kind {
	case "task":
		if w.findTask(targetID) == nil {
			return domain.NewNotFoundError("Task", targetID)
		}
	case "list":
		if l, _ := w.findList(targetID); l == nil {
			return domain.NewNotFoundError("List", targetID)
		}
	case "view":
	default:
		return domain.NewValidationError("Unsupported comment target " + kind)
	}
	return nil
}

func (w *Workspace) findComment(id string) *domain.Comment {
	for i := range w.comments {
		if w.comments[i].ID == id {
			return &w.comments[i]
		}
	}
	return nil
}

func (w *Workspace) memberByID(id int64) (domain.User, error) {
	for _, t := range w.teams {
		for _, m := range t.Members {
			if m.User.ID == id {
				return m.User, nil
			}
		}
	}
	return domain.User{}, domain.NewValidationError("Assignee is not a team member")
}
