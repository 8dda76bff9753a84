package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/goclickup/goclickup/internal/api/request"
	"github.com/goclickup/goclickup/internal/api/response"
	"github.com/goclickup/goclickup/internal/domain"
	"github.com/goclickup/goclickup/internal/store"
)

// CommentHandler handles comments on tasks, lists and views.
type CommentHandler struct {
	ws *store.Workspace
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(ws *store.Workspace) *CommentHandler {
	return &CommentHandler{ws: ws}
}

// createdComment is what the API answers to a new comment; the text is not
// echoed back.
type createdComment struct {
	ID     string `json:"id"`
	HistID string `json:"hist_id"`
	Date   string `json:"date"`
}

// ListComments returns the handler for GET /{kind}/{id}/comment.
func (h *CommentHandler) ListComments(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comments, err := h.ws.Comments(kind, chi.URLParam(r, "id"))
		if err != nil {
			response.Error(w, err)
			return
		}

		response.OK(w, map[string]interface{}{"comments": comments})
	}
}

// CreateComment returns the handler for POST /{kind}/{id}/comment.
func (h *CommentHandler) CreateComment(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req request.CommentRequest
		if err := request.DecodeJSON(r, &req); err != nil {
			response.Error(w, domain.NewValidationError("Invalid JSON body"))
			return
		}

		c, err := h.ws.CreateComment(kind, chi.URLParam(r, "id"), req.Content, req.Assignee)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.OK(w, createdComment{ID: c.ID, HistID: c.ID, Date: c.Date})
	}
}

// UpdateComment handles PUT /comment/{id}.
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	var req request.CommentUpdateRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, domain.NewValidationError("Invalid JSON body"))
		return
	}

	if _, err := h.ws.UpdateComment(chi.URLParam(r, "id"), req.CommentText, req.Assignee, req.Resolved); err != nil {
		response.Error(w, err)
		return
	}

	response.Empty(w)
}

// DeleteComment handles DELETE /comment/{id}.
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	if err := h.ws.DeleteComment(chi.URLParam(r, "id")); err != nil {
		response.Error(w, err)
		return
	}

	response.Empty(w)
}
