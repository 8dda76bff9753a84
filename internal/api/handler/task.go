package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/goclickup/goclickup/internal/api/request"
	"github.com/goclickup/goclickup/internal/api/response"
	"github.com/goclickup/goclickup/internal/domain"
	"github.com/goclickup/goclickup/internal/store"
)

// TaskHandler handles task operations.
type TaskHandler struct {
	ws       *store.Workspace
	pageSize int
}

// NewTaskHandler creates a new TaskHandler. pageSize <= 0 uses
// store.DefaultPageSize.
func NewTaskHandler(ws *store.Workspace, pageSize int) *TaskHandler {
	return &TaskHandler{ws: ws, pageSize: pageSize}
}

// ListTasks handles GET /team/{id}/task.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	filter := request.ParseTaskFilter(r, h.pageSize)

	tasks, err := h.ws.QueryTasks(chi.URLParam(r, "id"), filter)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]interface{}{"tasks": tasks})
}

// CreateTask handles POST /list/{id}/task.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTaskRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, domain.NewValidationError("Invalid JSON body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		response.Error(w, domain.NewValidationError(strings.Join(errors, "; ")))
		return
	}

	task, err := h.ws.CreateTask(chi.URLParam(r, "id"), req.Input())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, task)
}

// GetTask handles GET /task/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.ws.GetTask(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, task)
}

// UpdateTask handles PUT /task/{id}.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateTaskRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, domain.NewValidationError("Invalid JSON body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		response.Error(w, domain.NewValidationError(strings.Join(errors, "; ")))
		return
	}

	task, err := h.ws.UpdateTask(chi.URLParam(r, "id"), req.Input())
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, task)
}

// DeleteTask handles DELETE /task/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.ws.DeleteTask(chi.URLParam(r, "id")); err != nil {
		response.Error(w, err)
		return
	}

	response.Empty(w)
}

// ListMembers handles GET /task/{id}/member.
func (h *TaskHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.ws.TaskMembers(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]interface{}{"members": members})
}
