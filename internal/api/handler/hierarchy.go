package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/goclickup/goclickup/internal/api/request"
	"github.com/goclickup/goclickup/internal/api/response"
	"github.com/goclickup/goclickup/internal/domain"
	"github.com/goclickup/goclickup/internal/store"
)

// HierarchyHandler serves the user and the team > space > project > list
// tree.
type HierarchyHandler struct {
	ws *store.Workspace
}

// NewHierarchyHandler creates a new HierarchyHandler.
func NewHierarchyHandler(ws *store.Workspace) *HierarchyHandler {
	return &HierarchyHandler{ws: ws}
}

// GetUser handles GET /user.
func (h *HierarchyHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]interface{}{"user": h.ws.Owner()})
}

// ListTeams handles GET /team.
func (h *HierarchyHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]interface{}{"teams": h.ws.Teams()})
}

// GetTeam handles GET /team/{id}.
func (h *HierarchyHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	team, err := h.ws.Team(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]interface{}{"team": team})
}

// ListSpaces handles GET /team/{id}/space.
func (h *HierarchyHandler) ListSpaces(w http.ResponseWriter, r *http.Request) {
	spaces, err := h.ws.Spaces(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]interface{}{"spaces": spaces})
}

// ListProjects handles GET /space/{id}/project.
func (h *HierarchyHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.ws.Projects(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, map[string]interface{}{"projects": projects})
}

// CreateList handles POST /project/{id}/list.
func (h *HierarchyHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	var req request.NameRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, domain.NewValidationError("Invalid JSON body"))
		return
	}

	list, err := h.ws.CreateList(chi.URLParam(r, "id"), req.Name)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, list)
}

// RenameList handles PUT /list/{id}.
func (h *HierarchyHandler) RenameList(w http.ResponseWriter, r *http.Request) {
	var req request.NameRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, domain.NewValidationError("Invalid JSON body"))
		return
	}

	list, err := h.ws.RenameList(chi.URLParam(r, "id"), req.Name)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.OK(w, list)
}
