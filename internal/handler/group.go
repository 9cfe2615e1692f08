package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"earthlink/internal/httputil"
	"earthlink/internal/model"
	"earthlink/internal/service"
	"earthlink/internal/transport/http/middleware"
)

// GroupHandler groups the group endpoints.
type GroupHandler struct {
	groupService *service.GroupService
}

func NewGroupHandler(groupService *service.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

// List returns all groups, newest first.
// GET /groups
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groupService.GetAll(r.Context(), viewerFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, groups)
}

// GetByID returns a single group with meta.
// GET /groups/{id}
func (h *GroupHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid group id")
		return
	}

	group, err := h.groupService.GetByID(r.Context(), id, viewerFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, group)
}

// Create starts a new group and enrolls its creator.
// POST /groups
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.GroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	group, err := h.groupService.Create(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, group)
}

// Update edits a group the caller owns.
// PATCH /groups/{id}
func (h *GroupHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}
	id, err := parseID(r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid group id")
		return
	}

	var req model.GroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	group, err := h.groupService.Update(r.Context(), id, userID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, group)
}

// Delete removes a group the caller owns.
// DELETE /groups/{id}
func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}
	id, err := parseID(r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid group id")
		return
	}

	if err := h.groupService.Delete(r.Context(), id, userID); err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Group deleted"})
}

// Members lists a group's members, oldest membership first.
// GET /groups/{id}/members
func (h *GroupHandler) Members(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid group id")
		return
	}

	members, err := h.groupService.Members(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"members": members})
}

// Join enrolls the caller and returns the refreshed group.
// POST /groups/{id}/members
func (h *GroupHandler) Join(w http.ResponseWriter, r *http.Request) {
	h.toggleMembership(w, r, h.groupService.Join)
}

// Leave withdraws the caller and returns the refreshed group.
// DELETE /groups/{id}/members
func (h *GroupHandler) Leave(w http.ResponseWriter, r *http.Request) {
	h.toggleMembership(w, r, h.groupService.Leave)
}

func (h *GroupHandler) toggleMembership(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, groupID, userID int64) (*model.Group, error)) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}
	id, err := parseID(r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid group id")
		return
	}

	group, err := op(r.Context(), id, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, group)
}
