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

// EventHandler groups the event endpoints.
type EventHandler struct {
	eventService *service.EventService
}

func NewEventHandler(eventService *service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// List returns all events, newest first.
// GET /events
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.GetAll(r.Context(), viewerFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, events)
}

// GetByID returns a single event with meta. Anonymous viewers always see
// likedByCurrentUser/rsvpdByCurrentUser as false.
// GET /events/{id}
func (h *EventHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid event id")
		return
	}

	event, err := h.eventService.GetByID(r.Context(), id, viewerFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, event)
}

// Create publishes a new event and RSVPs its creator.
// POST /events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	event, err := h.eventService.Create(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, event)
}

// Update edits an event the caller owns.
// PATCH /events/{id}
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}
	id, err := parseID(r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid event id")
		return
	}

	var req model.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	event, err := h.eventService.Update(r.Context(), id, userID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, event)
}

// Delete removes an event the caller owns.
// DELETE /events/{id}
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}
	id, err := parseID(r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid event id")
		return
	}

	if err := h.eventService.Delete(r.Context(), id, userID); err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Event deleted"})
}

// Like records a like and returns the refreshed event.
// POST /events/{id}/likes
func (h *EventHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.eventService.Like)
}

// Unlike removes a like and returns the refreshed event.
// DELETE /events/{id}/likes
func (h *EventHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.eventService.Unlike)
}

// RSVP records an RSVP and returns the refreshed event.
// POST /events/{id}/rsvps
func (h *EventHandler) RSVP(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.eventService.RSVP)
}

// UnRSVP withdraws an RSVP and returns the refreshed event.
// DELETE /events/{id}/rsvps
func (h *EventHandler) UnRSVP(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.eventService.UnRSVP)
}

func (h *EventHandler) toggle(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, eventID, userID int64) (*model.Event, error)) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}
	id, err := parseID(r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid event id")
		return
	}

	event, err := op(r.Context(), id, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, event)
}

// Replies lists an event's replies, oldest first.
// GET /events/{id}/replies
func (h *EventHandler) Replies(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid event id")
		return
	}

	replies, err := h.eventService.Replies(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, replies)
}

// CreateReply adds a reply and returns it with the refreshed parent event.
// POST /events/{id}/replies
func (h *EventHandler) CreateReply(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}
	id, err := parseID(r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid event id")
		return
	}

	var req model.ReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	reply, event, err := h.eventService.Reply(r.Context(), id, userID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"reply": reply,
		"event": event,
	})
}
