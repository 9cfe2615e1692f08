package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"earthlink/internal/httputil"
	"earthlink/internal/model"
	"earthlink/internal/transport/http/middleware"
)

// parseID reads the {id} URL parameter as an int64.
func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// viewerFromContext returns the authenticated user's id, or nil for
// anonymous requests.
func viewerFromContext(ctx context.Context) *int64 {
	if id, ok := middleware.GetUserIDFromContext(ctx); ok {
		return &id
	}
	return nil
}

// writeServiceError maps service-layer errors onto the shared error shape.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		httputil.WriteBadRequest(w, verr.Message)
	case errors.Is(err, model.ErrInvalidCredentials),
		errors.Is(err, model.ErrNotAuthenticated),
		errors.Is(err, model.ErrSessionExpired):
		httputil.WriteUnauthorized(w, err.Error())
	case errors.Is(err, model.ErrNotPostOwner),
		errors.Is(err, model.ErrNotEventOwner),
		errors.Is(err, model.ErrNotGroupOwner):
		httputil.WriteForbidden(w, err.Error())
	case errors.Is(err, model.ErrPostNotFound),
		errors.Is(err, model.ErrEventNotFound),
		errors.Is(err, model.ErrGroupNotFound),
		errors.Is(err, model.ErrUserNotFound):
		httputil.WriteNotFound(w, err.Error())
	case errors.Is(err, model.ErrEmailExists):
		httputil.WriteConflict(w, err.Error())
	default:
		httputil.WriteInternalError(w, err)
	}
}
