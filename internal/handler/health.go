package handler

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"earthlink/internal/httputil"
)

// HealthHandler reports liveness and store connectivity.
type HealthHandler struct {
	db *sqlx.DB
}

func NewHealthHandler(db *sqlx.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check pings the database.
// GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		httputil.WriteJSON(w, http.StatusInternalServerError, map[string]string{
			"status":   "degraded",
			"database": "unreachable",
		})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"database": "ok",
	})
}
