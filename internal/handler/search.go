package handler

import (
	"net/http"

	"earthlink/internal/httputil"
	"earthlink/internal/service"
)

// SearchHandler serves the cross-entity search endpoint.
type SearchHandler struct {
	searchService *service.SearchService
}

func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search runs the per-category lookups.
// GET /search?q=&type=  (type in {events, groups}, omitted for both)
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	typ := r.URL.Query().Get("type")

	results, err := h.searchService.Search(r.Context(), query, typ, viewerFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, results)
}
