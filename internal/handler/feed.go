package handler

import (
	"net/http"

	"earthlink/internal/httputil"
	"earthlink/internal/service"
)

// FeedHandler serves the combined posts+events feed.
type FeedHandler struct {
	feedService *service.FeedService
}

func NewFeedHandler(feedService *service.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// GetFeed returns the combined reverse-chronological feed.
// GET /feed
func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	feed, err := h.feedService.GetFeed(r.Context(), viewerFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, feed)
}
