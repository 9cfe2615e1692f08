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

// PostHandler groups the post endpoints.
type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// List returns all posts, newest first.
// GET /posts
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.GetAll(r.Context(), viewerFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, posts)
}

// GetByID returns a single post with meta.
// GET /posts/{id}
func (h *PostHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post id")
		return
	}

	post, err := h.postService.GetByID(r.Context(), id, viewerFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, post)
}

// Create publishes a new post.
// POST /posts
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	post, err := h.postService.Create(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, post)
}

// Update edits a post the caller owns.
// PATCH /posts/{id}
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}
	id, err := parseID(r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post id")
		return
	}

	var req model.PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	post, err := h.postService.Update(r.Context(), id, userID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, post)
}

// Delete removes a post the caller owns.
// DELETE /posts/{id}
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}
	id, err := parseID(r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post id")
		return
	}

	if err := h.postService.Delete(r.Context(), id, userID); err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Post deleted"})
}

// Like records a like and returns the refreshed post.
// POST /posts/{id}/likes
func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, h.postService.Like)
}

// Unlike removes a like and returns the refreshed post.
// DELETE /posts/{id}/likes
func (h *PostHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, h.postService.Unlike)
}

func (h *PostHandler) toggleLike(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, postID, userID int64) (*model.Post, error)) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}
	id, err := parseID(r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post id")
		return
	}

	post, err := op(r.Context(), id, userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, post)
}

// Replies lists a post's replies, oldest first.
// GET /posts/{id}/replies
func (h *PostHandler) Replies(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post id")
		return
	}

	replies, err := h.postService.Replies(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, replies)
}

// CreateReply adds a reply and returns it with the refreshed parent post.
// POST /posts/{id}/replies
func (h *PostHandler) CreateReply(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}
	id, err := parseID(r)
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post id")
		return
	}

	var req model.ReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	reply, post, err := h.postService.Reply(r.Context(), id, userID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"reply": reply,
		"post":  post,
	})
}
