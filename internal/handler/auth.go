package handler

import (
	"encoding/json"
	"net/http"

	"earthlink/internal/config"
	"earthlink/internal/httputil"
	"earthlink/internal/model"
	"earthlink/internal/service"
	"earthlink/internal/transport/http/middleware"
)

// AuthHandler groups the auth endpoints and their dependencies.
type AuthHandler struct {
	authService *service.AuthService
	config      *config.Config
}

func NewAuthHandler(authService *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		config:      cfg,
	}
}

// Signup handles account creation.
// POST /auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	user, session, err := h.authService.Signup(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	middleware.SetSessionCookie(w, h.config.SessionCookieName, session.Token, h.config.CookieSecure)
	httputil.WriteJSON(w, http.StatusCreated, user.Public())
}

// Login handles user login.
// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	user, session, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	middleware.SetSessionCookie(w, h.config.SessionCookieName, session.Token, h.config.CookieSecure)
	httputil.WriteJSON(w, http.StatusOK, user.Public())
}

// Logout deletes the current session and clears the cookie. It succeeds
// unconditionally, even when no session existed.
// POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.config.SessionCookieName); err == nil {
		if err := h.authService.Logout(r.Context(), cookie.Value); err != nil {
			httputil.WriteInternalError(w, err)
			return
		}
	}

	middleware.ClearSessionCookie(w, h.config.SessionCookieName, h.config.CookieSecure)
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Logged out successfully",
	})
}

// ChangePassword replaces the caller's password.
// POST /auth/change-password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := h.authService.ChangePassword(r.Context(), userID, &req); err != nil {
		writeServiceError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Password updated",
	})
}
