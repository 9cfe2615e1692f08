package middleware

import (
	"context"
	"errors"
	"net/http"

	"earthlink/internal/httputil"
	"earthlink/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// UserIDKey is the context key for the authenticated user's ID
	UserIDKey contextKey = "user_id"
)

// SessionResolver resolves a session token to its user. Implemented by
// service.AuthService.
type SessionResolver interface {
	CurrentUser(ctx context.Context, token string) (*model.User, error)
}

// RequireSession rejects requests that do not carry a valid session cookie.
func RequireSession(auth SessionResolver, cookieName string, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := resolveSession(auth, w, r, cookieName, secure)
			if err != nil {
				httputil.WriteInternalError(w, err)
				return
			}
			if user == nil {
				httputil.WriteUnauthorized(w, "Not authenticated")
				return
			}
			ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalSession resolves the session when present but lets anonymous
// requests through without a user in context.
func OptionalSession(auth SessionResolver, cookieName string, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := resolveSession(auth, w, r, cookieName, secure)
			if err != nil {
				httputil.WriteInternalError(w, err)
				return
			}
			if user != nil {
				ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// resolveSession reads the cookie and resolves it to a user. A missing,
// dangling or expired session yields (nil, nil); expired cookies are cleared
// so the client stops sending them.
func resolveSession(auth SessionResolver, w http.ResponseWriter, r *http.Request, cookieName string, secure bool) (*model.User, error) {
	cookie, err := r.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}

	user, err := auth.CurrentUser(r.Context(), cookie.Value)
	if errors.Is(err, model.ErrSessionExpired) {
		ClearSessionCookie(w, cookieName, secure)
		return nil, nil
	}
	if errors.Is(err, model.ErrNotAuthenticated) || errors.Is(err, model.ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserIDFromContext extracts the user ID from the request context.
// Returns the user ID and true if found, or 0 and false if not found.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}
