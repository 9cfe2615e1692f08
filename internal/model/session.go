package model

import (
	"errors"
	"time"
)

// SessionTTL is the absolute lifetime of a session from creation. There is
// no sliding renewal.
const SessionTTL = 7 * 24 * time.Hour

// Session maps an opaque cookie token to a user.
type Session struct {
	Token     string    `db:"token"`
	UserID    int64     `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

var (
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired is returned when a session is read past its expiry.
	// The caller is expected to clear the cookie; the store row has already
	// been evicted.
	ErrSessionExpired = errors.New("session expired")

	ErrNotAuthenticated = errors.New("not authenticated")
)
