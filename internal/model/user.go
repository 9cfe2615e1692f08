package model

import (
	"errors"
	"time"
)

// User represents a registered account.
type User struct {
	ID             int64     `db:"id" json:"id"`
	Handle         string    `db:"handle" json:"handle"`
	Name           string    `db:"name" json:"name"`
	Email          string    `db:"email" json:"email"`
	PasswordHashed string    `db:"password_hashed" json:"-"`
	Bio            *string   `db:"bio" json:"bio"`
	Avatar         *string   `db:"avatar" json:"avatar"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}

// PublicUser is the view of a user safe to return to other users. It hides
// the email address and password hash at the type level.
type PublicUser struct {
	ID        int64     `json:"id"`
	Handle    string    `json:"handle"`
	Name      string    `json:"name"`
	Bio       *string   `json:"bio"`
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Handle:    u.Handle,
		Name:      u.Name,
		Bio:       u.Bio,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}

// UserSummary is the compact author representation joined onto posts,
// events, replies, member lists and search results.
type UserSummary struct {
	ID     int64   `db:"id" json:"id"`
	Handle string  `db:"handle" json:"handle"`
	Name   string  `db:"name" json:"name"`
	Avatar *string `db:"avatar" json:"avatar"`
}

// SignupRequest is the request body for creating an account.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest is the request body for replacing the caller's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UpdateProfileRequest is the request body for PATCH /profile. Nil fields
// are left unchanged.
type UpdateProfileRequest struct {
	Name   *string `json:"name"`
	Bio    *string `json:"bio"`
	Avatar *string `json:"avatar"`
}

const (
	MinNameLength     = 2
	MinPasswordLength = 6

	// MaxHandleBaseLength bounds the normalized handle before any numeric
	// suffix is appended.
	MaxHandleBaseLength = 20
)

// AnonymousViewerID is substituted for the viewing user when no session is
// present. It can never match a real user id, so viewer-relative flags
// resolve to false without branching the query.
const AnonymousViewerID int64 = -1

var (
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailExists is returned when the email is already registered.
	ErrEmailExists = errors.New("email already registered")

	// ErrHandleTaken is returned on a handle unique-constraint violation.
	// The suffix loop treats it as a signal to retry with the next candidate.
	ErrHandleTaken = errors.New("handle already taken")

	// ErrInvalidCredentials deliberately does not distinguish a missing user
	// from a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
