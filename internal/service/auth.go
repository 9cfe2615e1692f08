package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"earthlink/internal/model"
	"earthlink/internal/repository"
)

const (
	// maxHandleAttempts bounds the suffix probe loop. The database unique
	// constraint stays the authoritative collision signal.
	maxHandleAttempts = 5000

	// createRetries bounds how often Signup retries after losing a handle
	// race to a concurrent signup.
	createRetries = 3
)

// AuthService handles signup, login, logout, password changes and session
// resolution.
type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
}

func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
	}
}

// Signup validates the request, derives a unique handle, hashes the password
// and creates both the user and their first session.
func (s *AuthService) Signup(ctx context.Context, req *model.SignupRequest) (*model.User, *model.Session, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)

	if len(name) < model.MinNameLength {
		return nil, nil, model.Invalid("Name must be at least 2 characters.")
	}
	if !strings.Contains(email, "@") {
		return nil, nil, model.Invalid("Please enter a valid email address.")
	}
	if len(password) < model.MinPasswordLength {
		return nil, nil, model.Invalid("Password must be at least 6 characters.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	base := handleBase(name, email)
	user := &model.User{
		Name:           name,
		Email:          email,
		PasswordHashed: string(hashed),
	}

	// The availability probe only picks a starting point; a concurrent
	// signup can still claim the candidate first, in which case the insert
	// fails on the unique constraint and we re-derive.
	for attempt := 0; ; attempt++ {
		handle, err := s.availableHandle(ctx, base)
		if err != nil {
			return nil, nil, err
		}
		user.Handle = handle

		err = s.userRepo.Create(ctx, user)
		if errors.Is(err, model.ErrHandleTaken) && attempt < createRetries {
			log.Printf("[AuthService] Lost handle race for %q, retrying", handle)
			continue
		}
		if errors.Is(err, model.ErrEmailExists) {
			return nil, nil, model.ErrEmailExists
		}
		if err != nil {
			return nil, nil, fmt.Errorf("create user: %w", err)
		}
		break
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Login authenticates by normalized email and password. Missing users and
// wrong passwords produce the same error to avoid user enumeration.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.User, *model.Session, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	password := strings.TrimSpace(req.Password)

	if email == "" || password == "" {
		return nil, nil, model.Invalid("Email and password are required.")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, model.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte(password)) != nil {
		return nil, nil, model.ErrInvalidCredentials
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Logout deletes the session for the given token. It succeeds even when no
// such session exists.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	err := s.sessionRepo.Delete(ctx, token)
	if err != nil && !errors.Is(err, model.ErrSessionNotFound) {
		return err
	}
	return nil
}

// CurrentUser resolves a session token to its user. Expired sessions are
// evicted on read and reported as model.ErrSessionExpired so the caller can
// clear the cookie.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, model.ErrNotAuthenticated
	}

	session, err := s.sessionRepo.GetByToken(ctx, token)
	if errors.Is(err, model.ErrSessionNotFound) {
		return nil, model.ErrNotAuthenticated
	}
	if err != nil {
		return nil, err
	}

	if session.IsExpired() {
		if err := s.sessionRepo.Delete(ctx, session.Token); err != nil &&
			!errors.Is(err, model.ErrSessionNotFound) {
			log.Printf("[AuthService] Failed to evict expired session: %v", err)
		}
		return nil, model.ErrSessionExpired
	}

	return s.userRepo.GetByID(ctx, session.UserID)
}

// ChangePassword verifies the current password and replaces the stored hash.
// Existing sessions stay valid.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, req *model.ChangePasswordRequest) error {
	newPassword := strings.TrimSpace(req.NewPassword)
	if len(newPassword) < model.MinPasswordLength {
		return model.Invalid("Password must be at least 6 characters.")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte(strings.TrimSpace(req.CurrentPassword))) != nil {
		return model.Invalid("Current password is incorrect.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.userRepo.UpdatePassword(ctx, userID, string(hashed))
}

func (s *AuthService) createSession(ctx context.Context, userID int64) (*model.Session, error) {
	session := &model.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(model.SessionTTL),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

// availableHandle returns the first free candidate in the sequence base,
// base1, base2, ...
func (s *AuthService) availableHandle(ctx context.Context, base string) (string, error) {
	for i := 0; i < maxHandleAttempts; i++ {
		candidate := base
		if i > 0 {
			candidate = base + strconv.Itoa(i)
		}
		taken, err := s.userRepo.ExistsByHandle(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check handle: %w", err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no available handle for base %q", base)
}

// handleBase derives the normalized handle base: prefer the display name,
// fall back to the local part of the email, then to a fixed literal.
func handleBase(name, email string) string {
	base := normalizeHandle(name)
	if base == "" {
		local, _, _ := strings.Cut(email, "@")
		base = normalizeHandle(local)
	}
	if base == "" {
		base = "member"
	}
	if len(base) > model.MaxHandleBaseLength {
		base = base[:model.MaxHandleBaseLength]
	}
	return base
}

// normalizeHandle lowercases and strips everything that is not a-z or 0-9.
func normalizeHandle(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
