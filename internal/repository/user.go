package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"earthlink/internal/model"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user. The unique constraints on email and handle are
// the authoritative collision signals.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (handle, name, email, password_hashed, bio, avatar)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		user.Handle, user.Name, user.Email, user.PasswordHashed, user.Bio, user.Avatar,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			if strings.Contains(pqErr.Constraint, "handle") {
				return model.ErrHandleTaken
			}
			return model.ErrEmailExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `
		SELECT id, handle, name, email, password_hashed, bio, avatar, created_at
		FROM users WHERE id = $1
	`, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// GetByEmail looks a user up by normalized (lowercased) email. Emails are
// stored normalized at signup.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, `
		SELECT id, handle, name, email, password_hashed, bio, avatar, created_at
		FROM users WHERE email = $1
	`, email)
	if err == sql.ErrNoRows {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) ExistsByHandle(ctx context.Context, handle string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE handle = $1)`, handle)
	if err != nil {
		return false, fmt.Errorf("check handle exists: %w", err)
	}
	return exists, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE users SET name = $1, bio = $2, avatar = $3 WHERE id = $4
	`, user.Name, user.Bio, user.Avatar, user.ID)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, passwordHashed string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE users SET password_hashed = $1 WHERE id = $2
	`, passwordHashed, id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

// Search matches handles and names case-insensitively by substring.
func (r *userRepository) Search(ctx context.Context, query string, limit int) ([]model.UserSummary, error) {
	pattern := "%" + query + "%"
	users := []model.UserSummary{}
	err := r.db.SelectContext(ctx, &users, `
		SELECT id, handle, name, avatar
		FROM users
		WHERE handle ILIKE $1 OR name ILIKE $1
		ORDER BY created_at DESC
		LIMIT $2
	`, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return users, nil
}
