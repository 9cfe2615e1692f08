package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"earthlink/internal/model"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// postSelect is shared by GetByID and GetAll so list and detail endpoints
// always return the same field shape and derived values. $1 is the viewing
// user id (model.AnonymousViewerID when no session is present).
const postSelect = `
	SELECT p.id, p.user_id, p.body, p.images, p.created_at,
	       (SELECT COUNT(*) FROM post_likes pl WHERE pl.post_id = p.id) AS like_count,
	       (SELECT COUNT(*) FROM post_replies pr WHERE pr.post_id = p.id) AS reply_count,
	       EXISTS(SELECT 1 FROM post_likes pl WHERE pl.post_id = p.id AND pl.user_id = $1) AS is_liked,
	       u.id AS "author.id", u.handle AS "author.handle",
	       u.name AS "author.name", u.avatar AS "author.avatar"
	FROM posts p
	JOIN users u ON u.id = p.user_id
`

func (r *postRepository) Create(ctx context.Context, userID int64, body string, images *string) (int64, error) {
	var id int64
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO posts (user_id, body, images)
		VALUES ($1, $2, $3)
		RETURNING id
	`, userID, body, images).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert post: %w", err)
	}
	return id, nil
}

func (r *postRepository) GetByID(ctx context.Context, postID, viewerID int64) (*model.Post, error) {
	var post model.Post
	err := r.db.GetContext(ctx, &post, postSelect+` WHERE p.id = $2`, viewerID, postID)
	if err == sql.ErrNoRows {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	post.Images = model.DecodeImages(post.ImagesRaw)
	return &post, nil
}

func (r *postRepository) GetAll(ctx context.Context, viewerID int64) ([]model.Post, error) {
	posts := []model.Post{}
	err := r.db.SelectContext(ctx, &posts, postSelect+` ORDER BY p.created_at DESC`, viewerID)
	if err != nil {
		return nil, fmt.Errorf("get posts: %w", err)
	}
	for i := range posts {
		posts[i].Images = model.DecodeImages(posts[i].ImagesRaw)
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, postID int64, body string, images *string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE posts SET body = $1, images = $2 WHERE id = $3
	`, body, images, postID)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

// Delete hard-deletes the post. Likes and replies go with it via the
// schema's ON DELETE CASCADE.
func (r *postRepository) Delete(ctx context.Context, postID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

// Like is idempotent: a duplicate like is a no-op, not an error.
func (r *postRepository) Like(ctx context.Context, postID, userID int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)
		ON CONFLICT (post_id, user_id) DO NOTHING
	`, postID, userID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.ErrPostNotFound
		}
		return fmt.Errorf("insert like: %w", err)
	}
	return nil
}

// Unlike is delete-if-exists; removing an absent like is a no-op.
func (r *postRepository) Unlike(ctx context.Context, postID, userID int64) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2
	`, postID, userID)
	if err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	return nil
}

func (r *postRepository) CreateReply(ctx context.Context, postID, userID int64, body string) (*model.Reply, error) {
	var reply model.Reply
	err := r.db.GetContext(ctx, &reply, `
		INSERT INTO post_replies (post_id, user_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, post_id AS parent_id, user_id, body, created_at
	`, postID, userID, body)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("insert reply: %w", err)
	}
	return &reply, nil
}

func (r *postRepository) GetReplies(ctx context.Context, postID int64) ([]model.Reply, error) {
	replies := []model.Reply{}
	err := r.db.SelectContext(ctx, &replies, `
		SELECT r.id, r.post_id AS parent_id, r.user_id, r.body, r.created_at,
		       u.id AS "author.id", u.handle AS "author.handle",
		       u.name AS "author.name", u.avatar AS "author.avatar"
		FROM post_replies r
		JOIN users u ON u.id = r.user_id
		WHERE r.post_id = $1
		ORDER BY r.created_at ASC
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("get replies: %w", err)
	}
	return replies, nil
}

// isForeignKeyViolation reports whether err is a postgres foreign-key
// violation, which surfaces when a child row references a missing parent.
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}
