package model

import (
	"errors"
	"time"
)

// Post represents a short feed post, augmented with derived counts and
// viewer-relative flags by the read-model queries.
type Post struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"userId"`
	Body      string    `db:"body" json:"body"`
	ImagesRaw *string   `db:"images" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	// Derived fields, computed in the same SELECT for list and detail so the
	// two shapes never drift apart.
	LikeCount  int  `db:"like_count" json:"likesCount"`
	ReplyCount int  `db:"reply_count" json:"repliesCount"`
	IsLiked    bool `db:"is_liked" json:"likedByCurrentUser"`

	Images []string     `json:"images"`
	Author *UserSummary `db:"author" json:"author,omitempty"`
}

// PostRequest is the request body for creating or updating a post.
type PostRequest struct {
	Body   string   `json:"body"`
	Images []string `json:"images"`
}

var (
	ErrPostNotFound = errors.New("post not found")
	ErrNotPostOwner = errors.New("not the owner of this post")
)
