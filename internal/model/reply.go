package model

import "time"

// MaxReplyLength bounds reply bodies, measured in characters.
const MaxReplyLength = 280

// Reply is a comment on a post or an event. Replies are append-only and
// displayed oldest first.
type Reply struct {
	ID        int64        `db:"id" json:"id"`
	ParentID  int64        `db:"parent_id" json:"parentId"`
	UserID    int64        `db:"user_id" json:"userId"`
	Body      string       `db:"body" json:"body"`
	CreatedAt time.Time    `db:"created_at" json:"createdAt"`
	Author    *UserSummary `db:"author" json:"author,omitempty"`
}

// ReplyRequest is the request body for creating a reply.
type ReplyRequest struct {
	Body string `json:"body"`
}
