package model

import (
	"errors"
	"time"
)

// Event represents a community event, augmented with derived counts and
// viewer-relative flags by the read-model queries.
type Event struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"userId"`
	GroupID     *int64    `db:"group_id" json:"groupId"`
	Title       string    `db:"title" json:"title"`
	Location    *string   `db:"location" json:"location"`
	Latitude    *float64  `db:"latitude" json:"latitude"`
	Longitude   *float64  `db:"longitude" json:"longitude"`
	Description *string   `db:"description" json:"description"`
	ImagesRaw   *string   `db:"images" json:"-"`
	RSVPLink    *string   `db:"rsvp_link" json:"rsvpLink"`
	StartsAt    time.Time `db:"starts_at" json:"startsAt"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`

	LikeCount  int  `db:"like_count" json:"likesCount"`
	ReplyCount int  `db:"reply_count" json:"repliesCount"`
	RSVPCount  int  `db:"rsvp_count" json:"rsvpCount"`
	IsLiked    bool `db:"is_liked" json:"likedByCurrentUser"`
	IsRSVPd    bool `db:"is_rsvpd" json:"rsvpdByCurrentUser"`

	Images []string     `json:"images"`
	Author *UserSummary `db:"author" json:"author,omitempty"`
}

// EventRequest is the request body for creating or updating an event.
// StartsAt is an RFC 3339 timestamp.
type EventRequest struct {
	Title       string   `json:"title"`
	GroupID     *int64   `json:"groupId"`
	Location    *string  `json:"location"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Description *string  `json:"description"`
	Images      []string `json:"images"`
	RSVPLink    *string  `json:"rsvpLink"`
	StartsAt    string   `json:"startsAt"`
}

var (
	ErrEventNotFound = errors.New("event not found")
	ErrNotEventOwner = errors.New("not the owner of this event")
)
