package model

import (
	"errors"
	"time"
)

// Group represents a community group.
type Group struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"userId"`
	Name        string    `db:"name" json:"name"`
	Location    *string   `db:"location" json:"location"`
	Description *string   `db:"description" json:"description"`
	Website     *string   `db:"website" json:"website"`
	Icon        *string   `db:"icon" json:"icon"`
	ImagesRaw   *string   `db:"images" json:"-"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`

	MemberCount int  `db:"member_count" json:"membersCount"`
	IsMember    bool `db:"is_member" json:"joinedByCurrentUser"`

	Images []string `json:"images"`
}

// GroupRequest is the request body for creating or updating a group.
type GroupRequest struct {
	Name        string   `json:"name"`
	Location    *string  `json:"location"`
	Description *string  `json:"description"`
	Website     *string  `json:"website"`
	Icon        *string  `json:"icon"`
	Images      []string `json:"images"`
}

var (
	ErrGroupNotFound = errors.New("group not found")
	ErrNotGroupOwner = errors.New("not the owner of this group")
)
