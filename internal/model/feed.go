package model

import "time"

// Feed item kinds.
const (
	FeedKindPost  = "post"
	FeedKindEvent = "event"
)

// FeedItem wraps either a post or an event in the combined feed. Exactly one
// of Post and Event is set, matching Kind.
type FeedItem struct {
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
	Post      *Post     `json:"post,omitempty"`
	Event     *Event    `json:"event,omitempty"`
}

// FeedResponse is the combined reverse-chronological feed.
type FeedResponse struct {
	Items []FeedItem `json:"items"`
}
