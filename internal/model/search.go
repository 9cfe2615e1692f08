package model

// Search constraints. Queries shorter than the minimum return empty results
// for every category rather than an error.
const (
	SearchMinQueryLength = 2
	SearchResultLimit    = 20
)

// Search type filters.
const (
	SearchTypeEvents = "events"
	SearchTypeGroups = "groups"
)

// SearchResults groups per-category matches. Categories excluded by the
// type filter stay empty.
type SearchResults struct {
	Events []Event `json:"events"`
	Groups []Group `json:"groups"`
}
