package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"earthlink/internal/model"
	"earthlink/internal/repository"
)

// SearchService runs independent per-category lookups for events and groups.
type SearchService struct {
	eventRepo repository.EventRepository
	groupRepo repository.GroupRepository
}

func NewSearchService(eventRepo repository.EventRepository, groupRepo repository.GroupRepository) *SearchService {
	return &SearchService{
		eventRepo: eventRepo,
		groupRepo: groupRepo,
	}
}

// Search matches the query against event titles/descriptions/locations and
// group names/descriptions/locations, each capped independently. A query
// below the minimum length returns empty results for all categories rather
// than an error. An empty type filter searches both categories.
func (s *SearchService) Search(ctx context.Context, query, typ string, viewerID *int64) (*model.SearchResults, error) {
	results := &model.SearchResults{
		Events: []model.Event{},
		Groups: []model.Group{},
	}

	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < model.SearchMinQueryLength {
		return results, nil
	}

	viewer := viewerOrAnonymous(viewerID)

	if typ == "" || typ == model.SearchTypeEvents {
		events, err := s.eventRepo.Search(ctx, query, viewer, model.SearchResultLimit)
		if err != nil {
			return nil, fmt.Errorf("search events: %w", err)
		}
		results.Events = events
	}

	if typ == "" || typ == model.SearchTypeGroups {
		groups, err := s.groupRepo.Search(ctx, query, viewer, model.SearchResultLimit)
		if err != nil {
			return nil, fmt.Errorf("search groups: %w", err)
		}
		results.Groups = groups
	}

	return results, nil
}
