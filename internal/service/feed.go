package service

import (
	"context"
	"fmt"
	"sort"

	"earthlink/internal/model"
	"earthlink/internal/repository"
)

// FeedService merges posts and events into one reverse-chronological feed.
type FeedService struct {
	postRepo  repository.PostRepository
	eventRepo repository.EventRepository
}

func NewFeedService(postRepo repository.PostRepository, eventRepo repository.EventRepository) *FeedService {
	return &FeedService{
		postRepo:  postRepo,
		eventRepo: eventRepo,
	}
}

// GetFeed fully materializes both collections with their meta, tags each
// record with its kind and stable-sorts by creation time descending. Ties
// keep their per-kind relative order.
func (s *FeedService) GetFeed(ctx context.Context, viewerID *int64) (*model.FeedResponse, error) {
	viewer := viewerOrAnonymous(viewerID)

	posts, err := s.postRepo.GetAll(ctx, viewer)
	if err != nil {
		return nil, fmt.Errorf("fetch posts for feed: %w", err)
	}
	events, err := s.eventRepo.GetAll(ctx, viewer)
	if err != nil {
		return nil, fmt.Errorf("fetch events for feed: %w", err)
	}

	items := make([]model.FeedItem, 0, len(posts)+len(events))
	for i := range posts {
		items = append(items, model.FeedItem{
			Kind:      model.FeedKindPost,
			CreatedAt: posts[i].CreatedAt,
			Post:      &posts[i],
		})
	}
	for i := range events {
		items = append(items, model.FeedItem{
			Kind:      model.FeedKindEvent,
			CreatedAt: events[i].CreatedAt,
			Event:     &events[i],
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	return &model.FeedResponse{Items: items}, nil
}
