package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"earthlink/internal/model"
	"earthlink/internal/repository"
)

// EventService handles business logic for events, their likes, RSVPs and
// replies.
type EventService struct {
	eventRepo repository.EventRepository
}

func NewEventService(eventRepo repository.EventRepository) *EventService {
	return &EventService{eventRepo: eventRepo}
}

// Create validates and inserts an event. The repository RSVPs the creator in
// the same transaction.
func (s *EventService) Create(ctx context.Context, userID int64, req *model.EventRequest) (*model.Event, error) {
	event, err := eventFromRequest(userID, req)
	if err != nil {
		return nil, err
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return s.eventRepo.GetByID(ctx, event.ID, userID)
}

func (s *EventService) GetByID(ctx context.Context, eventID int64, viewerID *int64) (*model.Event, error) {
	return s.eventRepo.GetByID(ctx, eventID, viewerOrAnonymous(viewerID))
}

func (s *EventService) GetAll(ctx context.Context, viewerID *int64) ([]model.Event, error) {
	return s.eventRepo.GetAll(ctx, viewerOrAnonymous(viewerID))
}

func (s *EventService) Update(ctx context.Context, eventID, userID int64, req *model.EventRequest) (*model.Event, error) {
	existing, err := s.eventRepo.GetByID(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, model.ErrNotEventOwner
	}

	event, err := eventFromRequest(userID, req)
	if err != nil {
		return nil, err
	}
	event.ID = eventID
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return s.eventRepo.GetByID(ctx, eventID, userID)
}

func (s *EventService) Delete(ctx context.Context, eventID, userID int64) error {
	event, err := s.eventRepo.GetByID(ctx, eventID, userID)
	if err != nil {
		return err
	}
	if event.UserID != userID {
		return model.ErrNotEventOwner
	}
	return s.eventRepo.Delete(ctx, eventID)
}

func (s *EventService) Like(ctx context.Context, eventID, userID int64) (*model.Event, error) {
	if err := s.eventRepo.Like(ctx, eventID, userID); err != nil {
		return nil, err
	}
	return s.eventRepo.GetByID(ctx, eventID, userID)
}

func (s *EventService) Unlike(ctx context.Context, eventID, userID int64) (*model.Event, error) {
	if err := s.eventRepo.Unlike(ctx, eventID, userID); err != nil {
		return nil, err
	}
	return s.eventRepo.GetByID(ctx, eventID, userID)
}

func (s *EventService) RSVP(ctx context.Context, eventID, userID int64) (*model.Event, error) {
	if err := s.eventRepo.RSVP(ctx, eventID, userID); err != nil {
		return nil, err
	}
	return s.eventRepo.GetByID(ctx, eventID, userID)
}

func (s *EventService) UnRSVP(ctx context.Context, eventID, userID int64) (*model.Event, error) {
	if err := s.eventRepo.UnRSVP(ctx, eventID, userID); err != nil {
		return nil, err
	}
	return s.eventRepo.GetByID(ctx, eventID, userID)
}

func (s *EventService) Reply(ctx context.Context, eventID, userID int64, req *model.ReplyRequest) (*model.Reply, *model.Event, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, nil, model.Invalid("Reply body is required.")
	}
	if utf8.RuneCountInString(body) > model.MaxReplyLength {
		return nil, nil, model.Invalid("Replies are limited to 280 characters.")
	}

	reply, err := s.eventRepo.CreateReply(ctx, eventID, userID, body)
	if err != nil {
		return nil, nil, err
	}
	event, err := s.eventRepo.GetByID(ctx, eventID, userID)
	if err != nil {
		return nil, nil, err
	}
	return reply, event, nil
}

func (s *EventService) Replies(ctx context.Context, eventID int64) ([]model.Reply, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID, model.AnonymousViewerID); err != nil {
		return nil, err
	}
	return s.eventRepo.GetReplies(ctx, eventID)
}

// eventFromRequest validates the request and builds the row to store.
func eventFromRequest(userID int64, req *model.EventRequest) (*model.Event, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, model.Invalid("Event title is required.")
	}
	if req.StartsAt == "" {
		return nil, model.Invalid("Event time is required.")
	}
	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return nil, model.Invalid("Event time is not a valid date.")
	}
	if err := model.ValidateImages(req.Images, model.MaxImagesPerEntity, model.MaxImageBytes); err != nil {
		return nil, err
	}
	images, err := model.EncodeImages(req.Images)
	if err != nil {
		return nil, err
	}

	return &model.Event{
		UserID:      userID,
		GroupID:     req.GroupID,
		Title:       title,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Description: req.Description,
		ImagesRaw:   images,
		RSVPLink:    req.RSVPLink,
		StartsAt:    startsAt,
	}, nil
}
