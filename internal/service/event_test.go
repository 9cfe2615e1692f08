package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"earthlink/internal/model"
)

// =============================================================================
// CREATE TESTS
// =============================================================================

func TestEventService_Create_Success(t *testing.T) {
	// ARRANGE
	var created *model.Event
	eventRepo := &mockEventRepository{
		createFn: func(ctx context.Context, event *model.Event) error {
			event.ID = 42
			created = event
			return nil
		},
		getByIDFn: func(ctx context.Context, eventID, viewerID int64) (*model.Event, error) {
			// The creator's RSVP happens in the same transaction as the
			// insert, so the fresh read already reflects it.
			return &model.Event{ID: eventID, UserID: 7, RSVPCount: 1, IsRSVPd: true}, nil
		},
	}
	svc := NewEventService(eventRepo)

	// ACT
	event, err := svc.Create(context.Background(), 7, &model.EventRequest{
		Title:    "  Park Cleanup  ",
		StartsAt: "2026-09-12T10:00:00Z",
	})

	// ASSERT
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Title != "Park Cleanup" {
		t.Errorf("stored title = %q, want trimmed title", created.Title)
	}
	wantStart := time.Date(2026, 9, 12, 10, 0, 0, 0, time.UTC)
	if !created.StartsAt.Equal(wantStart) {
		t.Errorf("starts at = %v, want %v", created.StartsAt, wantStart)
	}
	if event.RSVPCount != 1 || !event.IsRSVPd {
		t.Errorf("rsvp count = %d, rsvpd = %v, want the creator enrolled", event.RSVPCount, event.IsRSVPd)
	}
}

func TestEventService_Create_Validation(t *testing.T) {
	fiveImages := make([]string, 5)
	for i := range fiveImages {
		fiveImages[i] = testImage
	}
	oversized := testImage + strings.Repeat("A", model.MaxImageBytes)

	tests := []struct {
		name        string
		req         *model.EventRequest
		wantMessage string
	}{
		{
			name:        "missing title",
			req:         &model.EventRequest{StartsAt: "2026-09-12T10:00:00Z"},
			wantMessage: "Event title is required.",
		},
		{
			name:        "missing time",
			req:         &model.EventRequest{Title: "Park Cleanup"},
			wantMessage: "Event time is required.",
		},
		{
			name:        "time not RFC 3339",
			req:         &model.EventRequest{Title: "Park Cleanup", StartsAt: "next saturday"},
			wantMessage: "Event time is not a valid date.",
		},
		{
			name: "too many images",
			req: &model.EventRequest{
				Title:    "Park Cleanup",
				StartsAt: "2026-09-12T10:00:00Z",
				Images:   fiveImages,
			},
			wantMessage: "You can attach up to 4 images.",
		},
		{
			name: "image too large",
			req: &model.EventRequest{
				Title:    "Park Cleanup",
				StartsAt: "2026-09-12T10:00:00Z",
				Images:   []string{oversized},
			},
			wantMessage: "Each image must be smaller than 2MB.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewEventService(&mockEventRepository{})

			_, err := svc.Create(context.Background(), 7, tt.req)

			wantValidation(t, err, tt.wantMessage)
		})
	}
}

func TestEventService_Create_FourImagesUnderLimit(t *testing.T) {
	// Four images just under the per-image ceiling are all fine; the limits
	// are per image, not a combined budget.
	large := testImage + strings.Repeat("A", model.MaxImageBytes-len(testImage)-1)
	images := []string{large, large, large, large}

	eventRepo := &mockEventRepository{
		getByIDFn: func(ctx context.Context, eventID, viewerID int64) (*model.Event, error) {
			return &model.Event{ID: eventID}, nil
		},
	}
	svc := NewEventService(eventRepo)

	_, err := svc.Create(context.Background(), 7, &model.EventRequest{
		Title:    "Park Cleanup",
		StartsAt: "2026-09-12T10:00:00Z",
		Images:   images,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEventService_Create_MissingGroup(t *testing.T) {
	groupID := int64(999)
	eventRepo := &mockEventRepository{
		createFn: func(ctx context.Context, event *model.Event) error {
			return model.ErrGroupNotFound
		},
	}
	svc := NewEventService(eventRepo)

	_, err := svc.Create(context.Background(), 7, &model.EventRequest{
		Title:    "Park Cleanup",
		StartsAt: "2026-09-12T10:00:00Z",
		GroupID:  &groupID,
	})

	if !errors.Is(err, model.ErrGroupNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrGroupNotFound)
	}
}

// =============================================================================
// OWNERSHIP TESTS
// =============================================================================

func TestEventService_Update_NotOwner(t *testing.T) {
	eventRepo := &mockEventRepository{
		getByIDFn: func(ctx context.Context, eventID, viewerID int64) (*model.Event, error) {
			return &model.Event{ID: eventID, UserID: 1}, nil
		},
	}
	svc := NewEventService(eventRepo)

	_, err := svc.Update(context.Background(), 42, 2, &model.EventRequest{
		Title:    "Hijacked",
		StartsAt: "2026-09-12T10:00:00Z",
	})

	if !errors.Is(err, model.ErrNotEventOwner) {
		t.Errorf("error = %v, want %v", err, model.ErrNotEventOwner)
	}
}

func TestEventService_Delete_NotOwner(t *testing.T) {
	eventRepo := &mockEventRepository{
		getByIDFn: func(ctx context.Context, eventID, viewerID int64) (*model.Event, error) {
			return &model.Event{ID: eventID, UserID: 1}, nil
		},
	}
	svc := NewEventService(eventRepo)

	err := svc.Delete(context.Background(), 42, 2)

	if !errors.Is(err, model.ErrNotEventOwner) {
		t.Errorf("error = %v, want %v", err, model.ErrNotEventOwner)
	}
}

// =============================================================================
// RSVP TESTS
// =============================================================================

func TestEventService_RSVP_Idempotent(t *testing.T) {
	rsvps := map[int64]bool{}
	eventRepo := &mockEventRepository{}
	eventRepo.rsvpFn = func(ctx context.Context, eventID, userID int64) error {
		rsvps[userID] = true
		return nil
	}
	eventRepo.getByIDFn = func(ctx context.Context, eventID, viewerID int64) (*model.Event, error) {
		return &model.Event{
			ID:        eventID,
			RSVPCount: len(rsvps),
			IsRSVPd:   rsvps[viewerID],
		}, nil
	}
	svc := NewEventService(eventRepo)

	first, err := svc.RSVP(context.Background(), 42, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.RSVP(context.Background(), 42, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.RSVPCount != 1 || !first.IsRSVPd {
		t.Errorf("first rsvp: count = %d, rsvpd = %v, want 1/true", first.RSVPCount, first.IsRSVPd)
	}
	if second.RSVPCount != 1 || !second.IsRSVPd {
		t.Errorf("second rsvp: count = %d, rsvpd = %v, want 1/true", second.RSVPCount, second.IsRSVPd)
	}
}

func TestEventService_UnRSVP_WithoutRSVP(t *testing.T) {
	eventRepo := &mockEventRepository{
		getByIDFn: func(ctx context.Context, eventID, viewerID int64) (*model.Event, error) {
			return &model.Event{ID: eventID, RSVPCount: 0, IsRSVPd: false}, nil
		},
	}
	svc := NewEventService(eventRepo)

	// Cancelling an RSVP that was never made is a quiet no-op.
	event, err := svc.UnRSVP(context.Background(), 42, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.RSVPCount != 0 || event.IsRSVPd {
		t.Errorf("count = %d, rsvpd = %v, want 0/false", event.RSVPCount, event.IsRSVPd)
	}
}

// =============================================================================
// VIEWER TESTS
// =============================================================================

func TestEventService_GetByID_AnonymousViewer(t *testing.T) {
	var gotViewer int64
	eventRepo := &mockEventRepository{
		getByIDFn: func(ctx context.Context, eventID, viewerID int64) (*model.Event, error) {
			gotViewer = viewerID
			return &model.Event{ID: eventID}, nil
		},
	}
	svc := NewEventService(eventRepo)

	event, err := svc.GetByID(context.Background(), 42, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotViewer != model.AnonymousViewerID {
		t.Errorf("viewer id = %d, want %d", gotViewer, model.AnonymousViewerID)
	}
	if event.IsLiked || event.IsRSVPd {
		t.Error("anonymous viewers should never see viewer-relative flags set")
	}
}
