package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"earthlink/internal/model"
)

type eventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) EventRepository {
	return &eventRepository{db: db}
}

// eventSelect is shared by every event read so list, detail and search
// results carry identical field shapes and derived values. $1 is the viewing
// user id (model.AnonymousViewerID when no session is present).
const eventSelect = `
	SELECT e.id, e.user_id, e.group_id, e.title, e.location, e.latitude, e.longitude,
	       e.description, e.images, e.rsvp_link, e.starts_at, e.created_at,
	       (SELECT COUNT(*) FROM event_likes el WHERE el.event_id = e.id) AS like_count,
	       (SELECT COUNT(*) FROM event_replies er WHERE er.event_id = e.id) AS reply_count,
	       (SELECT COUNT(*) FROM event_rsvps ev WHERE ev.event_id = e.id) AS rsvp_count,
	       EXISTS(SELECT 1 FROM event_likes el WHERE el.event_id = e.id AND el.user_id = $1) AS is_liked,
	       EXISTS(SELECT 1 FROM event_rsvps ev WHERE ev.event_id = e.id AND ev.user_id = $1) AS is_rsvpd,
	       u.id AS "author.id", u.handle AS "author.handle",
	       u.name AS "author.name", u.avatar AS "author.avatar"
	FROM events e
	JOIN users u ON u.id = e.user_id
`

// Create inserts the event and the creator's RSVP in one transaction, so a
// failure between the two writes leaves neither behind.
func (r *eventRepository) Create(ctx context.Context, event *model.Event) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO events (user_id, group_id, title, location, latitude, longitude,
		                    description, images, rsvp_link, starts_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`
	err = tx.QueryRowxContext(ctx, query,
		event.UserID, event.GroupID, event.Title, event.Location, event.Latitude,
		event.Longitude, event.Description, event.ImagesRaw, event.RSVPLink, event.StartsAt,
	).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.ErrGroupNotFound
		}
		return fmt.Errorf("insert event: %w", err)
	}

	// Creating an event RSVPs its creator.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO event_rsvps (event_id, user_id) VALUES ($1, $2)
	`, event.ID, event.UserID)
	if err != nil {
		return fmt.Errorf("insert creator rsvp: %w", err)
	}

	return tx.Commit()
}

func (r *eventRepository) GetByID(ctx context.Context, eventID, viewerID int64) (*model.Event, error) {
	var event model.Event
	err := r.db.GetContext(ctx, &event, eventSelect+` WHERE e.id = $2`, viewerID, eventID)
	if err == sql.ErrNoRows {
		return nil, model.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	event.Images = model.DecodeImages(event.ImagesRaw)
	return &event, nil
}

func (r *eventRepository) GetAll(ctx context.Context, viewerID int64) ([]model.Event, error) {
	events := []model.Event{}
	err := r.db.SelectContext(ctx, &events, eventSelect+` ORDER BY e.created_at DESC`, viewerID)
	if err != nil {
		return nil, fmt.Errorf("get events: %w", err)
	}
	for i := range events {
		events[i].Images = model.DecodeImages(events[i].ImagesRaw)
	}
	return events, nil
}

func (r *eventRepository) Update(ctx context.Context, event *model.Event) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE events
		SET group_id = $1, title = $2, location = $3, latitude = $4, longitude = $5,
		    description = $6, images = $7, rsvp_link = $8, starts_at = $9
		WHERE id = $10
	`, event.GroupID, event.Title, event.Location, event.Latitude, event.Longitude,
		event.Description, event.ImagesRaw, event.RSVPLink, event.StartsAt, event.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.ErrGroupNotFound
		}
		return fmt.Errorf("update event: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrEventNotFound
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, eventID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, eventID)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrEventNotFound
	}
	return nil
}

func (r *eventRepository) Like(ctx context.Context, eventID, userID int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO event_likes (event_id, user_id) VALUES ($1, $2)
		ON CONFLICT (event_id, user_id) DO NOTHING
	`, eventID, userID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.ErrEventNotFound
		}
		return fmt.Errorf("insert event like: %w", err)
	}
	return nil
}

func (r *eventRepository) Unlike(ctx context.Context, eventID, userID int64) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM event_likes WHERE event_id = $1 AND user_id = $2
	`, eventID, userID)
	if err != nil {
		return fmt.Errorf("delete event like: %w", err)
	}
	return nil
}

func (r *eventRepository) RSVP(ctx context.Context, eventID, userID int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO event_rsvps (event_id, user_id) VALUES ($1, $2)
		ON CONFLICT (event_id, user_id) DO NOTHING
	`, eventID, userID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.ErrEventNotFound
		}
		return fmt.Errorf("insert rsvp: %w", err)
	}
	return nil
}

func (r *eventRepository) UnRSVP(ctx context.Context, eventID, userID int64) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM event_rsvps WHERE event_id = $1 AND user_id = $2
	`, eventID, userID)
	if err != nil {
		return fmt.Errorf("delete rsvp: %w", err)
	}
	return nil
}

func (r *eventRepository) CreateReply(ctx context.Context, eventID, userID int64, body string) (*model.Reply, error) {
	var reply model.Reply
	err := r.db.GetContext(ctx, &reply, `
		INSERT INTO event_replies (event_id, user_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, event_id AS parent_id, user_id, body, created_at
	`, eventID, userID, body)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, model.ErrEventNotFound
		}
		return nil, fmt.Errorf("insert event reply: %w", err)
	}
	return &reply, nil
}

func (r *eventRepository) GetReplies(ctx context.Context, eventID int64) ([]model.Reply, error) {
	replies := []model.Reply{}
	err := r.db.SelectContext(ctx, &replies, `
		SELECT r.id, r.event_id AS parent_id, r.user_id, r.body, r.created_at,
		       u.id AS "author.id", u.handle AS "author.handle",
		       u.name AS "author.name", u.avatar AS "author.avatar"
		FROM event_replies r
		JOIN users u ON u.id = r.user_id
		WHERE r.event_id = $1
		ORDER BY r.created_at ASC
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event replies: %w", err)
	}
	return replies, nil
}

// Search matches titles, descriptions and locations case-insensitively by
// substring, most recent first.
func (r *eventRepository) Search(ctx context.Context, query string, viewerID int64, limit int) ([]model.Event, error) {
	pattern := "%" + query + "%"
	events := []model.Event{}
	err := r.db.SelectContext(ctx, &events, eventSelect+`
		WHERE e.title ILIKE $2 OR e.description ILIKE $2 OR e.location ILIKE $2
		ORDER BY e.created_at DESC
		LIMIT $3
	`, viewerID, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}
	for i := range events {
		events[i].Images = model.DecodeImages(events[i].ImagesRaw)
	}
	return events, nil
}
