package repository

import (
	"context"

	"earthlink/internal/model"
)

type UserRepository interface {
	// Create inserts the user and fills ID/CreatedAt. Returns
	// model.ErrEmailExists or model.ErrHandleTaken on unique-constraint
	// violations.
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByHandle(ctx context.Context, handle string) (bool, error)
	// Update persists the mutable profile fields (name, bio, avatar).
	Update(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, id int64, passwordHashed string) error
	Search(ctx context.Context, query string, limit int) ([]model.UserSummary, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	GetByToken(ctx context.Context, token string) (*model.Session, error)
	// Delete removes the session row. Returns model.ErrSessionNotFound if no
	// row matched.
	Delete(ctx context.Context, token string) error
}

type PostRepository interface {
	Create(ctx context.Context, userID int64, body string, images *string) (int64, error)
	GetByID(ctx context.Context, postID, viewerID int64) (*model.Post, error)
	GetAll(ctx context.Context, viewerID int64) ([]model.Post, error)
	Update(ctx context.Context, postID int64, body string, images *string) error
	Delete(ctx context.Context, postID int64) error
	// Like is insert-or-ignore; Unlike is delete-if-exists. Both are
	// idempotent.
	Like(ctx context.Context, postID, userID int64) error
	Unlike(ctx context.Context, postID, userID int64) error
	CreateReply(ctx context.Context, postID, userID int64, body string) (*model.Reply, error)
	GetReplies(ctx context.Context, postID int64) ([]model.Reply, error)
}

type EventRepository interface {
	// Create inserts the event and the creator's RSVP in one transaction,
	// filling ID/CreatedAt.
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, eventID, viewerID int64) (*model.Event, error)
	GetAll(ctx context.Context, viewerID int64) ([]model.Event, error)
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, eventID int64) error
	Like(ctx context.Context, eventID, userID int64) error
	Unlike(ctx context.Context, eventID, userID int64) error
	RSVP(ctx context.Context, eventID, userID int64) error
	UnRSVP(ctx context.Context, eventID, userID int64) error
	CreateReply(ctx context.Context, eventID, userID int64, body string) (*model.Reply, error)
	GetReplies(ctx context.Context, eventID int64) ([]model.Reply, error)
	Search(ctx context.Context, query string, viewerID int64, limit int) ([]model.Event, error)
}

type GroupRepository interface {
	// Create inserts the group and the creator's membership in one
	// transaction, filling ID/CreatedAt.
	Create(ctx context.Context, group *model.Group) error
	GetByID(ctx context.Context, groupID, viewerID int64) (*model.Group, error)
	GetAll(ctx context.Context, viewerID int64) ([]model.Group, error)
	Update(ctx context.Context, group *model.Group) error
	Delete(ctx context.Context, groupID int64) error
	Join(ctx context.Context, groupID, userID int64) error
	Leave(ctx context.Context, groupID, userID int64) error
	GetMembers(ctx context.Context, groupID int64) ([]model.UserSummary, error)
	Search(ctx context.Context, query string, viewerID int64, limit int) ([]model.Group, error)
}
