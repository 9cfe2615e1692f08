package service

import (
	"context"
	"errors"
	"testing"

	"earthlink/internal/model"
)

// =============================================================================
// MOCK REPOSITORIES
// =============================================================================
//
// The services depend on the repository INTERFACES, not the sqlx
// implementations, so unit tests swap in mocks with per-test behavior. Each
// mock exposes function fields for the methods a test cares about and falls
// back to a harmless default otherwise.

type mockUserRepository struct {
	createFn         func(ctx context.Context, user *model.User) error
	getByIDFn        func(ctx context.Context, id int64) (*model.User, error)
	getByEmailFn     func(ctx context.Context, email string) (*model.User, error)
	existsByHandleFn func(ctx context.Context, handle string) (bool, error)
	updateFn         func(ctx context.Context, user *model.User) error
	updatePasswordFn func(ctx context.Context, id int64, passwordHashed string) error
	searchFn         func(ctx context.Context, query string, limit int) ([]model.UserSummary, error)

	// Track calls for assertions.
	createCalls []*model.User
	searchCalls []string
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	m.createCalls = append(m.createCalls, user)
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByHandle(ctx context.Context, handle string) (bool, error) {
	if m.existsByHandleFn != nil {
		return m.existsByHandleFn(ctx, handle)
	}
	return false, nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *model.User) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, id int64, passwordHashed string) error {
	if m.updatePasswordFn != nil {
		return m.updatePasswordFn(ctx, id, passwordHashed)
	}
	return nil
}

func (m *mockUserRepository) Search(ctx context.Context, query string, limit int) ([]model.UserSummary, error) {
	m.searchCalls = append(m.searchCalls, query)
	if m.searchFn != nil {
		return m.searchFn(ctx, query, limit)
	}
	return []model.UserSummary{}, nil
}

type mockSessionRepository struct {
	createFn     func(ctx context.Context, session *model.Session) error
	getByTokenFn func(ctx context.Context, token string) (*model.Session, error)
	deleteFn     func(ctx context.Context, token string) error

	createCalls []*model.Session
	deleteCalls []string
}

func (m *mockSessionRepository) Create(ctx context.Context, session *model.Session) error {
	m.createCalls = append(m.createCalls, session)
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	return nil
}

func (m *mockSessionRepository) GetByToken(ctx context.Context, token string) (*model.Session, error) {
	if m.getByTokenFn != nil {
		return m.getByTokenFn(ctx, token)
	}
	return nil, model.ErrSessionNotFound
}

func (m *mockSessionRepository) Delete(ctx context.Context, token string) error {
	m.deleteCalls = append(m.deleteCalls, token)
	if m.deleteFn != nil {
		return m.deleteFn(ctx, token)
	}
	return nil
}

type mockPostRepository struct {
	createFn      func(ctx context.Context, userID int64, body string, images *string) (int64, error)
	getByIDFn     func(ctx context.Context, postID, viewerID int64) (*model.Post, error)
	getAllFn      func(ctx context.Context, viewerID int64) ([]model.Post, error)
	updateFn      func(ctx context.Context, postID int64, body string, images *string) error
	deleteFn      func(ctx context.Context, postID int64) error
	likeFn        func(ctx context.Context, postID, userID int64) error
	unlikeFn      func(ctx context.Context, postID, userID int64) error
	createReplyFn func(ctx context.Context, postID, userID int64, body string) (*model.Reply, error)
	getRepliesFn  func(ctx context.Context, postID int64) ([]model.Reply, error)

	createCalls int
	likeCalls   int
}

func (m *mockPostRepository) Create(ctx context.Context, userID int64, body string, images *string) (int64, error) {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, userID, body, images)
	}
	return 1, nil
}

func (m *mockPostRepository) GetByID(ctx context.Context, postID, viewerID int64) (*model.Post, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, postID, viewerID)
	}
	return nil, model.ErrPostNotFound
}

func (m *mockPostRepository) GetAll(ctx context.Context, viewerID int64) ([]model.Post, error) {
	if m.getAllFn != nil {
		return m.getAllFn(ctx, viewerID)
	}
	return []model.Post{}, nil
}

func (m *mockPostRepository) Update(ctx context.Context, postID int64, body string, images *string) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, postID, body, images)
	}
	return nil
}

func (m *mockPostRepository) Delete(ctx context.Context, postID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, postID)
	}
	return nil
}

func (m *mockPostRepository) Like(ctx context.Context, postID, userID int64) error {
	m.likeCalls++
	if m.likeFn != nil {
		return m.likeFn(ctx, postID, userID)
	}
	return nil
}

func (m *mockPostRepository) Unlike(ctx context.Context, postID, userID int64) error {
	if m.unlikeFn != nil {
		return m.unlikeFn(ctx, postID, userID)
	}
	return nil
}

func (m *mockPostRepository) CreateReply(ctx context.Context, postID, userID int64, body string) (*model.Reply, error) {
	if m.createReplyFn != nil {
		return m.createReplyFn(ctx, postID, userID, body)
	}
	return &model.Reply{ID: 1, ParentID: postID, UserID: userID, Body: body}, nil
}

func (m *mockPostRepository) GetReplies(ctx context.Context, postID int64) ([]model.Reply, error) {
	if m.getRepliesFn != nil {
		return m.getRepliesFn(ctx, postID)
	}
	return []model.Reply{}, nil
}

type mockEventRepository struct {
	createFn      func(ctx context.Context, event *model.Event) error
	getByIDFn     func(ctx context.Context, eventID, viewerID int64) (*model.Event, error)
	getAllFn      func(ctx context.Context, viewerID int64) ([]model.Event, error)
	updateFn      func(ctx context.Context, event *model.Event) error
	deleteFn      func(ctx context.Context, eventID int64) error
	likeFn        func(ctx context.Context, eventID, userID int64) error
	unlikeFn      func(ctx context.Context, eventID, userID int64) error
	rsvpFn        func(ctx context.Context, eventID, userID int64) error
	unRSVPFn      func(ctx context.Context, eventID, userID int64) error
	createReplyFn func(ctx context.Context, eventID, userID int64, body string) (*model.Reply, error)
	getRepliesFn  func(ctx context.Context, eventID int64) ([]model.Reply, error)
	searchFn      func(ctx context.Context, query string, viewerID int64, limit int) ([]model.Event, error)

	searchCalls []string
}

func (m *mockEventRepository) Create(ctx context.Context, event *model.Event) error {
	if m.createFn != nil {
		return m.createFn(ctx, event)
	}
	event.ID = 1
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, eventID, viewerID int64) (*model.Event, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, eventID, viewerID)
	}
	return nil, model.ErrEventNotFound
}

func (m *mockEventRepository) GetAll(ctx context.Context, viewerID int64) ([]model.Event, error) {
	if m.getAllFn != nil {
		return m.getAllFn(ctx, viewerID)
	}
	return []model.Event{}, nil
}

func (m *mockEventRepository) Update(ctx context.Context, event *model.Event) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, event)
	}
	return nil
}

func (m *mockEventRepository) Delete(ctx context.Context, eventID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, eventID)
	}
	return nil
}

func (m *mockEventRepository) Like(ctx context.Context, eventID, userID int64) error {
	if m.likeFn != nil {
		return m.likeFn(ctx, eventID, userID)
	}
	return nil
}

func (m *mockEventRepository) Unlike(ctx context.Context, eventID, userID int64) error {
	if m.unlikeFn != nil {
		return m.unlikeFn(ctx, eventID, userID)
	}
	return nil
}

func (m *mockEventRepository) RSVP(ctx context.Context, eventID, userID int64) error {
	if m.rsvpFn != nil {
		return m.rsvpFn(ctx, eventID, userID)
	}
	return nil
}

func (m *mockEventRepository) UnRSVP(ctx context.Context, eventID, userID int64) error {
	if m.unRSVPFn != nil {
		return m.unRSVPFn(ctx, eventID, userID)
	}
	return nil
}

func (m *mockEventRepository) CreateReply(ctx context.Context, eventID, userID int64, body string) (*model.Reply, error) {
	if m.createReplyFn != nil {
		return m.createReplyFn(ctx, eventID, userID, body)
	}
	return &model.Reply{ID: 1, ParentID: eventID, UserID: userID, Body: body}, nil
}

func (m *mockEventRepository) GetReplies(ctx context.Context, eventID int64) ([]model.Reply, error) {
	if m.getRepliesFn != nil {
		return m.getRepliesFn(ctx, eventID)
	}
	return []model.Reply{}, nil
}

func (m *mockEventRepository) Search(ctx context.Context, query string, viewerID int64, limit int) ([]model.Event, error) {
	m.searchCalls = append(m.searchCalls, query)
	if m.searchFn != nil {
		return m.searchFn(ctx, query, viewerID, limit)
	}
	return []model.Event{}, nil
}

type mockGroupRepository struct {
	createFn     func(ctx context.Context, group *model.Group) error
	getByIDFn    func(ctx context.Context, groupID, viewerID int64) (*model.Group, error)
	getAllFn     func(ctx context.Context, viewerID int64) ([]model.Group, error)
	updateFn     func(ctx context.Context, group *model.Group) error
	deleteFn     func(ctx context.Context, groupID int64) error
	joinFn       func(ctx context.Context, groupID, userID int64) error
	leaveFn      func(ctx context.Context, groupID, userID int64) error
	getMembersFn func(ctx context.Context, groupID int64) ([]model.UserSummary, error)
	searchFn     func(ctx context.Context, query string, viewerID int64, limit int) ([]model.Group, error)

	joinCalls   int
	searchCalls []string
}

func (m *mockGroupRepository) Create(ctx context.Context, group *model.Group) error {
	if m.createFn != nil {
		return m.createFn(ctx, group)
	}
	group.ID = 1
	return nil
}

func (m *mockGroupRepository) GetByID(ctx context.Context, groupID, viewerID int64) (*model.Group, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, groupID, viewerID)
	}
	return nil, model.ErrGroupNotFound
}

func (m *mockGroupRepository) GetAll(ctx context.Context, viewerID int64) ([]model.Group, error) {
	if m.getAllFn != nil {
		return m.getAllFn(ctx, viewerID)
	}
	return []model.Group{}, nil
}

func (m *mockGroupRepository) Update(ctx context.Context, group *model.Group) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, group)
	}
	return nil
}

func (m *mockGroupRepository) Delete(ctx context.Context, groupID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, groupID)
	}
	return nil
}

func (m *mockGroupRepository) Join(ctx context.Context, groupID, userID int64) error {
	m.joinCalls++
	if m.joinFn != nil {
		return m.joinFn(ctx, groupID, userID)
	}
	return nil
}

func (m *mockGroupRepository) Leave(ctx context.Context, groupID, userID int64) error {
	if m.leaveFn != nil {
		return m.leaveFn(ctx, groupID, userID)
	}
	return nil
}

func (m *mockGroupRepository) GetMembers(ctx context.Context, groupID int64) ([]model.UserSummary, error) {
	if m.getMembersFn != nil {
		return m.getMembersFn(ctx, groupID)
	}
	return []model.UserSummary{}, nil
}

func (m *mockGroupRepository) Search(ctx context.Context, query string, viewerID int64, limit int) ([]model.Group, error) {
	m.searchCalls = append(m.searchCalls, query)
	if m.searchFn != nil {
		return m.searchFn(ctx, query, viewerID, limit)
	}
	return []model.Group{}, nil
}

// wantValidation asserts that err is a ValidationError carrying exactly the
// given user-facing message.
func wantValidation(t *testing.T, err error, message string) {
	t.Helper()
	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want validation error %q", err, message)
	}
	if verr.Message != message {
		t.Errorf("validation message = %q, want %q", verr.Message, message)
	}
}
