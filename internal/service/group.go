package service

import (
	"context"
	"fmt"
	"strings"

	"earthlink/internal/model"
	"earthlink/internal/repository"
)

// GroupService handles business logic for groups and their memberships.
type GroupService struct {
	groupRepo repository.GroupRepository
}

func NewGroupService(groupRepo repository.GroupRepository) *GroupService {
	return &GroupService{groupRepo: groupRepo}
}

// Create validates and inserts a group. The repository enrolls the creator
// in the same transaction.
func (s *GroupService) Create(ctx context.Context, userID int64, req *model.GroupRequest) (*model.Group, error) {
	group, err := groupFromRequest(userID, req)
	if err != nil {
		return nil, err
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	return s.groupRepo.GetByID(ctx, group.ID, userID)
}

func (s *GroupService) GetByID(ctx context.Context, groupID int64, viewerID *int64) (*model.Group, error) {
	return s.groupRepo.GetByID(ctx, groupID, viewerOrAnonymous(viewerID))
}

func (s *GroupService) GetAll(ctx context.Context, viewerID *int64) ([]model.Group, error) {
	return s.groupRepo.GetAll(ctx, viewerOrAnonymous(viewerID))
}

func (s *GroupService) Update(ctx context.Context, groupID, userID int64, req *model.GroupRequest) (*model.Group, error) {
	existing, err := s.groupRepo.GetByID(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != userID {
		return nil, model.ErrNotGroupOwner
	}

	group, err := groupFromRequest(userID, req)
	if err != nil {
		return nil, err
	}
	group.ID = groupID
	if err := s.groupRepo.Update(ctx, group); err != nil {
		return nil, err
	}
	return s.groupRepo.GetByID(ctx, groupID, userID)
}

func (s *GroupService) Delete(ctx context.Context, groupID, userID int64) error {
	group, err := s.groupRepo.GetByID(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if group.UserID != userID {
		return model.ErrNotGroupOwner
	}
	return s.groupRepo.Delete(ctx, groupID)
}

// Join is idempotent; joining twice leaves a single membership. Returns the
// refreshed meta view either way.
func (s *GroupService) Join(ctx context.Context, groupID, userID int64) (*model.Group, error) {
	if err := s.groupRepo.Join(ctx, groupID, userID); err != nil {
		return nil, err
	}
	return s.groupRepo.GetByID(ctx, groupID, userID)
}

func (s *GroupService) Leave(ctx context.Context, groupID, userID int64) (*model.Group, error) {
	if err := s.groupRepo.Leave(ctx, groupID, userID); err != nil {
		return nil, err
	}
	return s.groupRepo.GetByID(ctx, groupID, userID)
}

func (s *GroupService) Members(ctx context.Context, groupID int64) ([]model.UserSummary, error) {
	if _, err := s.groupRepo.GetByID(ctx, groupID, model.AnonymousViewerID); err != nil {
		return nil, err
	}
	return s.groupRepo.GetMembers(ctx, groupID)
}

func groupFromRequest(userID int64, req *model.GroupRequest) (*model.Group, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, model.Invalid("Group name is required.")
	}
	if req.Icon != nil && *req.Icon != "" {
		if err := model.ValidateImages([]string{*req.Icon}, 1, model.MaxImageBytes); err != nil {
			return nil, err
		}
	}
	if err := model.ValidateImages(req.Images, model.MaxImagesPerEntity, model.MaxImageBytes); err != nil {
		return nil, err
	}
	images, err := model.EncodeImages(req.Images)
	if err != nil {
		return nil, err
	}

	icon := req.Icon
	if icon != nil && *icon == "" {
		icon = nil
	}

	return &model.Group{
		UserID:      userID,
		Name:        name,
		Location:    req.Location,
		Description: req.Description,
		Website:     req.Website,
		Icon:        icon,
		ImagesRaw:   images,
	}, nil
}
