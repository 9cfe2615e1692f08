package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"earthlink/internal/model"
	"earthlink/internal/repository"
)

// UserService handles profile reads/updates and people search.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfile applies the non-nil fields of the request. Avatars are a
// single image under the avatar byte ceiling; an empty string clears it.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *model.UpdateProfileRequest) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if len(name) < model.MinNameLength {
			return nil, model.Invalid("Name must be at least 2 characters.")
		}
		user.Name = name
	}
	if req.Bio != nil {
		if *req.Bio == "" {
			user.Bio = nil
		} else {
			user.Bio = req.Bio
		}
	}
	if req.Avatar != nil {
		if *req.Avatar == "" {
			user.Avatar = nil
		} else {
			if err := model.ValidateImages([]string{*req.Avatar}, 1, model.MaxAvatarBytes); err != nil {
				return nil, err
			}
			user.Avatar = req.Avatar
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Search finds people by handle or name. Queries below the minimum length
// return empty results, matching the event/group search behavior.
func (s *UserService) Search(ctx context.Context, query string) ([]model.UserSummary, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < model.SearchMinQueryLength {
		return []model.UserSummary{}, nil
	}
	return s.userRepo.Search(ctx, query, model.SearchResultLimit)
}
