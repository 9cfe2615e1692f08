package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"earthlink/internal/model"
	"earthlink/internal/repository"
)

// PostService handles business logic for posts, their likes and replies.
type PostService struct {
	postRepo repository.PostRepository
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// Create validates and inserts a post, returning the fetch-with-meta view of
// the new row so the response shape matches every other post read.
func (s *PostService) Create(ctx context.Context, userID int64, req *model.PostRequest) (*model.Post, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, model.Invalid("Post body is required.")
	}
	if err := model.ValidateImages(req.Images, model.MaxImagesPerEntity, model.MaxImageBytes); err != nil {
		return nil, err
	}
	images, err := model.EncodeImages(req.Images)
	if err != nil {
		return nil, err
	}

	id, err := s.postRepo.Create(ctx, userID, body, images)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return s.postRepo.GetByID(ctx, id, userID)
}

func (s *PostService) GetByID(ctx context.Context, postID int64, viewerID *int64) (*model.Post, error) {
	return s.postRepo.GetByID(ctx, postID, viewerOrAnonymous(viewerID))
}

func (s *PostService) GetAll(ctx context.Context, viewerID *int64) ([]model.Post, error) {
	return s.postRepo.GetAll(ctx, viewerOrAnonymous(viewerID))
}

// Update re-validates the mutable fields and requires the caller to be the
// author.
func (s *PostService) Update(ctx context.Context, postID, userID int64, req *model.PostRequest) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, model.ErrNotPostOwner
	}

	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, model.Invalid("Post body is required.")
	}
	if err := model.ValidateImages(req.Images, model.MaxImagesPerEntity, model.MaxImageBytes); err != nil {
		return nil, err
	}
	images, err := model.EncodeImages(req.Images)
	if err != nil {
		return nil, err
	}

	if err := s.postRepo.Update(ctx, postID, body, images); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, postID, userID)
}

func (s *PostService) Delete(ctx context.Context, postID, userID int64) error {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return model.ErrNotPostOwner
	}
	return s.postRepo.Delete(ctx, postID)
}

// Like records a like and returns the refreshed meta view. Liking twice is a
// no-op, so the second call returns unchanged counts.
func (s *PostService) Like(ctx context.Context, postID, userID int64) (*model.Post, error) {
	if err := s.postRepo.Like(ctx, postID, userID); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, postID, userID)
}

func (s *PostService) Unlike(ctx context.Context, postID, userID int64) (*model.Post, error) {
	if err := s.postRepo.Unlike(ctx, postID, userID); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, postID, userID)
}

// Reply validates and inserts a reply, returning both the reply and the
// parent's refreshed meta view so the client sees the new count atomically.
func (s *PostService) Reply(ctx context.Context, postID, userID int64, req *model.ReplyRequest) (*model.Reply, *model.Post, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, nil, model.Invalid("Reply body is required.")
	}
	if utf8.RuneCountInString(body) > model.MaxReplyLength {
		return nil, nil, model.Invalid("Replies are limited to 280 characters.")
	}

	reply, err := s.postRepo.CreateReply(ctx, postID, userID, body)
	if err != nil {
		return nil, nil, err
	}
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, nil, err
	}
	return reply, post, nil
}

func (s *PostService) Replies(ctx context.Context, postID int64) ([]model.Reply, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, model.AnonymousViewerID); err != nil {
		return nil, err
	}
	return s.postRepo.GetReplies(ctx, postID)
}
