package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"

	"github.com/google/uuid"

	"github.com/dartsliga/league-system/models"
	"github.com/dartsliga/league-system/repositories"
	"github.com/dartsliga/league-system/storage"
)

type PostInput struct {
	Title     string          `json:"title"`
	Excerpt   *string         `json:"excerpt,omitempty"`
	Body      string          `json:"body"`
	Type      models.PostType `json:"type"`
	Pinned    bool            `json:"pinned"`
	Published bool            `json:"published"`
}

type PostService interface {
	Create(ctx context.Context, input PostInput, authorID int) (*models.Post, error)
	GetByID(ctx context.Context, id int) (*models.Post, error)
	List(ctx context.Context, filter repositories.PostFilter) ([]*models.Post, error)
	Update(ctx context.Context, id int, input PostInput) (*models.Post, error)
	UploadImage(ctx context.Context, postID int, contentType string, reader io.Reader) (*models.Post, error)
	Delete(ctx context.Context, id int) error
}

type postService struct {
	postRepo repositories.PostRepository
	uploader storage.FileUploader
	logger   *slog.Logger
}

func NewPostService(postRepo repositories.PostRepository, uploader storage.FileUploader, logger *slog.Logger) PostService {
	return &postService{postRepo: postRepo, uploader: uploader, logger: logger}
}

func validatePostInput(input PostInput) error {
	if input.Title == "" {
		return ErrPostTitleRequired
	}
	switch input.Type {
	case models.PostTypeNews, models.PostTypeAnnouncement, models.PostTypeTournament:
		return nil
	}
	return ErrPostTypeInvalid
}

func (s *postService) Create(ctx context.Context, input PostInput, authorID int) (*models.Post, error) {
	if err := validatePostInput(input); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:     input.Title,
		Excerpt:   input.Excerpt,
		Body:      input.Body,
		Type:      input.Type,
		Pinned:    input.Pinned,
		Published: input.Published,
		AuthorID:  authorID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, s.mapPostError(err)
	}

	s.logger.Info("post created", slog.Int("post_id", post.ID), slog.String("type", string(post.Type)))
	return post, nil
}

func (s *postService) GetByID(ctx context.Context, id int) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapPostError(err)
	}
	s.resolveImageURL(post)
	return post, nil
}

func (s *postService) List(ctx context.Context, filter repositories.PostFilter) ([]*models.Post, error) {
	posts, err := s.postRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, post := range posts {
		s.resolveImageURL(post)
	}
	return posts, nil
}

func (s *postService) Update(ctx context.Context, id int, input PostInput) (*models.Post, error) {
	if err := validatePostInput(input); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapPostError(err)
	}

	post.Title = input.Title
	post.Excerpt = input.Excerpt
	post.Body = input.Body
	post.Type = input.Type
	post.Pinned = input.Pinned
	post.Published = input.Published
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, s.mapPostError(err)
	}

	s.resolveImageURL(post)
	return post, nil
}

func (s *postService) UploadImage(ctx context.Context, postID int, contentType string, reader io.Reader) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, s.mapPostError(err)
	}
	if s.uploader == nil {
		return nil, fmt.Errorf("%w: file storage is not configured", ErrValidationFailed)
	}

	ext := extensionForContentType(contentType)
	if ext == "" {
		return nil, fmt.Errorf("%w: unsupported image content type %q", ErrValidationFailed, contentType)
	}

	key := path.Join("post-images", fmt.Sprintf("%d-%s%s", postID, uuid.NewString(), ext))
	result, err := s.uploader.Upload(ctx, key, contentType, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to upload post image: %w", err)
	}

	oldKey := post.ImageKey
	if err := s.postRepo.UpdateImageKey(ctx, postID, &result.Key); err != nil {
		return nil, s.mapPostError(err)
	}
	if oldKey != nil && *oldKey != result.Key {
		if delErr := s.uploader.Delete(ctx, *oldKey); delErr != nil {
			s.logger.Warn("failed to delete previous post image",
				slog.String("key", *oldKey), slog.String("error", delErr.Error()))
		}
	}

	post.ImageKey = &result.Key
	s.resolveImageURL(post)
	return post, nil
}

func (s *postService) Delete(ctx context.Context, id int) error {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return s.mapPostError(err)
	}
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return s.mapPostError(err)
	}
	if post.ImageKey != nil && s.uploader != nil {
		if delErr := s.uploader.Delete(ctx, *post.ImageKey); delErr != nil {
			s.logger.Warn("failed to delete post image",
				slog.String("key", *post.ImageKey), slog.String("error", delErr.Error()))
		}
	}
	return nil
}

func (s *postService) resolveImageURL(post *models.Post) {
	if post.ImageKey == nil || s.uploader == nil {
		return
	}
	url := s.uploader.GetPublicURL(*post.ImageKey)
	if url != "" {
		post.ImageURL = &url
	}
}

func (s *postService) mapPostError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrPostNotFound):
		return ErrPostNotFound
	case errors.Is(err, repositories.ErrPostAuthorInvalid):
		return ErrUserNotFound
	}
	return err
}
