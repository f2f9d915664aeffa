package post

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"

	"anoa.com/careerhub/internal/entity"
	postDto "anoa.com/careerhub/internal/modules/post/dto"
	"anoa.com/careerhub/pkg/apperror"
	"anoa.com/careerhub/pkg/dto"
	"anoa.com/careerhub/pkg/slug"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func mapToResponse(post *entity.Post) *postDto.PostResponse {
	return &postDto.PostResponse{
		ID:       post.ID,
		Title:    post.Title,
		Content:  post.Content,
		ImageURL: post.ImageURL,
		Slug:     post.Slug,
		Author: dto.AuthorResponse{
			ID:       post.UserID,
			Username: post.User.Username,
		},
		CreatedAt: post.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: post.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// prepareForSave fills in a default title and, only when the post has none yet, a unique slug.
func (s *postService) prepareForSave(ctx context.Context, post *entity.Post) error {
	if post.Title == "" {
		post.Title = defaultTitle(post.ID)
	}
	if post.Slug != "" {
		return nil
	}

	generated, err := slug.Unique(ctx, post.Title, func(ctx context.Context, candidate string) (bool, error) {
		return s.postRepo.SlugExists(ctx, candidate, post.ID)
	})
	if err != nil {
		return fmt.Errorf("failed to generate slug: %w", err)
	}
	post.Slug = generated
	return nil
}

func defaultTitle(id uuid.UUID) string {
	if id == uuid.Nil {
		return fmt.Sprintf("Default Post %d", rand.IntN(9000)+1000)
	}
	return "Default Post " + id.String()[:8]
}

func (s *postService) findBySlug(ctx context.Context, postSlug string) (*entity.Post, error) {
	post, err := s.postRepo.FindBySlug(ctx, postSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("post not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return post, nil
}

func (s *postService) indexPost(post *entity.Post) {
	if s.meili == nil {
		return
	}
	if err := s.meili.IndexPost(post); err != nil {
		log.Printf("⚠️ failed to index post %s: %v", post.ID, err)
	}
}

func (s *postService) discardImage(ctx context.Context, url *string) {
	if url == nil || *url == "" {
		return
	}
	if err := s.fileStorage.DeleteFile(ctx, *url); err != nil {
		log.Printf("⚠️ failed to delete image %s: %v", *url, err)
	}
}
