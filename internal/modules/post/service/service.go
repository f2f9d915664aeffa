package post

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"anoa.com/careerhub/internal/entity"
	postDto "anoa.com/careerhub/internal/modules/post/dto"
	postRepo "anoa.com/careerhub/internal/modules/post/repository"
	search "anoa.com/careerhub/internal/modules/search/service"
	userRepo "anoa.com/careerhub/internal/modules/user/repository"
	"anoa.com/careerhub/pkg/apperror"
	"anoa.com/careerhub/pkg/dto"
	"anoa.com/careerhub/pkg/ratelimiter"
	"anoa.com/careerhub/pkg/sanitize"
	"anoa.com/careerhub/pkg/storage"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	MsgPostCreated     = "Post created successfully!"
	MsgPostUpdated     = "Post updated successfully!"
	MsgPostDeleted     = "Post deleted successfully!"
	MsgEditForbidden   = "You can't edit this post."
	MsgDeleteForbidden = "You don't have permission to delete this post."
	MsgContentRequired = "Content is required."
)

type PostService interface {
	CreatePost(ctx context.Context, userID uuid.UUID, req postDto.PostRequest, image *dto.UploadFile) (*postDto.PostResponse, error)
	ListPosts(ctx context.Context) ([]postDto.PostResponse, error)
	GetPostBySlug(ctx context.Context, slug string) (*postDto.PostResponse, error)
	UpdatePost(ctx context.Context, userID uuid.UUID, slug string, req postDto.PostRequest, image *dto.UploadFile) (*postDto.PostResponse, error)
	DeletePost(ctx context.Context, userID uuid.UUID, slug string) error
}

type postService struct {
	postRepo    postRepo.PostRepository
	userRepo    userRepo.UserRepository
	fileStorage storage.FileStorage
	redisClient *redis.Client
	postLimit   time.Duration
	meili       search.SearchService
}

func NewPostService(postRepo postRepo.PostRepository, userRepo userRepo.UserRepository, fileStorage storage.FileStorage, redisClient *redis.Client, postLimit time.Duration, meili search.SearchService) PostService {
	return &postService{
		postRepo:    postRepo,
		userRepo:    userRepo,
		fileStorage: fileStorage,
		redisClient: redisClient,
		postLimit:   postLimit,
		meili:       meili,
	}
}

func (s *postService) CreatePost(ctx context.Context, userID uuid.UUID, req postDto.PostRequest, image *dto.UploadFile) (*postDto.PostResponse, error) {
	author, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found: %w", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	content := sanitize.UGC(req.Content)
	if strings.TrimSpace(content) == "" {
		return nil, apperror.Invalid(MsgContentRequired, map[string]string{"title": req.Title})
	}

	subject := userID.String()
	if err := ratelimiter.Enforce(ctx, s.redisClient, subject, "post", s.postLimit); err != nil {
		return nil, err
	}

	// Give the cooldown back if the post never gets stored.
	creationFailed := true
	defer func() {
		if creationFailed {
			_ = ratelimiter.ClearRateLimit(ctx, s.redisClient, subject, "post")
		}
	}()

	post := &entity.Post{
		UserID:  userID,
		Title:   strings.TrimSpace(req.Title),
		Content: content,
	}
	if id, err := uuid.NewV7(); err == nil {
		post.ID = id
	}

	if image != nil {
		folder, name := storage.PostImagePath(image.FileName)
		url, err := s.fileStorage.UploadFile(ctx, image.Reader, folder, name)
		if err != nil {
			return nil, fmt.Errorf("failed to upload image: %w", err)
		}
		post.ImageURL = &url
	}

	if err := s.prepareForSave(ctx, post); err != nil {
		s.discardImage(ctx, post.ImageURL)
		return nil, err
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		s.discardImage(ctx, post.ImageURL)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("slug %q already taken: %w", post.Slug, apperror.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	creationFailed = false
	post.User = *author

	s.indexPost(post)

	return mapToResponse(post), nil
}

func (s *postService) ListPosts(ctx context.Context) ([]postDto.PostResponse, error) {
	posts, err := s.postRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]postDto.PostResponse, 0, len(posts))
	for _, p := range posts {
		res = append(res, *mapToResponse(p))
	}
	return res, nil
}

func (s *postService) GetPostBySlug(ctx context.Context, slug string) (*postDto.PostResponse, error) {
	post, err := s.findBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return mapToResponse(post), nil
}

func (s *postService) UpdatePost(ctx context.Context, userID uuid.UUID, slug string, req postDto.PostRequest, image *dto.UploadFile) (*postDto.PostResponse, error) {
	post, err := s.findBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if post.UserID != userID {
		return nil, apperror.New(http.StatusForbidden, MsgEditForbidden, apperror.ErrForbidden)
	}

	content := sanitize.UGC(req.Content)
	if strings.TrimSpace(content) == "" {
		return nil, apperror.Invalid(MsgContentRequired, map[string]string{"title": req.Title})
	}

	post.Title = strings.TrimSpace(req.Title)
	post.Content = content

	var oldImage *string
	if image != nil {
		folder, name := storage.PostImagePath(image.FileName)
		url, err := s.fileStorage.UploadFile(ctx, image.Reader, folder, name)
		if err != nil {
			return nil, fmt.Errorf("failed to upload image: %w", err)
		}
		oldImage = post.ImageURL
		post.ImageURL = &url
	}

	if err := s.prepareForSave(ctx, post); err != nil {
		if image != nil {
			s.discardImage(ctx, post.ImageURL)
		}
		return nil, err
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		if image != nil {
			s.discardImage(ctx, post.ImageURL)
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	s.discardImage(ctx, oldImage)

	s.indexPost(post)

	return mapToResponse(post), nil
}

func (s *postService) DeletePost(ctx context.Context, userID uuid.UUID, slug string) error {
	post, err := s.findBySlug(ctx, slug)
	if err != nil {
		return err
	}

	if post.UserID != userID {
		return apperror.New(http.StatusForbidden, MsgDeleteForbidden, apperror.ErrForbidden)
	}

	if err := s.postRepo.Delete(ctx, post.ID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	s.discardImage(ctx, post.ImageURL)

	if s.meili != nil {
		if err := s.meili.DeletePost(post.ID.String()); err != nil {
			log.Printf("⚠️ failed to remove post %s from search: %v", post.ID, err)
		}
	}

	return nil
}
