package profile

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"anoa.com/careerhub/internal/entity"
	jobDto "anoa.com/careerhub/internal/modules/job/dto"
	jobRepo "anoa.com/careerhub/internal/modules/job/repository"
	profileDto "anoa.com/careerhub/internal/modules/profile/dto"
	userRepo "anoa.com/careerhub/internal/modules/user/repository"
	"anoa.com/careerhub/pkg/apperror"
	commonDto "anoa.com/careerhub/pkg/dto"
	"anoa.com/careerhub/pkg/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MsgCompleteProfile = "Please complete your profile first."
	MsgProfileExists   = "You already have a profile."
	MsgProfileCreated  = "Profile created successfully!"
	MsgInvalidPicture  = "Please upload a valid image file."
)

var (
	// ErrProfileExists is answered with a redirect to the profile view.
	ErrProfileExists = apperror.New(http.StatusConflict, MsgProfileExists, apperror.ErrConflict)
	// ErrProfileMissing is answered with a redirect to profile creation.
	ErrProfileMissing = apperror.New(http.StatusNotFound, MsgCompleteProfile, apperror.ErrNotFound)
)

var pictureExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".bmp": true,
}

type ProfileService interface {
	HasProfile(ctx context.Context, userID uuid.UUID) (bool, error)
	CreateProfile(ctx context.Context, userID uuid.UUID, input profileDto.CreateProfileInput, picture *commonDto.UploadFile) (*profileDto.ProfileResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*profileDto.ProfileView, error)
}

type profileService struct {
	repo          userRepo.UserRepository
	jobRepo       jobRepo.Repository
	applicantRepo jobRepo.ApplicantRepository
	fileStorage   storage.FileStorage
}

func NewProfileService(repo userRepo.UserRepository, jobs jobRepo.Repository, applicants jobRepo.ApplicantRepository, fileStorage storage.FileStorage) ProfileService {
	return &profileService{
		repo:          repo,
		jobRepo:       jobs,
		applicantRepo: applicants,
		fileStorage:   fileStorage,
	}
}

func (s *profileService) HasProfile(ctx context.Context, userID uuid.UUID) (bool, error) {
	if _, err := s.repo.FindProfileByUserID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *profileService) CreateProfile(ctx context.Context, userID uuid.UUID, input profileDto.CreateProfileInput, picture *commonDto.UploadFile) (*profileDto.ProfileResponse, error) {
	exists, err := s.HasProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrProfileExists
	}

	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	if firstName == "" || lastName == "" {
		return nil, apperror.Invalid("First name and last name are required.", map[string]string{
			"first_name": firstName,
			"last_name":  lastName,
			"bio":        input.Bio,
		})
	}

	profile := &entity.Profile{
		UserID:    userID,
		FirstName: firstName,
		LastName:  lastName,
		Bio:       strings.TrimSpace(input.Bio),
	}

	if picture != nil {
		if !pictureExtensions[strings.ToLower(filepath.Ext(picture.FileName))] {
			return nil, apperror.New(http.StatusBadRequest, MsgInvalidPicture, apperror.ErrInvalidInput)
		}
		folder, name := storage.ProfilePicturePath(userID, picture.FileName)
		url, err := s.fileStorage.UploadFile(ctx, picture.Reader, folder, name)
		if err != nil {
			return nil, fmt.Errorf("failed to upload profile picture: %w", err)
		}
		profile.PictureURL = &url
	}

	if err := s.repo.CreateProfile(ctx, profile); err != nil {
		if profile.PictureURL != nil {
			if delErr := s.fileStorage.DeleteFile(ctx, *profile.PictureURL); delErr != nil {
				log.Printf("⚠️ failed to delete orphaned picture %s: %v", *profile.PictureURL, delErr)
			}
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrProfileExists
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	res := mapProfile(profile)
	return &res, nil
}

func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*profileDto.ProfileView, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found: %w", apperror.ErrUnauthorized)
		}
		return nil, err
	}
	if user.Profile == nil {
		return nil, ErrProfileMissing
	}

	view := &profileDto.ProfileView{
		User: profileDto.UserSummary{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			IsStaff:  user.IsStaff,
		},
		Profile: mapProfile(user.Profile),
	}

	if user.IsStaff {
		jobs, err := s.jobRepo.FindByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		view.JobsCreated = make([]jobDto.JobResponse, 0, len(jobs))
		for _, job := range jobs {
			job.User = *user
			view.JobsCreated = append(view.JobsCreated, jobDto.NewJobResponse(job))
		}
		return view, nil
	}

	applications, err := s.applicantRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	view.JobsApplied = make([]jobDto.AppliedJobResponse, 0, len(applications))
	for _, a := range applications {
		view.JobsApplied = append(view.JobsApplied, jobDto.AppliedJobResponse{
			Job:    jobDto.NewJobResponse(&a.Job),
			Status: a.Status,
		})
	}

	return view, nil
}

func mapProfile(p *entity.Profile) profileDto.ProfileResponse {
	return profileDto.ProfileResponse{
		UserID:     p.UserID,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Bio:        p.Bio,
		PictureURL: p.PictureURL,
	}
}
