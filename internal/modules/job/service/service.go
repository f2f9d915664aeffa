package job

import (
	"context"

	jobDto "anoa.com/careerhub/internal/modules/job/dto"
	repo "anoa.com/careerhub/internal/modules/job/repository"
	notification "anoa.com/careerhub/internal/modules/notification/service"
	search "anoa.com/careerhub/internal/modules/search/service"
	userRepo "anoa.com/careerhub/internal/modules/user/repository"
	"anoa.com/careerhub/pkg/broker"
	commonDto "anoa.com/careerhub/pkg/dto"
	"anoa.com/careerhub/pkg/storage"
	"github.com/google/uuid"
)

const (
	MsgResumeRequired   = "Please upload your resume."
	MsgAlreadyApplied   = "You have already applied for this job."
	MsgApplied          = "Application submitted successfully!"
	MsgRejectForbidden  = "You don't have permission to reject this applicant."
	MsgRejectedTemplate = "%s's application has been rejected."
	MsgCreateForbidden  = "Only staff members can post jobs."
	MsgMutateForbidden  = "You don't have permission to modify this job."
)

type Service interface {
	CreateJob(ctx context.Context, userID uuid.UUID, req jobDto.JobRequest) (*jobDto.JobResponse, error)
	ListJobs(ctx context.Context, filter jobDto.JobFilter) ([]jobDto.JobResponse, error)
	GetJobDetail(ctx context.Context, viewerID *uuid.UUID, jobID uuid.UUID) (*jobDto.JobDetailResponse, error)
	UpdateJob(ctx context.Context, userID, jobID uuid.UUID, req jobDto.JobRequest) (*jobDto.JobResponse, error)
	DeleteJob(ctx context.Context, userID, jobID uuid.UUID) error
	Apply(ctx context.Context, viewerID *uuid.UUID, jobID uuid.UUID, resume *commonDto.UploadFile) (*jobDto.ApplyResult, error)
	RejectApplicant(ctx context.Context, userID, applicantID uuid.UUID) (*jobDto.RejectResult, error)
}

type service struct {
	jobRepo             repo.Repository
	applicantRepo       repo.ApplicantRepository
	userRepo            userRepo.UserRepository
	fileStorage         storage.FileStorage
	notificationService notification.NotificationService
	search              search.SearchService
	publisher           broker.Publisher
}

func NewService(jobRepo repo.Repository, applicantRepo repo.ApplicantRepository, userRepo userRepo.UserRepository, fileStorage storage.FileStorage, notificationService notification.NotificationService, search search.SearchService, publisher broker.Publisher) Service {
	return &service{
		jobRepo:             jobRepo,
		applicantRepo:       applicantRepo,
		userRepo:            userRepo,
		fileStorage:         fileStorage,
		notificationService: notificationService,
		search:              search,
		publisher:           publisher,
	}
}
