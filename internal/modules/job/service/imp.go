package job

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"anoa.com/careerhub/internal/entity"
	jobDto "anoa.com/careerhub/internal/modules/job/dto"
	"anoa.com/careerhub/pkg/apperror"
	"anoa.com/careerhub/pkg/broker"
	commonDto "anoa.com/careerhub/pkg/dto"
	"anoa.com/careerhub/pkg/sanitize"
	"anoa.com/careerhub/pkg/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (s *service) CreateJob(ctx context.Context, userID uuid.UUID, req jobDto.JobRequest) (*jobDto.JobResponse, error) {
	actor, err := s.loadActor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !canCreateJob(actor) {
		return nil, apperror.New(http.StatusForbidden, MsgCreateForbidden, apperror.ErrForbidden)
	}

	job := &entity.Job{
		UserID:      actor.ID,
		Title:       strings.TrimSpace(req.Title),
		Description: sanitize.UGC(req.Description),
		MinOffer:    req.MinOffer,
		MaxOffer:    req.MaxOffer,
		Location:    strings.TrimSpace(req.Location),
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	job.User = *actor

	s.indexJob(job)

	res := mapJob(job)
	return &res, nil
}

func (s *service) ListJobs(ctx context.Context, filter jobDto.JobFilter) ([]jobDto.JobResponse, error) {
	jobs, err := s.jobRepo.FindAll(ctx, filter.Q)
	if err != nil {
		return nil, err
	}

	res := make([]jobDto.JobResponse, 0, len(jobs))
	for _, job := range jobs {
		res = append(res, mapJob(job))
	}
	return res, nil
}

func (s *service) GetJobDetail(ctx context.Context, viewerID *uuid.UUID, jobID uuid.UUID) (*jobDto.JobDetailResponse, error) {
	job, err := s.findJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if viewerID == nil {
		return nil, fmt.Errorf("job detail requires login: %w", apperror.ErrUnauthorized)
	}

	viewer, err := s.loadActor(ctx, *viewerID)
	if err != nil {
		return nil, err
	}

	applicants, err := s.applicantRepo.FindByJobID(ctx, job.ID)
	if err != nil {
		return nil, err
	}

	res := &jobDto.JobDetailResponse{
		Job:        mapJob(job),
		Applicants: make([]jobDto.ApplicantResponse, 0, len(applicants)),
		CanEdit:    canMutateJob(viewer, job),
	}
	for _, a := range applicants {
		mapped := mapApplicant(a)
		res.Applicants = append(res.Applicants, *mapped)
		if a.UserID == viewer.ID {
			res.MyApplication = mapped
		}
	}

	return res, nil
}

func (s *service) UpdateJob(ctx context.Context, userID, jobID uuid.UUID, req jobDto.JobRequest) (*jobDto.JobResponse, error) {
	job, err := s.findJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	actor, err := s.loadActor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !canMutateJob(actor, job) {
		return nil, apperror.New(http.StatusForbidden, MsgMutateForbidden, apperror.ErrForbidden)
	}

	job.Title = strings.TrimSpace(req.Title)
	job.Description = sanitize.UGC(req.Description)
	job.MinOffer = req.MinOffer
	job.MaxOffer = req.MaxOffer
	job.Location = strings.TrimSpace(req.Location)

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to update job: %w", err)
	}

	s.indexJob(job)

	res := mapJob(job)
	return &res, nil
}

func (s *service) DeleteJob(ctx context.Context, userID, jobID uuid.UUID) error {
	job, err := s.findJob(ctx, jobID)
	if err != nil {
		return err
	}

	actor, err := s.loadActor(ctx, userID)
	if err != nil {
		return err
	}
	if !canMutateJob(actor, job) {
		return apperror.New(http.StatusForbidden, MsgMutateForbidden, apperror.ErrForbidden)
	}

	applicants, err := s.applicantRepo.FindByJobID(ctx, job.ID)
	if err != nil {
		return err
	}

	if err := s.jobRepo.Delete(ctx, job.ID); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	for _, a := range applicants {
		s.discardFile(ctx, a.ResumeURL)
	}

	if s.search != nil {
		if err := s.search.DeleteJob(job.ID.String()); err != nil {
			log.Printf("⚠️ failed to remove job %s from search: %v", job.ID, err)
		}
	}

	return nil
}

// Apply runs the application state machine: none -> pending, rejected -> pending on the same row,
// pending stays pending and reports already_applied.
func (s *service) Apply(ctx context.Context, viewerID *uuid.UUID, jobID uuid.UUID, resume *commonDto.UploadFile) (*jobDto.ApplyResult, error) {
	job, err := s.findJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if viewerID == nil {
		return nil, fmt.Errorf("applying requires login: %w", apperror.ErrUnauthorized)
	}

	applicantUser, err := s.loadActor(ctx, *viewerID)
	if err != nil {
		return nil, err
	}

	if resume == nil {
		return nil, apperror.New(http.StatusBadRequest, MsgResumeRequired, apperror.ErrInvalidInput)
	}

	existing, err := s.applicantRepo.FindByJobAndUser(ctx, job.ID, applicantUser.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		existing = nil
	}

	if existing != nil && existing.Status != entity.ApplicationRejected {
		return &jobDto.ApplyResult{JobID: job.ID, Outcome: jobDto.ApplyAlreadyApplied}, nil
	}

	folder, name := storage.ResumePath(job.ID, resume.FileName)
	resumeURL, err := s.fileStorage.UploadFile(ctx, resume.Reader, folder, name)
	if err != nil {
		return nil, fmt.Errorf("failed to upload resume: %w", err)
	}

	var applicant *entity.JobApplicant
	outcome := jobDto.ApplyCreated

	if existing != nil {
		oldResume := existing.ResumeURL
		existing.ResumeURL = resumeURL
		existing.Status = entity.ApplicationPending
		if err := s.applicantRepo.Update(ctx, existing); err != nil {
			s.discardFile(ctx, resumeURL)
			return nil, fmt.Errorf("failed to resubmit application: %w", err)
		}
		s.discardFile(ctx, oldResume)
		applicant = existing
		outcome = jobDto.ApplyResubmitted
	} else {
		applicant = &entity.JobApplicant{
			JobID:     job.ID,
			UserID:    applicantUser.ID,
			ResumeURL: resumeURL,
			Status:    entity.ApplicationPending,
		}
		if err := s.applicantRepo.Create(ctx, applicant); err != nil {
			s.discardFile(ctx, resumeURL)
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &jobDto.ApplyResult{JobID: job.ID, Outcome: jobDto.ApplyAlreadyApplied}, nil
			}
			return nil, fmt.Errorf("failed to create application: %w", err)
		}
	}
	applicant.User = *applicantUser

	s.notify(ctx, &entity.Notification{
		UserID:     job.UserID,
		ActorID:    applicantUser.ID,
		EntityID:   applicant.ID,
		EntityType: "job_applicant",
		Type:       entity.NotificationApplicationSubmitted,
		Message:    fmt.Sprintf("%s applied for %s", applicantUser.Username, job.Title),
	})
	s.publish(ctx, broker.EventApplicationSubmitted, applicant)

	return &jobDto.ApplyResult{
		JobID:     job.ID,
		Outcome:   outcome,
		Applicant: mapApplicant(applicant),
	}, nil
}

func (s *service) RejectApplicant(ctx context.Context, userID, applicantID uuid.UUID) (*jobDto.RejectResult, error) {
	actor, err := s.loadActor(ctx, userID)
	if err != nil {
		return nil, err
	}

	applicant, err := s.applicantRepo.FindByID(ctx, applicantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("applicant not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	if !canRejectApplicant(actor, applicant) {
		return &jobDto.RejectResult{JobID: applicant.JobID, Rejected: false}, nil
	}

	applicant.Status = entity.ApplicationRejected
	if err := s.applicantRepo.Update(ctx, applicant); err != nil {
		return nil, fmt.Errorf("failed to reject applicant: %w", err)
	}

	s.notify(ctx, &entity.Notification{
		UserID:     applicant.UserID,
		ActorID:    actor.ID,
		EntityID:   applicant.ID,
		EntityType: "job_applicant",
		Type:       entity.NotificationApplicationRejected,
		Message:    fmt.Sprintf("Your application for %s was rejected", applicant.Job.Title),
	})
	s.publish(ctx, broker.EventApplicationRejected, applicant)

	return &jobDto.RejectResult{
		JobID:     applicant.JobID,
		Rejected:  true,
		Username:  applicant.User.Username,
		Applicant: mapApplicant(applicant),
	}, nil
}
