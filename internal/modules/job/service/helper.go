package job

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"anoa.com/careerhub/internal/entity"
	jobDto "anoa.com/careerhub/internal/modules/job/dto"
	"anoa.com/careerhub/pkg/apperror"
	"anoa.com/careerhub/pkg/broker"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func mapJob(job *entity.Job) jobDto.JobResponse {
	return jobDto.NewJobResponse(job)
}

func mapApplicant(a *entity.JobApplicant) *jobDto.ApplicantResponse {
	return jobDto.NewApplicantResponse(a)
}

func (s *service) loadActor(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user not found: %w", apperror.ErrUnauthorized)
		}
		return nil, err
	}
	return user, nil
}

func (s *service) findJob(ctx context.Context, jobID uuid.UUID) (*entity.Job, error) {
	job, err := s.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return job, nil
}

func (s *service) indexJob(job *entity.Job) {
	if s.search == nil {
		return
	}
	if err := s.search.IndexJob(job); err != nil {
		log.Printf("⚠️ failed to index job %s: %v", job.ID, err)
	}
}

func (s *service) notify(ctx context.Context, n *entity.Notification) {
	if s.notificationService == nil || n.UserID == n.ActorID {
		return
	}
	if err := s.notificationService.CreateNotification(ctx, n); err != nil {
		log.Printf("⚠️ failed to create notification for %s: %v", n.UserID, err)
	}
}

func (s *service) publish(ctx context.Context, eventType string, a *entity.JobApplicant) {
	if s.publisher == nil {
		return
	}
	event := broker.ApplicationEvent{
		Type:        eventType,
		ApplicantID: a.ID.String(),
		JobID:       a.JobID.String(),
		UserID:      a.UserID.String(),
		Status:      a.Status,
		OccurredAt:  time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("⚠️ failed to publish %s for applicant %s: %v", eventType, a.ID, err)
	}
}

func (s *service) discardFile(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := s.fileStorage.DeleteFile(ctx, url); err != nil {
		log.Printf("⚠️ failed to delete file %s: %v", url, err)
	}
}
