package repository

import (
	"context"

	"anoa.com/careerhub/internal/entity"
	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, job *entity.Job) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Job, error)
	FindAll(ctx context.Context, search string) ([]*entity.Job, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Job, error)
	Update(ctx context.Context, job *entity.Job) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ApplicantRepository interface {
	Create(ctx context.Context, applicant *entity.JobApplicant) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.JobApplicant, error)
	FindByJobAndUser(ctx context.Context, jobID, userID uuid.UUID) (*entity.JobApplicant, error)
	FindByJobID(ctx context.Context, jobID uuid.UUID) ([]*entity.JobApplicant, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.JobApplicant, error)
	Update(ctx context.Context, applicant *entity.JobApplicant) error
}
