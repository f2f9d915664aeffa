package repository

import (
	"context"

	"anoa.com/careerhub/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type applicantRepository struct {
	db *gorm.DB
}

func NewApplicantRepository(db *gorm.DB) ApplicantRepository {
	return &applicantRepository{db: db}
}

func (r *applicantRepository) Create(ctx context.Context, applicant *entity.JobApplicant) error {
	return r.db.WithContext(ctx).Create(applicant).Error
}

func (r *applicantRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.JobApplicant, error) {
	var applicant entity.JobApplicant
	err := r.db.WithContext(ctx).
		Preload("Job").
		Preload("User").
		First(&applicant, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &applicant, nil
}

func (r *applicantRepository) FindByJobAndUser(ctx context.Context, jobID, userID uuid.UUID) (*entity.JobApplicant, error) {
	var applicant entity.JobApplicant
	err := r.db.WithContext(ctx).
		Where("job_id = ? AND user_id = ?", jobID, userID).
		First(&applicant).Error
	if err != nil {
		return nil, err
	}
	return &applicant, nil
}

func (r *applicantRepository) FindByJobID(ctx context.Context, jobID uuid.UUID) ([]*entity.JobApplicant, error) {
	var applicants []*entity.JobApplicant
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&applicants).Error
	return applicants, err
}

func (r *applicantRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.JobApplicant, error) {
	var applicants []*entity.JobApplicant
	err := r.db.WithContext(ctx).
		Preload("Job.User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&applicants).Error
	return applicants, err
}

func (r *applicantRepository) Update(ctx context.Context, applicant *entity.JobApplicant) error {
	return r.db.WithContext(ctx).Model(applicant).Updates(map[string]interface{}{
		"resume_url": applicant.ResumeURL,
		"status":     applicant.Status,
	}).Error
}
