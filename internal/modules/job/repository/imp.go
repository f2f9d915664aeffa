package repository

import (
	"context"
	"strings"

	"anoa.com/careerhub/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, job *entity.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	var job entity.Job
	if err := r.db.WithContext(ctx).Preload("User").First(&job, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *repository) FindAll(ctx context.Context, search string) ([]*entity.Job, error) {
	var jobs []*entity.Job
	query := r.db.WithContext(ctx).Preload("User")

	if search = strings.TrimSpace(search); search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+escapeLike(strings.ToLower(search))+"%")
	}

	if err := query.Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *repository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Job, error) {
	var jobs []*entity.Job
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *repository) Update(ctx context.Context, job *entity.Job) error {
	return r.db.WithContext(ctx).Model(job).Updates(map[string]interface{}{
		"title":       job.Title,
		"description": job.Description,
		"min_offer":   job.MinOffer,
		"max_offer":   job.MaxOffer,
		"location":    job.Location,
	}).Error
}

// Delete removes the job together with its applications.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&entity.JobApplicant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Job{}, "id = ?", id).Error
	})
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
