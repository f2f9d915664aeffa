package dto

import (
	"anoa.com/careerhub/internal/entity"
	commonDto "anoa.com/careerhub/pkg/dto"
	"github.com/google/uuid"
)

type JobRequest struct {
	Title       string `json:"title" form:"title" binding:"required,max=255"`
	Description string `json:"description" form:"description" binding:"required"`
	MinOffer    int    `json:"min_offer" form:"min_offer" binding:"min=0"`
	MaxOffer    int    `json:"max_offer" form:"max_offer" binding:"min=0,gtefield=MinOffer"`
	Location    string `json:"location" form:"location" binding:"required,max=255"`
}

type JobFilter struct {
	Q string `form:"q"`
}

type JobResponse struct {
	ID          uuid.UUID                `json:"id"`
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	MinOffer    int                      `json:"min_offer"`
	MaxOffer    int                      `json:"max_offer"`
	Location    string                   `json:"location"`
	Author      commonDto.AuthorResponse `json:"author"`
	CreatedAt   string                   `json:"created_at"`
	UpdatedAt   string                   `json:"updated_at"`
}

type ApplicantResponse struct {
	ID        uuid.UUID                `json:"id"`
	JobID     uuid.UUID                `json:"job_id"`
	User      commonDto.AuthorResponse `json:"user"`
	ResumeURL string                   `json:"resume_url"`
	Status    string                   `json:"status"`
	CreatedAt string                   `json:"created_at"`
	UpdatedAt string                   `json:"updated_at"`
}

type JobDetailResponse struct {
	Job           JobResponse         `json:"job"`
	Applicants    []ApplicantResponse `json:"applicants"`
	MyApplication *ApplicantResponse  `json:"my_application"`
	CanEdit       bool                `json:"can_edit"`
}

// AppliedJobResponse is a job seen from the applicant's side.
type AppliedJobResponse struct {
	Job    JobResponse `json:"job"`
	Status string      `json:"status"`
}

const (
	ApplyCreated        = "created"
	ApplyResubmitted    = "resubmitted"
	ApplyAlreadyApplied = "already_applied"
)

type ApplyResult struct {
	JobID     uuid.UUID          `json:"job_id"`
	Outcome   string             `json:"outcome"`
	Applicant *ApplicantResponse `json:"applicant,omitempty"`
}

type RejectResult struct {
	JobID     uuid.UUID          `json:"job_id"`
	Rejected  bool               `json:"rejected"`
	Username  string             `json:"username"`
	Applicant *ApplicantResponse `json:"applicant,omitempty"`
}

const timeLayout = "2006-01-02 15:04:05"

func NewJobResponse(job *entity.Job) JobResponse {
	return JobResponse{
		ID:          job.ID,
		Title:       job.Title,
		Description: job.Description,
		MinOffer:    job.MinOffer,
		MaxOffer:    job.MaxOffer,
		Location:    job.Location,
		Author: commonDto.AuthorResponse{
			ID:       job.UserID,
			Username: job.User.Username,
		},
		CreatedAt: job.CreatedAt.Format(timeLayout),
		UpdatedAt: job.UpdatedAt.Format(timeLayout),
	}
}

func NewApplicantResponse(a *entity.JobApplicant) *ApplicantResponse {
	return &ApplicantResponse{
		ID:    a.ID,
		JobID: a.JobID,
		User: commonDto.AuthorResponse{
			ID:       a.UserID,
			Username: a.User.Username,
		},
		ResumeURL: a.ResumeURL,
		Status:    a.Status,
		CreatedAt: a.CreatedAt.Format(timeLayout),
		UpdatedAt: a.UpdatedAt.Format(timeLayout),
	}
}
