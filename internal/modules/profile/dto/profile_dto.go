package dto

import (
	jobDto "anoa.com/careerhub/internal/modules/job/dto"
	"github.com/google/uuid"
)

// CreateProfileInput is bound from the profile creation form. The picture arrives as a separate multipart file.
type CreateProfileInput struct {
	FirstName string `json:"first_name" form:"first_name" binding:"required,max=30"`
	LastName  string `json:"last_name" form:"last_name" binding:"required,max=30"`
	Bio       string `json:"bio" form:"bio"`
}

// ProfileForm is the empty skeleton served before a profile exists.
type ProfileForm struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Picture   any    `json:"picture"`
}

type ProfileResponse struct {
	UserID     uuid.UUID `json:"user_id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Bio        string    `json:"bio"`
	PictureURL *string   `json:"picture_url"`
}

type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	IsStaff  bool      `json:"is_staff"`
}

// ProfileView carries jobs_created for staff and jobs_applied for everyone else.
type ProfileView struct {
	User        UserSummary                 `json:"user"`
	Profile     ProfileResponse             `json:"profile"`
	JobsCreated []jobDto.JobResponse        `json:"jobs_created,omitempty"`
	JobsApplied []jobDto.AppliedJobResponse `json:"jobs_applied,omitempty"`
}
