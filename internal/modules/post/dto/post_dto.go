package dto

import (
	commonDto "anoa.com/careerhub/pkg/dto"
	"github.com/google/uuid"
)

// PostRequest is shared by create and update. A blank title is replaced with a generated default.
type PostRequest struct {
	Title   string `json:"title" form:"title" binding:"max=255"`
	Content string `json:"content" form:"content" binding:"required"`
}

type PostResponse struct {
	ID        uuid.UUID                `json:"id"`
	Title     string                   `json:"title"`
	Content   string                   `json:"content"`
	ImageURL  *string                  `json:"image_url,omitempty"`
	Slug      string                   `json:"slug"`
	Author    commonDto.AuthorResponse `json:"author"`
	CreatedAt string                   `json:"created_at"`
	UpdatedAt string                   `json:"updated_at"`
}
