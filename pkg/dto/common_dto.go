package dto

import (
	"io"

	"github.com/google/uuid"
)

type AuthorResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// UploadFile is a file received from a multipart form.
type UploadFile struct {
	Reader   io.Reader
	FileName string
	Size     int64
}

type PaginationQuery struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}
