package request

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"anoa.com/careerhub/pkg/apperror"
	"anoa.com/careerhub/pkg/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ParamUUID parses a path parameter, reporting malformed ids as not found.
func ParamUUID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %w", name, apperror.ErrNotFound)
	}
	return id, nil
}

// FormFile opens an optional multipart file. The returned close func is always safe to call.
func FormFile(c *gin.Context, field string) (*dto.UploadFile, func(), error) {
	noop := func() {}

	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		return nil, noop, fmt.Errorf("read %s: %w", field, apperror.ErrBadRequest)
	}
	if header.Size == 0 {
		return nil, noop, nil
	}

	file, err := header.Open()
	if err != nil {
		return nil, noop, fmt.Errorf("open %s: %w", field, err)
	}

	return &dto.UploadFile{
		Reader:   file,
		FileName: header.Filename,
		Size:     header.Size,
	}, func() { closeQuietly(file) }, nil
}

func closeQuietly(c io.Closer) {
	_ = c.Close()
}
