package storage

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStorage defines the contract for uploaded file storage (Cloudinary or local disk).
type FileStorage interface {
	// UploadFile stores the content under folder/fileName and returns its public URL.
	UploadFile(ctx context.Context, r io.Reader, folder, fileName string) (string, error)
	// DeleteFile removes a previously uploaded file using its URL.
	DeleteFile(ctx context.Context, fileURL string) error
}

const randomNameMax = 100_000_000

// RandomName replaces the client-supplied name with a random integer, keeping the lower-cased extension.
func RandomName(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("%d%s", rand.IntN(randomNameMax)+1, ext)
}

func ProfilePicturePath(userID uuid.UUID, fileName string) (folder, name string) {
	return path.Join("profile_picture", userID.String()), RandomName(fileName)
}

func PostImagePath(fileName string) (folder, name string) {
	return path.Join("post_images", fmt.Sprintf("%d", rand.IntN(randomNameMax)+1)), RandomName(fileName)
}

func ResumePath(jobID uuid.UUID, fileName string) (folder, name string) {
	return path.Join("resumes", jobID.String()), RandomName(fileName)
}
