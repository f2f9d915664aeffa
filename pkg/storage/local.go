package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type localStorage struct {
	root    string
	baseURL string
}

// NewLocalStorage stores uploads below root and serves them from baseURL.
func NewLocalStorage(root, baseURL string) (FileStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media root: %w", err)
	}
	return &localStorage{root: root, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (s *localStorage) UploadFile(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	rel := filepath.Join(folder, filepath.Base(fileName))
	dst := filepath.Join(s.root, rel)

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload folder: %w", err)
	}

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	return s.baseURL + "/" + filepath.ToSlash(rel), nil
}

func (s *localStorage) DeleteFile(ctx context.Context, fileURL string) error {
	rel := strings.TrimPrefix(fileURL, s.baseURL+"/")
	if rel == fileURL || strings.Contains(rel, "..") {
		return fmt.Errorf("file %s is not managed by local storage", fileURL)
	}

	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete upload file: %w", err)
	}
	return nil
}
