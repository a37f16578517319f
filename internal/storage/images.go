package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ImageStore writes uploaded profile images under a static-file directory.
// Stored files are referenced by the relative URL path returned from Save.
type ImageStore struct {
	dir string
}

// NewImageStore creates the upload directory if needed.
func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &ImageStore{dir: dir}, nil
}

// Save stores the uploaded file under a random name, keeping the original
// extension, and returns the relative URL path to serve it from.
func (s *ImageStore) Save(file *multipart.FileHeader) (string, error) {
	name := uuid.NewString() + filepath.Ext(file.Filename)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}

	return "/uploads/" + name, nil
}
