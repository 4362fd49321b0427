package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore saves uploaded receipt files and serves them back by key.
type FileStore interface {
	Save(file *multipart.FileHeader, subdir string) (key string, url string, err error)
	Delete(key string) error
}

// LocalFileStore persists uploads on the local disk under a base path.
type LocalFileStore struct {
	basePath  string
	publicURL string
}

// NewLocalFileStore creates a local file store rooted at basePath.
func NewLocalFileStore(basePath, publicURL string) (*LocalFileStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalFileStore{
		basePath:  basePath,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// Save writes the uploaded file under subdir with a random name,
// keeping the original extension.
func (s *LocalFileStore) Save(file *multipart.FileHeader, subdir string) (string, string, error) {
	dir := filepath.Join(s.basePath, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := uuid.New().String() + ext
	key := filepath.Join(subdir, name)

	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.basePath, key))
	if err != nil {
		return "", "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", "", fmt.Errorf("failed to write file: %w", err)
	}

	url := s.publicURL + "/" + filepath.ToSlash(key)
	return key, url, nil
}

// Delete removes a stored file. Missing files are not an error.
func (s *LocalFileStore) Delete(key string) error {
	err := os.Remove(filepath.Join(s.basePath, key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
