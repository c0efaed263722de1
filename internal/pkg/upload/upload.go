// Package upload stores multipart attachments under a local directory and
// exposes them as /uploads/<filename> URLs.
package upload

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// MaxFileSize limits attachment size to 5 MB.
	MaxFileSize = 5 * 1024 * 1024

	// URLPrefix is the public path uploads are served under.
	URLPrefix = "/uploads/"
)

var (
	ErrFileTooLarge    = errors.New("file exceeds the 5MB size limit")
	ErrUnsupportedType = errors.New("only image and PDF files are allowed")
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".pdf":  true,
}

// Store saves and removes uploaded files on the local filesystem.
type Store struct {
	dir string
}

// NewStore creates the upload directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the backing directory, for static serving.
func (s *Store) Dir() string {
	return s.dir
}

// Save persists one multipart file under a unique name and returns its
// public URL path.
func (s *Store) Save(c *fiber.Ctx, fh *multipart.FileHeader) (string, error) {
	if fh.Size > MaxFileSize {
		return "", ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedType
	}

	name := uuid.NewString() + ext
	if err := c.SaveFile(fh, filepath.Join(s.dir, name)); err != nil {
		return "", fmt.Errorf("failed to save upload: %w", err)
	}

	return URLPrefix + name, nil
}

// Remove deletes the file behind a /uploads/ URL. Missing files are not an
// error; cleanup is best effort.
func (s *Store) Remove(urlPath string) error {
	name := filepath.Base(strings.TrimPrefix(urlPath, URLPrefix))
	if name == "" || name == "." {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// StaleFiles returns the URL paths of files older than maxAge, for the
// orphaned-upload sweep.
func (s *Store) StaleFiles(maxAge time.Duration) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().Add(-maxAge)
	var stale []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			stale = append(stale, URLPrefix+entry.Name())
		}
	}
	return stale, nil
}
