package repository

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/oops"

	"github.com/do-dorio/youtube-chat-feed/internal/shared/errors"
)

// FileStorage writes the feed to its primary path and keeps a byte-identical
// copy under the static publishing directory.
type FileStorage struct {
	path    string
	staging string
}

// NewFileStorage creates a file publisher. An empty staging path disables the copy.
func NewFileStorage(path, staging string) *FileStorage {
	return &FileStorage{path: path, staging: staging}
}

// Path is the primary output file
func (s *FileStorage) Path() string {
	return s.path
}

// Publish overwrites the primary file, then the staging copy. A failed copy
// is reported as ErrPublishCopy after the primary file is already in place.
func (s *FileStorage) Publish(doc []byte) error {
	if err := writeFile(s.path, doc); err != nil {
		return oops.With("path", s.path, "context", "failed to write feed").Wrap(err)
	}

	if s.staging == "" || filepath.Clean(s.staging) == filepath.Clean(s.path) {
		return nil
	}

	if err := writeFile(s.staging, doc); err != nil {
		return oops.
			Code(errors.CodePublishCopy).
			With("path", s.staging).
			Wrap(fmt.Errorf("%w: %w", errors.ErrPublishCopy, err))
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
