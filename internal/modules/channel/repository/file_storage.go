package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/samber/lo"
	"github.com/samber/oops"

	"github.com/do-dorio/youtube-chat-feed/internal/shared/errors"
)

// FileStorage implements channel.Repository with a JSON array of channel ids
type FileStorage struct {
	path string
	mu   sync.RWMutex
}

// NewFileStorage creates a new file-based channel repository
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (s *FileStorage) GetAllChannels() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, oops.Code(errors.CodeConfig).
			With("path", s.path, "context", "failed to read channel list").
			Wrap(fmt.Errorf("%w: %w", errors.ErrConfig, err))
	}

	var channels []string
	if err := json.Unmarshal(data, &channels); err != nil {
		return nil, oops.Code(errors.CodeConfig).
			With("path", s.path, "context", "failed to unmarshal channel list").
			Wrap(fmt.Errorf("%w: %w", errors.ErrConfig, err))
	}

	// blank entries are ignored, duplicates keep their first position
	return lo.Uniq(lo.Compact(channels)), nil
}
