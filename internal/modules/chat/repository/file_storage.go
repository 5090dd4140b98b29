package repository

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/samber/oops"

	"github.com/do-dorio/youtube-chat-feed/internal/modules/chat/domain"
)

// FileStorage implements Repository with one JSON array file
type FileStorage struct {
	path string
	mu   sync.RWMutex
}

// NewFileStorage creates a file-based filtered-chat repository
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (s *FileStorage) Save(messages []domain.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if messages == nil {
		messages = []domain.ChatMessage{}
	}

	data, err := json.MarshalIndent(messages, "", "  ")
	if err != nil {
		return oops.With("path", s.path, "context", "failed to marshal chat messages").Wrap(err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return oops.With("path", s.path, "context", "failed to create chat directory").Wrap(err)
		}
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return oops.With("path", s.path, "context", "failed to write chat messages").Wrap(err)
	}
	return nil
}

func (s *FileStorage) Load() ([]domain.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.ChatMessage{}, nil
		}
		return nil, oops.With("path", s.path, "context", "failed to read chat messages").Wrap(err)
	}

	var messages []domain.ChatMessage
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, oops.With("path", s.path, "context", "failed to unmarshal chat messages").Wrap(err)
	}
	if messages == nil {
		messages = []domain.ChatMessage{}
	}
	return messages, nil
}
