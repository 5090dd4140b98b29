package repository

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/samber/oops"

	"github.com/do-dorio/youtube-chat-feed/internal/modules/ledger/domain"
)

// FileStorage keeps the ledger as a JSON array of video ids.
type FileStorage struct {
	path   string
	mu     sync.Mutex
	logger *slog.Logger
}

// NewFileStorage creates a file-based ledger repository
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path, logger: slog.Default()}
}

// SetLogger sets the logger
func (s *FileStorage) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// Load reads the ledger. A corrupted file is kept aside as <path>.broken and
// treated as an empty ledger, which at worst re-processes recent videos.
func (s *FileStorage) Load() (*domain.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.New(), nil
		}
		return nil, oops.With("path", s.path, "context", "failed to read ledger").Wrap(err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		brokenPath := s.path + ".broken"
		_ = os.WriteFile(brokenPath, data, 0644)
		s.logger.Warn("Ledger is corrupted, starting empty", "path", s.path, "broken_copy", brokenPath, "error", err, "status", "warn")
		return domain.New(), nil
	}

	return domain.New(ids...), nil
}

// Save writes the ledger atomically through a temp file.
func (s *FileStorage) Save(ledger *domain.Ledger) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(ledger.IDs(), "", "  ")
	if err != nil {
		return oops.With("path", s.path, "context", "failed to marshal ledger").Wrap(err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return oops.With("path", s.path, "context", "failed to create ledger directory").Wrap(err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return oops.With("path", tmpPath, "context", "failed to write temp ledger").Wrap(err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return oops.With("path", s.path, "context", "failed to replace ledger").Wrap(err)
	}
	return nil
}
