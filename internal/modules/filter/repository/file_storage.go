package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/samber/lo"
	"github.com/samber/oops"

	"github.com/do-dorio/youtube-chat-feed/internal/modules/filter/domain"
	"github.com/do-dorio/youtube-chat-feed/internal/shared/errors"
)

var requiredSections = []string{"keywords", "ng_words"}

// FileStorage implements Repository on a single JSON file.
type FileStorage struct {
	path string
	mu   sync.RWMutex
}

// NewFileStorage creates a file-based filter repository
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (s *FileStorage) Load() (*domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, configError(s.path, err)
	}
	return decodeRecord(s.path, data)
}

func (s *FileStorage) LoadOrEmpty() (*domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &domain.Record{
				Keywords: []string{},
				NGWords:  domain.NGWords{Hidden: []string{}, Monitor: []string{}},
				Labels:   domain.Labels{},
			}, nil
		}
		return nil, configError(s.path, err)
	}
	return decodeRecord(s.path, data)
}

func (s *FileStorage) Save(record *domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := *record
	out.Keywords = lo.Ternary(out.Keywords == nil, []string{}, out.Keywords)
	out.NGWords.Hidden = lo.Ternary(out.NGWords.Hidden == nil, []string{}, out.NGWords.Hidden)
	out.NGWords.Monitor = lo.Ternary(out.NGWords.Monitor == nil, []string{}, out.NGWords.Monitor)

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return oops.With("path", s.path, "context", "failed to marshal filter record").Wrap(err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return oops.With("path", s.path, "context", "failed to create filter directory").Wrap(err)
		}
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return oops.With("path", s.path, "context", "failed to write filter record").Wrap(err)
	}
	return nil
}

func decodeRecord(path string, data []byte) (*domain.Record, error) {
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(data, &sections); err != nil {
		return nil, configError(path, err)
	}

	missing := lo.Filter(requiredSections, func(key string, _ int) bool {
		raw, ok := sections[key]
		return !ok || string(raw) == "null"
	})
	if len(missing) > 0 {
		return nil, oops.Code(errors.CodeConfig).
			With("path", path, "missing_sections", missing).
			Wrap(fmt.Errorf("%w: missing sections %v", errors.ErrConfig, missing))
	}

	var record domain.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, configError(path, err)
	}

	// labels and monitor are optional
	if record.Labels == nil {
		record.Labels = domain.Labels{}
	}
	if record.NGWords.Monitor == nil {
		record.NGWords.Monitor = []string{}
	}
	if record.NGWords.Hidden == nil {
		record.NGWords.Hidden = []string{}
	}

	return &record, nil
}

func configError(path string, err error) error {
	return oops.Code(errors.CodeConfig).
		With("path", path).
		Wrap(fmt.Errorf("%w: %w", errors.ErrConfig, err))
}
