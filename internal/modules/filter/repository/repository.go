package repository

import (
	"github.com/do-dorio/youtube-chat-feed/internal/modules/filter/domain"
)

// Repository persists the filter configuration record.
type Repository interface {
	// Load fails with errors.ErrConfig when the record is missing, malformed,
	// or lacks the keywords/ng_words sections.
	Load() (*domain.Record, error)
	// LoadOrEmpty is Load for operator tooling: a missing record yields an empty one.
	LoadOrEmpty() (*domain.Record, error)
	Save(record *domain.Record) error
}
