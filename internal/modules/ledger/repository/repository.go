package repository

import (
	"github.com/do-dorio/youtube-chat-feed/internal/modules/ledger/domain"
)

// Repository persists the processed-video ledger.
type Repository interface {
	// Load returns an empty ledger when nothing was saved yet.
	Load() (*domain.Ledger, error)
	// Save replaces the stored ledger entirely.
	Save(ledger *domain.Ledger) error
}
