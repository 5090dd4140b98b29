package repository

import (
	"github.com/do-dorio/youtube-chat-feed/internal/modules/chat/domain"
)

// Repository is the hand-off between the fetch run and the render run.
type Repository interface {
	// Save overwrites the record with messages (an empty slice writes []).
	Save(messages []domain.ChatMessage) error
	// Load returns the stored messages; a missing record yields an empty slice.
	Load() ([]domain.ChatMessage, error)
}
