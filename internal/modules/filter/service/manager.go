package service

import (
	"slices"

	"github.com/samber/lo"
	"github.com/samber/oops"

	"github.com/do-dorio/youtube-chat-feed/internal/modules/filter/domain"
	"github.com/do-dorio/youtube-chat-feed/internal/modules/filter/repository"
	"github.com/do-dorio/youtube-chat-feed/internal/shared/errors"
)

// Manager edits the ng word lists of the filter record. It works on the
// stored form, so entries it cannot decode are never dropped by an edit.
type Manager struct {
	repo repository.Repository
}

// NewManager creates a new ng word manager
func NewManager(repo repository.Repository) *Manager {
	return &Manager{repo: repo}
}

// Listing is what an operator gets to see: hidden words only as a count.
type Listing struct {
	HiddenCount int
	Monitor     []string
}

// Add registers word in the given tier.
func (m *Manager) Add(mode domain.NGMode, word string) error {
	mode, err := validate(mode, word)
	if err != nil {
		return err
	}

	record, err := m.repo.LoadOrEmpty()
	if err != nil {
		return err
	}

	list := tier(record, mode)
	entry := storedForm(mode, word)
	if lo.Contains(*list, entry) {
		return oops.With("mode", mode).Wrap(errors.ErrNGWordExists)
	}
	*list = append(*list, entry)

	return m.repo.Save(record)
}

// Remove deletes word from the given tier.
func (m *Manager) Remove(mode domain.NGMode, word string) error {
	mode, err := validate(mode, word)
	if err != nil {
		return err
	}

	record, err := m.repo.LoadOrEmpty()
	if err != nil {
		return err
	}

	list := tier(record, mode)
	idx := lo.IndexOf(*list, storedForm(mode, word))
	if idx < 0 {
		return oops.With("mode", mode).Wrap(errors.ErrNGWordNotFound)
	}
	*list = slices.Delete(*list, idx, idx+1)

	return m.repo.Save(record)
}

// List reports the registered ng words without revealing hidden ones.
func (m *Manager) List() (*Listing, error) {
	record, err := m.repo.LoadOrEmpty()
	if err != nil {
		return nil, err
	}
	return &Listing{
		HiddenCount: len(record.NGWords.Hidden),
		Monitor:     append([]string{}, record.NGWords.Monitor...),
	}, nil
}

func tier(record *domain.Record, mode domain.NGMode) *[]string {
	if mode == domain.NGModeHidden {
		return &record.NGWords.Hidden
	}
	return &record.NGWords.Monitor
}

func storedForm(mode domain.NGMode, word string) string {
	if mode == domain.NGModeHidden {
		return domain.EncodeHidden(word)
	}
	return word
}

func validate(mode domain.NGMode, word string) (domain.NGMode, error) {
	parsed, err := domain.ParseNGMode(string(mode))
	if err != nil {
		return "", oops.With("mode", mode).Wrap(errors.ErrInvalidNGMode)
	}
	if word == "" {
		return "", errors.ErrEmptyNGWord
	}
	return parsed, nil
}
