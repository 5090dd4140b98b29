package service

import (
	"log/slog"

	"github.com/samber/lo"
	"github.com/samber/oops"

	"github.com/do-dorio/youtube-chat-feed/internal/modules/filter/domain"
	"github.com/do-dorio/youtube-chat-feed/internal/modules/filter/repository"
	"github.com/do-dorio/youtube-chat-feed/internal/shared/telemetry"
)

// Store loads and saves the filter configuration, decoding hidden ng words on
// the way in and encoding them on the way out.
type Store struct {
	repo   repository.Repository
	logger *slog.Logger
}

// NewStore creates a new filter configuration store
func NewStore(repo repository.Repository) *Store {
	telemetry.Init()
	return &Store{
		repo:   repo,
		logger: slog.Default(),
	}
}

// SetLogger sets the logger
func (s *Store) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// Load returns the decoded configuration. A missing or incomplete record is
// a config error; malformed hidden entries are logged and skipped.
func (s *Store) Load() (*domain.FilterConfig, error) {
	record, err := s.repo.Load()
	if err != nil {
		return nil, err
	}

	cfg, skipped := Compile(record)
	for _, idx := range skipped {
		telemetry.DecodeErrors.Inc()
		s.logger.Warn("Skipping malformed hidden ng word", "index", idx, "status", "warn")
	}
	return cfg, nil
}

// Labels returns the label mapping only. A missing record means no labels.
func (s *Store) Labels() (domain.Labels, error) {
	record, err := s.repo.LoadOrEmpty()
	if err != nil {
		return nil, err
	}
	return record.Labels, nil
}

// Save writes cfg back, re-encoding hidden ng words. Stored hidden entries
// that do not decode never reach a FilterConfig, so they are carried over
// from the current record as they are.
func (s *Store) Save(cfg *domain.FilterConfig) error {
	current, err := s.repo.LoadOrEmpty()
	if err != nil {
		return oops.With("context", "failed to read filter configuration").Wrap(err)
	}

	hidden := lo.Map(cfg.NGWordsHidden, func(w string, _ int) string { return domain.EncodeHidden(w) })
	_, skipped := Compile(current)
	for _, idx := range skipped {
		hidden = append(hidden, current.NGWords.Hidden[idx])
	}

	record := &domain.Record{
		Keywords: cfg.Keywords,
		NGWords: domain.NGWords{
			Hidden:  hidden,
			Monitor: cfg.NGWordsMonitor,
		},
		Labels: cfg.Labels,
	}
	if err := s.repo.Save(record); err != nil {
		return oops.With("context", "failed to save filter configuration").Wrap(err)
	}
	return nil
}

// Compile decodes a stored record. It returns the indexes of hidden entries
// that could not be decoded; those are left out of the result.
func Compile(record *domain.Record) (*domain.FilterConfig, []int) {
	var skipped []int
	hidden := make([]string, 0, len(record.NGWords.Hidden))
	for i, entry := range record.NGWords.Hidden {
		word, err := domain.DecodeHidden(entry)
		if err != nil {
			skipped = append(skipped, i)
			continue
		}
		hidden = append(hidden, word)
	}

	return &domain.FilterConfig{
		Keywords:       append([]string{}, record.Keywords...),
		NGWordsHidden:  hidden,
		NGWordsMonitor: append([]string{}, record.NGWords.Monitor...),
		Labels:         append(domain.Labels{}, record.Labels...),
	}, skipped
}
