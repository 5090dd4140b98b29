package service

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/do-dorio/youtube-chat-feed/internal/modules/filter/domain"
	"github.com/do-dorio/youtube-chat-feed/internal/modules/filter/repository"
	apperrors "github.com/do-dorio/youtube-chat-feed/internal/shared/errors"
)

func TestManager(t *testing.T) {
	repo := repository.NewFileStorage(filepath.Join(t.TempDir(), "filters.json"))
	manager := NewManager(repo)

	if err := manager.Add(domain.NGModeHidden, "ばか"); err != nil {
		t.Fatalf("Add(hidden) error = %v", err)
	}
	if err := manager.Add("MONITOR", "草原"); err != nil {
		t.Fatalf("Add(monitor) error = %v", err)
	}
	if err := manager.Add(domain.NGModeHidden, "ばか"); !errors.Is(err, apperrors.ErrNGWordExists) {
		t.Errorf("duplicate Add() error = %v, want ErrNGWordExists", err)
	}

	record, err := repo.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(record.NGWords.Hidden, []string{domain.EncodeHidden("ばか")}) {
		t.Errorf("stored hidden = %v", record.NGWords.Hidden)
	}

	listing, err := manager.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if listing.HiddenCount != 1 || !reflect.DeepEqual(listing.Monitor, []string{"草原"}) {
		t.Errorf("List() = %+v", listing)
	}

	if err := manager.Remove(domain.NGModeHidden, "ばか"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := manager.Remove(domain.NGModeMonitor, "nope"); !errors.Is(err, apperrors.ErrNGWordNotFound) {
		t.Errorf("Remove(unknown) error = %v, want ErrNGWordNotFound", err)
	}

	listing, _ = manager.List()
	if listing.HiddenCount != 0 {
		t.Errorf("HiddenCount = %d, want 0", listing.HiddenCount)
	}
}

func TestManager_Validation(t *testing.T) {
	manager := NewManager(repository.NewFileStorage(filepath.Join(t.TempDir(), "filters.json")))

	if err := manager.Add("secret", "x"); !errors.Is(err, apperrors.ErrInvalidNGMode) {
		t.Errorf("Add(secret) error = %v, want ErrInvalidNGMode", err)
	}
	if err := manager.Add(domain.NGModeMonitor, ""); !errors.Is(err, apperrors.ErrEmptyNGWord) {
		t.Errorf("Add(empty) error = %v, want ErrEmptyNGWord", err)
	}
}
