package repository

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	apperrors "github.com/do-dorio/youtube-chat-feed/internal/shared/errors"
)

func TestGetAllChannels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "channels.json")
	if err := os.WriteFile(path, []byte(`["UC1", "", "UC2", "UC1"]`), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := NewFileStorage(path).GetAllChannels()
	if err != nil {
		t.Fatalf("GetAllChannels() error = %v", err)
	}
	if !reflect.DeepEqual(got, []string{"UC1", "UC2"}) {
		t.Errorf("GetAllChannels() = %v", got)
	}
}

func TestGetAllChannels_Errors(t *testing.T) {
	dir := t.TempDir()
	malformed := filepath.Join(dir, "malformed.json")
	if err := os.WriteFile(malformed, []byte(`{"id": "UC1"}`), 0644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{filepath.Join(dir, "missing.json"), malformed} {
		if _, err := NewFileStorage(path).GetAllChannels(); !errors.Is(err, apperrors.ErrConfig) {
			t.Errorf("GetAllChannels(%s) error = %v, want ErrConfig", filepath.Base(path), err)
		}
	}
}
