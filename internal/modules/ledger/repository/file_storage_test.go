package repository

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/do-dorio/youtube-chat-feed/internal/modules/ledger/domain"
)

func TestLoad_Missing(t *testing.T) {
	storage := NewFileStorage(filepath.Join(t.TempDir(), "processed_videos.json"))

	ledger, err := storage.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ledger.Len() != 0 {
		t.Errorf("Len() = %d, want 0", ledger.Len())
	}
}

func TestLoad_Corrupted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed_videos.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	ledger, err := NewFileStorage(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ledger.Len() != 0 {
		t.Errorf("Len() = %d, want 0", ledger.Len())
	}

	broken, err := os.ReadFile(path + ".broken")
	if err != nil {
		t.Fatalf("broken copy missing: %v", err)
	}
	if string(broken) != "{not json" {
		t.Errorf("broken copy = %q", broken)
	}
}

func TestSave_OverwritesPreviousRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed_videos.json")
	storage := NewFileStorage(path)

	if err := storage.Save(domain.New("A", "C")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	prior, err := storage.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !prior.Has("C") {
		t.Fatal("prior ledger should contain C")
	}

	run := domain.New()
	for _, id := range []string{"A", "B"} {
		run.Add(id)
	}
	if err := storage.Save(run); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := storage.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if want := []string{"A", "B"}; !reflect.DeepEqual(got.IDs(), want) {
		t.Errorf("IDs() = %v, want %v", got.IDs(), want)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}
}

func TestSave_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "processed_videos.json")
	if err := NewFileStorage(path).Save(domain.New()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Errorf("file = %q, want []", data)
	}
}
