package repository

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/do-dorio/youtube-chat-feed/internal/shared/errors"
)

func TestPublish(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "chat_feed.xml")
	staging := filepath.Join(dir, "docs", "chat_feed.xml")

	if err := os.WriteFile(primary, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	doc := []byte("<rss></rss>")
	if err := NewFileStorage(primary, staging).Publish(doc); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	for _, path := range []string{primary, staging} {
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		if string(got) != string(doc) {
			t.Errorf("%s = %q, want %q", path, got, doc)
		}
	}
}

func TestPublish_CopyFailure(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "chat_feed.xml")

	// a regular file where the staging directory should be
	blocker := filepath.Join(dir, "docs")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	err := NewFileStorage(primary, filepath.Join(blocker, "chat_feed.xml")).Publish([]byte("<rss></rss>"))
	if !errors.Is(err, apperrors.ErrPublishCopy) {
		t.Fatalf("Publish() error = %v, want ErrPublishCopy", err)
	}

	if got, _ := os.ReadFile(primary); string(got) != "<rss></rss>" {
		t.Errorf("primary = %q, should be written before the copy", got)
	}
}

func TestPublish_SamePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat_feed.xml")
	if err := NewFileStorage(path, path).Publish([]byte("a")); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
}
