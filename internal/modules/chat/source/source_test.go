package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	apperrors "github.com/do-dorio/youtube-chat-feed/internal/shared/errors"
)

func TestParseMessages(t *testing.T) {
	data := []byte(`[
		{"message": "草", "time_in_seconds": 10.5, "author": {"name": "a"}},
		{"message": 42},
		{"time_in_seconds": 3}
	]`)

	got, err := ParseMessages(data)
	if err != nil {
		t.Fatalf("ParseMessages() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Text != "草" || got[0].TimeInSeconds != 10.5 || got[0].Author.Name != "a" {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].Text != "" || got[2].Text != "" {
		t.Errorf("undecodable items should have empty text: %+v %+v", got[1], got[2])
	}
}

func TestParseMessages_Edge(t *testing.T) {
	if got, err := ParseMessages([]byte("  ")); err != nil || len(got) != 0 {
		t.Errorf("ParseMessages(blank) = %v, %v", got, err)
	}
	if _, err := ParseMessages([]byte(`{"message":"x"}`)); err == nil {
		t.Error("ParseMessages(object) should fail")
	}
}

func fakeDownloader(t *testing.T, script string) *Downloader {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script stub")
	}
	bin := filepath.Join(t.TempDir(), "chat_downloader")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"+script), 0755); err != nil {
		t.Fatal(err)
	}
	return NewDownloader(bin)
}

func TestDownloader_Messages(t *testing.T) {
	d := fakeDownloader(t, `
[ "$1" = "https://www.youtube.com/watch?v=vid1" ] || exit 3
[ "$2" = "--output" ] || exit 4
echo '[{"message":"草","time_in_seconds":5}]' > "$3"
`)

	got, err := d.Messages(context.Background(), "vid1")
	if err != nil {
		t.Fatalf("Messages() error = %v", err)
	}
	if len(got) != 1 || got[0].Text != "草" {
		t.Errorf("Messages() = %+v", got)
	}
}

func TestDownloader_NoOutput(t *testing.T) {
	d := fakeDownloader(t, "exit 0\n")

	got, err := d.Messages(context.Background(), "vid1")
	if err != nil {
		t.Fatalf("Messages() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Messages() = %#v, want empty", got)
	}
}

func TestDownloader_Failure(t *testing.T) {
	d := fakeDownloader(t, "echo 'chat is disabled' >&2\nexit 1\n")

	if _, err := d.Messages(context.Background(), "vid1"); !errors.Is(err, apperrors.ErrFetch) {
		t.Errorf("Messages() error = %v, want ErrFetch", err)
	}
}

func TestDownloader_BadOutput(t *testing.T) {
	d := fakeDownloader(t, `echo 'not json' > "$3"`+"\n")

	if _, err := d.Messages(context.Background(), "vid1"); !errors.Is(err, apperrors.ErrFetch) {
		t.Errorf("Messages() error = %v, want ErrFetch", err)
	}
}

func TestDownloader_MissingBinary(t *testing.T) {
	d := NewDownloader(filepath.Join(t.TempDir(), "missing"))

	if _, err := d.Messages(context.Background(), "vid1"); !errors.Is(err, apperrors.ErrFetch) {
		t.Errorf("Messages() error = %v, want ErrFetch", err)
	}
}
