// Package source reads live chat replays. The replay itself is produced by the
// external chat_downloader tool; this package only runs it and decodes its
// JSON output.
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/oops"

	"github.com/do-dorio/youtube-chat-feed/internal/modules/chat/domain"
	videoDomain "github.com/do-dorio/youtube-chat-feed/internal/modules/video/domain"
	"github.com/do-dorio/youtube-chat-feed/internal/shared/errors"
)

// Source yields the chat messages of one video.
type Source interface {
	Messages(ctx context.Context, videoID string) ([]domain.ChatMessage, error)
}

// Downloader runs the chat_downloader executable for a video.
type Downloader struct {
	bin    string
	logger *slog.Logger
}

// NewDownloader creates a chat source backed by the executable bin
func NewDownloader(bin string) *Downloader {
	return &Downloader{bin: bin, logger: slog.Default()}
}

// SetLogger sets the logger
func (d *Downloader) SetLogger(logger *slog.Logger) {
	d.logger = logger
}

func (d *Downloader) Messages(ctx context.Context, videoID string) ([]domain.ChatMessage, error) {
	dir, err := os.MkdirTemp("", "chatfeed-*")
	if err != nil {
		return nil, oops.With("video_id", videoID, "context", "failed to create temp directory").Wrap(err)
	}
	defer os.RemoveAll(dir)

	out := filepath.Join(dir, "chat.json")
	cmd := exec.CommandContext(ctx, d.bin, videoDomain.WatchURL(videoID), "--output", out)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	d.logger.Info("Downloading chat", "video_id", videoID)
	if err := cmd.Run(); err != nil {
		return nil, oops.Code(errors.CodeFetch).
			With("video_id", videoID, "stderr", lastLine(stderr.String())).
			Wrap(fmt.Errorf("%w: %w", errors.ErrFetch, err))
	}

	data, err := os.ReadFile(out)
	if err != nil {
		if os.IsNotExist(err) {
			// chat_downloader writes nothing for a replay without messages
			return []domain.ChatMessage{}, nil
		}
		return nil, oops.With("video_id", videoID, "context", "failed to read chat output").Wrap(err)
	}

	messages, err := ParseMessages(data)
	if err != nil {
		return nil, oops.Code(errors.CodeFetch).
			With("video_id", videoID).
			Wrap(fmt.Errorf("%w: unexpected chat output: %w", errors.ErrFetch, err))
	}
	return messages, nil
}

// ParseMessages decodes a JSON array of chat items. An item that does not
// decode becomes a message with empty text, which the filter always drops.
func ParseMessages(data []byte) ([]domain.ChatMessage, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []domain.ChatMessage{}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}

	return lo.Map(items, func(item json.RawMessage, _ int) domain.ChatMessage {
		var msg domain.ChatMessage
		if err := json.Unmarshal(item, &msg); err != nil {
			return domain.ChatMessage{}
		}
		return msg
	}), nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return lines[len(lines)-1]
}
