package service

import (
	"fmt"
	"html"
	"strings"
	"time"

	chatDomain "github.com/do-dorio/youtube-chat-feed/internal/modules/chat/domain"
	"github.com/do-dorio/youtube-chat-feed/internal/modules/feed/domain"
	filterService "github.com/do-dorio/youtube-chat-feed/internal/modules/filter/service"
	videoDomain "github.com/do-dorio/youtube-chat-feed/internal/modules/video/domain"
)

const (
	DefaultVideoTitle    = "動画"
	DefaultRewindSeconds = 30
)

// Builder turns kept chat messages into feed items
type Builder struct {
	rewind int
}

// NewBuilder creates a builder. Links seek rewindSeconds before the message
// so the viewer gets some context.
func NewBuilder(rewindSeconds int) *Builder {
	if rewindSeconds < 0 {
		rewindSeconds = 0
	}
	return &Builder{rewind: rewindSeconds}
}

// Build creates the item for msg with the given title flags.
func (b *Builder) Build(msg chatDomain.ChatMessage, flags []string) domain.Item {
	offset := msg.OffsetSeconds()

	title := xmlText(msg.VideoTitle)
	if title == "" {
		title = DefaultVideoTitle
	}

	return domain.Item{
		Title:       fmt.Sprintf("%s%s @ %s", xmlText(filterService.Prefix(flags)), title, FormatOffset(offset)),
		Link:        videoDomain.WatchURLAt(msg.VideoID, max(offset-b.rewind, 0)),
		Description: description(msg.VideoID, msg.Text),
		PublishedAt: PublishedAt(msg.VideoPublishedAt, offset),
	}
}

// FormatOffset renders seconds as "<m>分<s>秒".
func FormatOffset(seconds int) string {
	return fmt.Sprintf("%d分%d秒", seconds/60, seconds%60)
}

// PublishedAt is the video publish time plus the message offset, in UTC.
// Without a usable publish time the offset is read as a Unix timestamp, which
// lands near 1970; upstream metadata is always present in practice.
func PublishedAt(videoPublishedAt string, offset int) time.Time {
	if base, ok := parsePublished(videoPublishedAt); ok {
		return base.Add(time.Duration(offset) * time.Second).UTC()
	}
	return time.Unix(int64(offset), 0).UTC()
}

func parsePublished(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, true
	}
	// no zone designator: read as UTC
	if t, err := time.Parse("2006-01-02T15:04:05.999999999", value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func description(videoID, text string) string {
	var sb strings.Builder
	if videoID != "" {
		fmt.Fprintf(&sb, `<img src="%s" width="320"><br>`, html.EscapeString(videoDomain.ThumbnailURL(videoID)))
	}
	sb.WriteString(html.EscapeString(xmlText(text)))
	return sb.String()
}

// xmlText drops runes XML 1.0 cannot carry. The description also goes into a
// CDATA section, where the encoder writes them through unchanged.
func xmlText(s string) string {
	return strings.Map(func(r rune) rune {
		if isXMLChar(r) {
			return r
		}
		return -1
	}, s)
}

func isXMLChar(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}
