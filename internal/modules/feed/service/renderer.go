package service

import (
	"bytes"
	"fmt"

	"github.com/gorilla/feeds"
	"github.com/mmcdole/gofeed"
	"github.com/samber/lo"
	"github.com/samber/oops"

	"github.com/do-dorio/youtube-chat-feed/internal/modules/feed/domain"
	"github.com/do-dorio/youtube-chat-feed/internal/shared/errors"
)

// Renderer serializes feed items into an RSS 2.0 document
type Renderer struct {
	meta domain.ChannelMeta
}

// NewRenderer creates a renderer with a fixed channel header
func NewRenderer(meta domain.ChannelMeta) *Renderer {
	return &Renderer{meta: meta}
}

// Render writes items in the given order; it never sorts. Each item carries
// its description twice: entity-escaped in <description> and verbatim inside
// a CDATA <content:encoded>, so the HTML is never read as feed structure.
// Channel dates are left out so the same items always render the same bytes.
func (r *Renderer) Render(items []domain.Item) ([]byte, error) {
	if len(items) == 0 {
		return nil, oops.Code(errors.CodeEmptyResult).Wrap(errors.ErrEmptyResult)
	}

	feed := &feeds.Feed{
		Title:       r.meta.Title,
		Link:        &feeds.Link{Href: r.meta.Link},
		Description: r.meta.Description,
	}
	feed.Items = lo.Map(items, func(item domain.Item, _ int) *feeds.Item {
		return &feeds.Item{
			Title:       item.Title,
			Link:        &feeds.Link{Href: item.Link},
			Description: item.Description,
			Content:     item.Description,
			Created:     item.PublishedAt.UTC(),
		}
	})

	var buf bytes.Buffer
	if err := feed.WriteRss(&buf); err != nil {
		return nil, oops.With("items", len(items), "context", "failed to render rss").Wrap(err)
	}
	return buf.Bytes(), nil
}

// Verify parses doc back and checks it is an RSS feed with want items.
func Verify(doc []byte, want int) error {
	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(doc))
	if err != nil {
		return oops.With("context", "rendered document does not parse").Wrap(err)
	}
	if parsed.FeedType != "rss" {
		return oops.Errorf("rendered document is %q, not rss", parsed.FeedType)
	}
	if len(parsed.Items) != want {
		return oops.Wrap(fmt.Errorf("rendered document has %d items, want %d", len(parsed.Items), want))
	}
	return nil
}
