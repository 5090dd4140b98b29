package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmcdole/gofeed"
	"github.com/prometheus/client_golang/prometheus/testutil"

	chatDomain "github.com/do-dorio/youtube-chat-feed/internal/modules/chat/domain"
	chatRepo "github.com/do-dorio/youtube-chat-feed/internal/modules/chat/repository"
	feedDomain "github.com/do-dorio/youtube-chat-feed/internal/modules/feed/domain"
	feedRepo "github.com/do-dorio/youtube-chat-feed/internal/modules/feed/repository"
	feedService "github.com/do-dorio/youtube-chat-feed/internal/modules/feed/service"
	filterDomain "github.com/do-dorio/youtube-chat-feed/internal/modules/filter/domain"
	apperrors "github.com/do-dorio/youtube-chat-feed/internal/shared/errors"
	"github.com/do-dorio/youtube-chat-feed/internal/shared/telemetry"
)

type staticLabels filterDomain.Labels

func (l staticLabels) Labels() (filterDomain.Labels, error) {
	return filterDomain.Labels(l), nil
}

type failingLabels struct{}

func (failingLabels) Labels() (filterDomain.Labels, error) {
	return nil, apperrors.ErrConfig
}

type fixture struct {
	dir     string
	primary string
	staging string
	records *chatRepo.FileStorage
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	return &fixture{
		dir:     dir,
		primary: filepath.Join(dir, "chat_feed.xml"),
		staging: filepath.Join(dir, "docs", "chat_feed.xml"),
		records: chatRepo.NewFileStorage(filepath.Join(dir, "latest_chat_filtered.json")),
	}
}

func (f *fixture) runner(labels LabelSource, staging string) *Runner {
	return New(
		f.records,
		labels,
		feedService.NewBuilder(feedService.DefaultRewindSeconds),
		feedService.NewRenderer(feedDomain.ChannelMeta{
			Title:       "YouTube Chat Feed",
			Link:        "https://www.youtube.com",
			Description: "Latest filtered chat from YouTube",
		}),
		feedRepo.NewFileStorage(f.primary, staging),
		20,
	)
}

func TestRun(t *testing.T) {
	f := newFixture(t)
	err := f.records.Save([]chatDomain.ChatMessage{
		{Text: "草神", TimeInSeconds: 125, VideoID: "v1", VideoTitle: "配信", VideoPublishedAt: "2024-05-01T12:00:00Z"},
		{Text: "0123456789012345678901234", TimeInSeconds: 45, VideoID: "v1", VideoTitle: "配信", VideoPublishedAt: "2024-05-01T12:00:00Z"},
	})
	if err != nil {
		t.Fatal(err)
	}

	labels := staticLabels{{Trigger: "草", Name: "w"}, {Trigger: "神", Name: "g"}}
	summary, err := f.runner(labels, f.staging).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.Items != 2 || summary.Skipped || summary.CopyFailed {
		t.Errorf("summary = %+v", summary)
	}
	if got := testutil.ToFloat64(telemetry.FeedItemsWritten); got != 2 {
		t.Errorf("feed items gauge = %v, want 2", got)
	}

	primary, err := os.ReadFile(f.primary)
	if err != nil {
		t.Fatal(err)
	}
	staged, err := os.ReadFile(f.staging)
	if err != nil {
		t.Fatal(err)
	}
	if string(primary) != string(staged) {
		t.Error("staging copy differs from primary")
	}

	feed, err := gofeed.NewParser().ParseString(string(primary))
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	wantTitles := []string{"w g: 配信 @ 2分5秒", "長文: 配信 @ 0分45秒"}
	for i, item := range feed.Items {
		if item.Title != wantTitles[i] {
			t.Errorf("item %d title = %q, want %q", i, item.Title, wantTitles[i])
		}
	}
	if feed.Items[1].Link != "https://www.youtube.com/watch?v=v1&t=15s" {
		t.Errorf("item 1 link = %q", feed.Items[1].Link)
	}
}

func TestRun_EmptyLeavesFeedUntouched(t *testing.T) {
	f := newFixture(t)
	if err := os.WriteFile(f.primary, []byte("previous"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := f.records.Save(nil); err != nil {
		t.Fatal(err)
	}

	summary, err := f.runner(failingLabels{}, f.staging).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !summary.Skipped {
		t.Errorf("summary = %+v, want skipped", summary)
	}

	data, _ := os.ReadFile(f.primary)
	if string(data) != "previous" {
		t.Errorf("primary = %q, should be untouched", data)
	}
	if _, err := os.Stat(f.staging); !os.IsNotExist(err) {
		t.Error("staging copy should not be created")
	}
}

func TestRun_MissingRecord(t *testing.T) {
	f := newFixture(t)

	summary, err := f.runner(staticLabels{}, f.staging).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !summary.Skipped {
		t.Errorf("summary = %+v, want skipped", summary)
	}
}

func TestRun_CopyFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	if err := f.records.Save([]chatDomain.ChatMessage{{Text: "<script>&", VideoID: "v1"}}); err != nil {
		t.Fatal(err)
	}
	blocker := filepath.Join(f.dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	summary, err := f.runner(staticLabels{}, filepath.Join(blocker, "chat_feed.xml")).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !summary.CopyFailed || summary.Items != 1 {
		t.Errorf("summary = %+v", summary)
	}

	data, err := os.ReadFile(f.primary)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "<script>") {
		t.Error("message text is not escaped")
	}
}

func TestRun_LabelError(t *testing.T) {
	f := newFixture(t)
	if err := f.records.Save([]chatDomain.ChatMessage{{Text: "草"}}); err != nil {
		t.Fatal(err)
	}

	if _, err := f.runner(failingLabels{}, f.staging).Run(context.Background()); !errors.Is(err, apperrors.ErrConfig) {
		t.Errorf("Run() error = %v, want ErrConfig", err)
	}
	if _, err := os.Stat(f.primary); !os.IsNotExist(err) {
		t.Error("primary should not be written")
	}
}
