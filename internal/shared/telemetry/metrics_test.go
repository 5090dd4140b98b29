package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestInitIsIdempotent(t *testing.T) {
	Init()
	first := MessagesKept
	Init()

	if MessagesKept != first {
		t.Error("Init() re-created counters on second call")
	}
	if ChannelsScanned == nil || VideosProcessed == nil || FeedItemsWritten == nil {
		t.Fatal("metrics not initialized")
	}
}

func TestCountersIncrement(t *testing.T) {
	Init()

	before := testutil.ToFloat64(MessagesScanned)
	MessagesScanned.Add(3)
	if got := testutil.ToFloat64(MessagesScanned) - before; got != 3 {
		t.Errorf("MessagesScanned delta = %v, want 3", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	Init()
	FeedItemsWritten.Set(7)

	t.Run("empty path is a no-op", func(t *testing.T) {
		if err := WriteTextfile(""); err != nil {
			t.Fatalf("WriteTextfile(\"\") error = %v", err)
		}
	})

	t.Run("writes prometheus text format", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "chatfeed.prom")
		if err := WriteTextfile(path); err != nil {
			t.Fatalf("WriteTextfile() error = %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read metrics file: %v", err)
		}
		if !strings.Contains(string(data), "chatfeed_feed_items 7") {
			t.Errorf("metrics file missing gauge value:\n%s", data)
		}
	})
}

func TestRunID(t *testing.T) {
	if got := RunID(context.Background()); got != "" {
		t.Errorf("RunID(empty ctx) = %q, want empty", got)
	}

	ctx, id := WithRunID(context.Background())
	if id == "" {
		t.Fatal("WithRunID() returned empty id")
	}
	if got := RunID(ctx); got != id {
		t.Errorf("RunID() = %q, want %q", got, id)
	}

	_, other := WithRunID(context.Background())
	if other == id {
		t.Error("WithRunID() returned the same id twice")
	}
}
