// Package telemetry holds the run counters and the run correlation id.
//
// Runs are short-lived batch jobs, so metrics are not scraped: when a metrics
// file is configured they are written once at the end of a run in the
// Prometheus text format for a node_exporter textfile collector.
package telemetry

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/samber/oops"
)

var (
	once sync.Once

	ChannelsScanned  prometheus.Counter
	ChannelsFailed   prometheus.Counter
	VideosSkipped    prometheus.Counter
	VideosProcessed  prometheus.Counter
	MessagesScanned  prometheus.Counter
	MessagesKept     prometheus.Counter
	FetchErrors      prometheus.Counter
	DecodeErrors     prometheus.Counter
	FeedItemsWritten prometheus.Gauge
)

// Init registers metrics (idempotent).
func Init() {
	once.Do(func() {
		ChannelsScanned = promauto.NewCounter(prometheus.CounterOpts{Name: "chatfeed_channels_scanned_total", Help: "Channels visited by fetch runs"})
		ChannelsFailed = promauto.NewCounter(prometheus.CounterOpts{Name: "chatfeed_channels_failed_total", Help: "Channels whose processing aborted with an error"})
		VideosSkipped = promauto.NewCounter(prometheus.CounterOpts{Name: "chatfeed_videos_skipped_total", Help: "Videos skipped because the ledger already had them"})
		VideosProcessed = promauto.NewCounter(prometheus.CounterOpts{Name: "chatfeed_videos_processed_total", Help: "Finished live streams whose chat was downloaded"})
		MessagesScanned = promauto.NewCounter(prometheus.CounterOpts{Name: "chatfeed_messages_scanned_total", Help: "Chat messages passed to the filter"})
		MessagesKept = promauto.NewCounter(prometheus.CounterOpts{Name: "chatfeed_messages_kept_total", Help: "Chat messages kept by the filter"})
		FetchErrors = promauto.NewCounter(prometheus.CounterOpts{Name: "chatfeed_fetch_errors_total", Help: "Metadata or chat fetches that failed"})
		DecodeErrors = promauto.NewCounter(prometheus.CounterOpts{Name: "chatfeed_decode_errors_total", Help: "Hidden ng word entries skipped as malformed"})
		FeedItemsWritten = promauto.NewGauge(prometheus.GaugeOpts{Name: "chatfeed_feed_items", Help: "Items in the last rendered feed document"})
	})
}

// WriteTextfile dumps the default registry to path. An empty path is a no-op.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return oops.With("metrics_file", path).Wrap(err)
	}
	return nil
}

type runKeyType struct{}

var runKey runKeyType

// WithRunID returns a context carrying a fresh run id, plus the id.
func WithRunID(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return context.WithValue(ctx, runKey, id), id
}

// RunID returns the run id or empty string.
func RunID(ctx context.Context) string {
	if s, ok := ctx.Value(runKey).(string); ok {
		return s
	}
	return ""
}

// Logger returns the default logger with run_id attached if present.
func Logger(ctx context.Context) *slog.Logger {
	if id := RunID(ctx); id != "" {
		return slog.Default().With(slog.String("run_id", id))
	}
	return slog.Default()
}
