// Package slog provides logging decorators for smartscrape services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/smartscrape"
)

// Ensure LoggingFetcher implements smartscrape.Fetcher.
var _ smartscrape.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging. Kind distinguishes the
// static and rendering fetchers in log output.
type LoggingFetcher struct {
	next   smartscrape.Fetcher
	kind   string
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next smartscrape.Fetcher, kind string, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, kind: kind, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"kind", f.kind,
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
