package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/smartscrape"
)

// Ensure LoggingScraper implements smartscrape.Scraper.
var _ smartscrape.Scraper = (*LoggingScraper)(nil)

// LoggingScraper wraps a Scraper with logging.
type LoggingScraper struct {
	next   smartscrape.Scraper
	logger *slog.Logger
}

// NewLoggingScraper creates a new LoggingScraper.
func NewLoggingScraper(next smartscrape.Scraper, logger *slog.Logger) *LoggingScraper {
	return &LoggingScraper{next: next, logger: logger}
}

// Scrape logs the request outcome and delegates to the wrapped scraper.
func (s *LoggingScraper) Scrape(ctx context.Context, req *smartscrape.ScrapeRequest, cfg *smartscrape.ModelConfig) (result smartscrape.ScrapeResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", req.SourceURL,
			"provider", cfg.Provider,
			"deployment", cfg.LLM.Deployment,
			"fields", len(result),
			"duration", time.Since(begin),
		}
		if err != nil {
			s.logger.Error("scrape", append(attrs, "code", smartscrape.ErrorCode(err), "err", err)...)
			return
		}
		s.logger.Info("scrape", attrs...)
	}(time.Now())
	return s.next.Scrape(ctx, req, cfg)
}
