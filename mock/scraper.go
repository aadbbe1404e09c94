package mock

import (
	"context"

	"github.com/fwojciec/smartscrape"
)

var _ smartscrape.Scraper = (*Scraper)(nil)

// Scraper is a mock implementation of smartscrape.Scraper.
type Scraper struct {
	ScrapeFn func(ctx context.Context, req *smartscrape.ScrapeRequest, cfg *smartscrape.ModelConfig) (smartscrape.ScrapeResult, error)
}

func (s *Scraper) Scrape(ctx context.Context, req *smartscrape.ScrapeRequest, cfg *smartscrape.ModelConfig) (smartscrape.ScrapeResult, error) {
	return s.ScrapeFn(ctx, req, cfg)
}
