package smartscrape

import "context"

// Scraper runs one extraction of structured data from a web page.
type Scraper interface {
	// Scrape fetches req.SourceURL and answers req.Prompt with the models
	// described by cfg. Failures from the fetch and model layers are
	// returned as-is; ETIMEOUT is returned when the scrape runs out of time.
	Scrape(ctx context.Context, req *ScrapeRequest, cfg *ModelConfig) (ScrapeResult, error)
}
