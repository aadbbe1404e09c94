package smartscrape

import "context"

// Dispatcher runs the trigger sequence shared by every front end:
// validate the inputs, load the model configuration, then scrape.
type Dispatcher struct {
	Loader  ConfigLoader
	Scraper Scraper
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(loader ConfigLoader, scraper Scraper) *Dispatcher {
	return &Dispatcher{Loader: loader, Scraper: scraper}
}

// Dispatch validates prompt and sourceURL and, when both are non-blank,
// loads the configuration once and scrapes once. The returned request
// holds the trimmed inputs; it is nil when validation fails.
//
// Validation failures return EINVALID without touching the loader or the
// scraper. Nothing is cached between calls.
func (d *Dispatcher) Dispatch(ctx context.Context, prompt, sourceURL string) (*ScrapeRequest, ScrapeResult, error) {
	req, err := NewScrapeRequest(prompt, sourceURL)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := d.Loader.LoadConfig(ctx)
	if err != nil {
		return req, nil, err
	}

	result, err := d.Scraper.Scrape(ctx, req, cfg)
	if err != nil {
		return req, nil, err
	}
	return req, result, nil
}
