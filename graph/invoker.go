package graph

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/smartscrape"
)

// DefaultTimeout bounds a single scrape.
const DefaultTimeout = 2 * time.Minute

// Ensure Invoker implements smartscrape.Scraper at compile time.
var _ smartscrape.Scraper = (*Invoker)(nil)

// Invoker implements smartscrape.Scraper by running a fresh
// SmartScraperGraph for every request.
type Invoker struct {
	Deps Deps

	// Timeout bounds each scrape. Zero disables the limit.
	Timeout time.Duration
}

// NewInvoker creates an Invoker with DefaultTimeout.
func NewInvoker(deps Deps) *Invoker {
	return &Invoker{Deps: deps, Timeout: DefaultTimeout}
}

// Scrape runs the graph once. Errors pass through unchanged except when
// the deadline expires, which is reported as ETIMEOUT.
func (i *Invoker) Scrape(ctx context.Context, req *smartscrape.ScrapeRequest, cfg *smartscrape.ModelConfig) (smartscrape.ScrapeResult, error) {
	if i.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.Timeout)
		defer cancel()
	}

	result, err := New(req.Prompt, req.SourceURL, cfg, i.Deps).Run(ctx)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, smartscrape.Errorf(smartscrape.ETIMEOUT, "scraping %s timed out", req.SourceURL)
		}
		return nil, err
	}
	return result, nil
}
