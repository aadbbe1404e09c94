package mock

import "github.com/fwojciec/smartscrape"

var _ smartscrape.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of smartscrape.Extractor.
type Extractor struct {
	ExtractFn func(html, pageURL string) (*smartscrape.ExtractResult, error)
}

func (e *Extractor) Extract(html, pageURL string) (*smartscrape.ExtractResult, error) {
	return e.ExtractFn(html, pageURL)
}
