package mock

import "github.com/fwojciec/smartscrape"

var _ smartscrape.Prober = (*Prober)(nil)

// Prober is a mock implementation of smartscrape.Prober.
type Prober struct {
	RequiresJSFn func(html string) bool
}

func (p *Prober) RequiresJS(html string) bool {
	return p.RequiresJSFn(html)
}
