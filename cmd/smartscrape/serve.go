package main

import (
	"fmt"

	"github.com/fwojciec/smartscrape"
	ssshttp "github.com/fwojciec/smartscrape/http"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	s := ssshttp.NewServer(smartscrape.NewDispatcher(deps.Loader, deps.Scraper), deps.Logger)
	s.Addr = c.Addr
	s.Runs = deps.Runs

	if err := s.Open(); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", c.Addr, err)
	}
	fmt.Fprintf(deps.Stdout, "Serving smart scraper at %s\n", s.URL())

	return s.Serve(deps.Ctx)
}
