package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/smartscrape"
	"github.com/fwojciec/smartscrape/fs"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	d := smartscrape.NewDispatcher(deps.Loader, deps.Scraper)

	begin := time.Now()
	req, result, err := d.Dispatch(deps.Ctx, c.Prompt, c.URL)
	if req != nil && deps.Runs != nil {
		run := smartscrape.NewRun(req, result, err, time.Since(begin))
		if rerr := deps.Runs.CreateRun(deps.Ctx, run); rerr != nil {
			deps.Logger.Warn("record run", "url", req.SourceURL, "err", rerr)
		}
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", smartscrape.ErrorMessage(err))
		return err
	}

	out, err := smartscrape.FormatJSON(result)
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, out)

	if c.OutDir != "" {
		path, err := fs.NewResultWriter(c.OutDir).WriteResult(req.SourceURL, result)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", smartscrape.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stderr, "Saved result to %s\n", path)
	}
	return nil
}
