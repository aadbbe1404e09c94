package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/smartscrape"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := smartscrape.RunFilter{Limit: c.Limit}
	if c.URL != "" {
		filter.SourceURL = &c.URL
	}
	if c.Failed {
		status := smartscrape.RunFailed
		filter.Status = &status
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", smartscrape.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded. Use 'smartscrape run' or 'smartscrape serve' to scrape a page.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %-9s  %6s  %s\n",
			r.ID, r.CreatedAt.Local().Format(time.DateTime), r.Status, r.Duration.Round(time.Millisecond), r.SourceURL)
		if r.Status == smartscrape.RunFailed {
			fmt.Fprintf(deps.Stdout, "    %s: %s\n", r.ErrorCode, r.Error)
		}
	}
	return nil
}
