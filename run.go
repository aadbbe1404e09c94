package smartscrape

import (
	"context"
	"time"
)

// RunStatus describes how a scrape ended.
type RunStatus string

// RunStatus constants.
const (
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)

// Run is a history record of one dispatched scrape. Runs are kept for
// review only and are never used to answer a later request.
type Run struct {
	ID        string        `json:"id"`
	Prompt    string        `json:"prompt"`
	SourceURL string        `json:"sourceUrl"`
	Status    RunStatus     `json:"status"`
	Result    string        `json:"result"`
	ErrorCode string        `json:"errorCode"`
	Error     string        `json:"error"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"createdAt"`
}

// NewRun builds a history record for a finished scrape.
func NewRun(req *ScrapeRequest, result ScrapeResult, err error, duration time.Duration) *Run {
	run := &Run{
		Prompt:    req.Prompt,
		SourceURL: req.SourceURL,
		Duration:  duration,
	}
	if err != nil {
		run.Status = RunFailed
		run.ErrorCode = ErrorCode(err)
		run.Error = ErrorMessage(err)
		return run
	}
	run.Status = RunSucceeded
	if s, ferr := FormatJSON(result); ferr == nil {
		run.Result = s
	}
	return run
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.Prompt == "" {
		return Errorf(EINVALID, "run prompt required")
	}
	if r.SourceURL == "" {
		return Errorf(EINVALID, "run source URL required")
	}
	switch r.Status {
	case RunSucceeded, RunFailed:
	default:
		return Errorf(EINVALID, "invalid run status %q", r.Status)
	}
	return nil
}

// RunService represents a service for recording scrape history.
type RunService interface {
	// CreateRun stores a new run and assigns its ID and CreatedAt.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	SourceURL *string    `json:"sourceUrl"`
	Status    *RunStatus `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
