package mock

import (
	"context"

	"github.com/fwojciec/smartscrape"
)

var _ smartscrape.RunService = (*RunService)(nil)

// RunService is a mock implementation of smartscrape.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *smartscrape.Run) error
	FindRunByIDFn func(ctx context.Context, id string) (*smartscrape.Run, error)
	FindRunsFn    func(ctx context.Context, filter smartscrape.RunFilter) ([]*smartscrape.Run, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *smartscrape.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*smartscrape.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter smartscrape.RunFilter) ([]*smartscrape.Run, error) {
	return s.FindRunsFn(ctx, filter)
}
