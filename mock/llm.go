package mock

import (
	"context"

	"github.com/fwojciec/smartscrape"
)

var _ smartscrape.LLM = (*LLM)(nil)

// LLM is a mock implementation of smartscrape.LLM.
type LLM struct {
	CompleteFn func(ctx context.Context, c *smartscrape.Completion) (string, error)
}

func (l *LLM) Complete(ctx context.Context, c *smartscrape.Completion) (string, error) {
	return l.CompleteFn(ctx, c)
}

var _ smartscrape.LLMFactory = (*LLMFactory)(nil)

// LLMFactory is a mock implementation of smartscrape.LLMFactory.
type LLMFactory struct {
	NewLLMFn func(ctx context.Context, cfg *smartscrape.ModelConfig) (smartscrape.LLM, error)
}

func (f *LLMFactory) NewLLM(ctx context.Context, cfg *smartscrape.ModelConfig) (smartscrape.LLM, error) {
	return f.NewLLMFn(ctx, cfg)
}
