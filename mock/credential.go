package mock

import (
	"context"

	"github.com/fwojciec/smartscrape"
)

var _ smartscrape.CredentialSource = (*CredentialSource)(nil)

// CredentialSource is a mock implementation of smartscrape.CredentialSource.
type CredentialSource struct {
	LookupFn func(ctx context.Context, key string) (string, error)
}

func (s *CredentialSource) Lookup(ctx context.Context, key string) (string, error) {
	return s.LookupFn(ctx, key)
}

var _ smartscrape.ConfigLoader = (*ConfigLoader)(nil)

// ConfigLoader is a mock implementation of smartscrape.ConfigLoader.
type ConfigLoader struct {
	LoadConfigFn func(ctx context.Context) (*smartscrape.ModelConfig, error)
}

func (l *ConfigLoader) LoadConfig(ctx context.Context) (*smartscrape.ModelConfig, error) {
	return l.LoadConfigFn(ctx)
}
