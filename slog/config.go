package slog

import (
	"context"
	"log/slog"

	"github.com/fwojciec/smartscrape"
)

// Ensure LoggingConfigLoader implements smartscrape.ConfigLoader.
var _ smartscrape.ConfigLoader = (*LoggingConfigLoader)(nil)

// LoggingConfigLoader wraps a ConfigLoader with debug logging.
// Secrets are never logged.
type LoggingConfigLoader struct {
	next   smartscrape.ConfigLoader
	logger *slog.Logger
}

// NewLoggingConfigLoader creates a new LoggingConfigLoader.
func NewLoggingConfigLoader(next smartscrape.ConfigLoader, logger *slog.Logger) *LoggingConfigLoader {
	return &LoggingConfigLoader{next: next, logger: logger}
}

// LoadConfig logs which model was configured and delegates to the wrapped
// loader.
func (l *LoggingConfigLoader) LoadConfig(ctx context.Context) (*smartscrape.ModelConfig, error) {
	cfg, err := l.next.LoadConfig(ctx)
	if err != nil {
		l.logger.Warn("load config", "code", smartscrape.ErrorCode(err), "err", err)
		return nil, err
	}
	l.logger.Debug("load config",
		"provider", cfg.Provider,
		"endpoint", cfg.LLM.URL,
		"deployment", cfg.LLM.Deployment,
		"max_tokens", cfg.MaxTokens,
	)
	return cfg, nil
}
