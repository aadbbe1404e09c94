package smartscrape

import "context"

// Completion is a single prompt sent to a chat model.
type Completion struct {
	// System is the instruction that frames the task.
	System string

	// User carries the question and page content.
	User string

	// JSON requests a response constrained to a JSON object.
	JSON bool
}

// LLM answers prompts with a chat model.
type LLM interface {
	// Complete sends the completion and returns the model's text reply.
	Complete(ctx context.Context, c *Completion) (string, error)
}

// LLMFactory builds an LLM client from a model configuration.
type LLMFactory interface {
	NewLLM(ctx context.Context, cfg *ModelConfig) (LLM, error)
}

// Ensure LLMRouter implements LLMFactory at compile time.
var _ LLMFactory = (LLMRouter)(nil)

// LLMRouter dispatches to the factory registered for a config's provider.
type LLMRouter map[Provider]LLMFactory

// NewLLM builds an LLM with the factory registered for cfg.Provider.
func (r LLMRouter) NewLLM(ctx context.Context, cfg *ModelConfig) (LLM, error) {
	f, ok := r[cfg.Provider]
	if !ok {
		return nil, Errorf(ECONFIG, "unsupported LLM provider %q", cfg.Provider)
	}
	return f.NewLLM(ctx, cfg)
}
