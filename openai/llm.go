// Package openai provides the Azure OpenAI implementation of
// smartscrape.LLM using openai-go.
package openai

import (
	"context"
	"errors"
	"net/http"

	"github.com/fwojciec/smartscrape"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/azure"
	"github.com/openai/openai-go/v3/option"
)

// Ensure types implement the smartscrape interfaces at compile time.
var (
	_ smartscrape.LLMFactory = (*Factory)(nil)
	_ smartscrape.LLM        = (*LLM)(nil)
)

// Factory builds Azure OpenAI chat clients from a ModelConfig.
type Factory struct {
	client *http.Client
}

// Option configures a Factory.
type Option func(*Factory)

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Factory) {
		f.client = client
	}
}

// NewFactory creates a new Factory.
func NewFactory(opts ...Option) *Factory {
	f := &Factory{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewLLM returns a client for the chat deployment in cfg. The client never
// retries.
func (f *Factory) NewLLM(_ context.Context, cfg *smartscrape.ModelConfig) (smartscrape.LLM, error) {
	if cfg.Provider != smartscrape.ProviderAzure {
		return nil, smartscrape.Errorf(smartscrape.ECONFIG, "openai: unsupported provider %q", cfg.Provider)
	}
	if cfg.LLM.URL == "" || cfg.LLM.Deployment == "" || cfg.APIVersion == "" {
		return nil, smartscrape.Errorf(smartscrape.EMISSINGCRED, "openai: endpoint, deployment and API version are required")
	}

	opts := []option.RequestOption{
		azure.WithEndpoint(cfg.LLM.URL, cfg.APIVersion),
		azure.WithAPIKey(cfg.LLM.APIKey),
		option.WithMaxRetries(0),
	}
	if f.client != nil {
		opts = append(opts, option.WithHTTPClient(f.client))
	}

	return &LLM{
		client:     openai.NewClient(opts...),
		deployment: cfg.LLM.Deployment,
	}, nil
}

// LLM sends chat completions to one Azure OpenAI deployment.
type LLM struct {
	client     openai.Client
	deployment string
}

// Complete sends the completion and returns the first choice's content.
func (l *LLM) Complete(ctx context.Context, c *smartscrape.Completion) (string, error) {
	req := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(l.deployment),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(c.System),
			openai.UserMessage(c.User),
		},
	}
	if c.JSON {
		req.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		}
	}

	completion, err := l.client.Chat.Completions.New(ctx, req)
	if err != nil {
		return "", convertError(err)
	}

	if len(completion.Choices) == 0 {
		return "", smartscrape.Errorf(smartscrape.EDEPENDENCY, "openai: no choices returned")
	}

	choice := completion.Choices[0]
	if choice.Message.Refusal != "" {
		return "", smartscrape.Errorf(smartscrape.EDEPENDENCY, "openai: model refused: %s", choice.Message.Refusal)
	}
	return choice.Message.Content, nil
}

// convertError turns API failures into EDEPENDENCY errors. Transport and
// context errors are returned unchanged.
func convertError(err error) error {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		msg := apierr.Message
		if msg == "" {
			msg = http.StatusText(apierr.StatusCode)
		}
		return smartscrape.Errorf(smartscrape.EDEPENDENCY, "openai: HTTP %d: %s", apierr.StatusCode, msg)
	}
	return err
}
