// Package gemini provides a Google Gemini implementation of smartscrape.LLM.
package gemini

import (
	"context"
	"errors"
	"net/http"

	"github.com/fwojciec/smartscrape"
	"google.golang.org/genai"
)

// Ensure types implement the smartscrape interfaces at compile time.
var (
	_ smartscrape.LLMFactory = (*Factory)(nil)
	_ smartscrape.LLM        = (*LLM)(nil)
)

// Factory builds Gemini clients from a ModelConfig.
type Factory struct {
	// BaseURL overrides the Gemini API endpoint. Used in tests.
	BaseURL string

	// HTTPClient is used for API calls when set.
	HTTPClient *http.Client
}

// NewFactory creates a new Factory.
func NewFactory() *Factory {
	return &Factory{}
}

// NewLLM returns a client for the model named in cfg.LLM.Deployment.
func (f *Factory) NewLLM(ctx context.Context, cfg *smartscrape.ModelConfig) (smartscrape.LLM, error) {
	if cfg.Provider != smartscrape.ProviderGemini {
		return nil, smartscrape.Errorf(smartscrape.ECONFIG, "gemini: unsupported provider %q", cfg.Provider)
	}
	if cfg.LLM.APIKey == "" {
		return nil, smartscrape.Errorf(smartscrape.EMISSINGCRED, "gemini: %s is required", smartscrape.KeyGeminiAPIKey)
	}

	model := cfg.LLM.Deployment
	if model == "" {
		model = smartscrape.DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.LLM.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  f.HTTPClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: f.BaseURL},
	})
	if err != nil {
		return nil, err
	}
	return &LLM{client: client, model: model}, nil
}

// LLM answers completions with one Gemini model.
type LLM struct {
	client *genai.Client
	model  string
}

// Complete sends the completion and returns the reply text.
func (l *LLM) Complete(ctx context.Context, c *smartscrape.Completion) (string, error) {
	result, err := l.client.Models.GenerateContent(ctx, l.model,
		[]*genai.Content{{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{{Text: c.User}},
		}},
		BuildConfig(c),
	)
	if err != nil {
		return "", convertError(err)
	}
	if result == nil {
		return "", smartscrape.Errorf(smartscrape.EDEPENDENCY, "gemini returned nil result")
	}

	text := result.Text()
	if text == "" {
		return "", smartscrape.Errorf(smartscrape.EDEPENDENCY, "gemini returned no text")
	}
	return text, nil
}

// BuildConfig returns the GenerateContentConfig for a completion.
func BuildConfig(c *smartscrape.Completion) *genai.GenerateContentConfig {
	temp := float32(0)
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	if c.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: c.System}},
		}
	}
	if c.JSON {
		config.ResponseMIMEType = "application/json"
	}
	return config
}

func convertError(err error) error {
	var apierr genai.APIError
	if errors.As(err, &apierr) {
		return smartscrape.Errorf(smartscrape.EDEPENDENCY, "gemini: HTTP %d: %s", apierr.Code, apierr.Message)
	}
	return err
}
