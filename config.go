package smartscrape

import (
	"context"
	"strconv"
	"strings"
)

// Provider identifies the LLM backend a ModelConfig targets.
type Provider string

// Provider constants.
const (
	ProviderAzure  Provider = "azure"
	ProviderGemini Provider = "gemini"
)

// Credential keys. The same names are used by every CredentialSource.
const (
	KeyProvider             = "SMARTSCRAPE_LLM_PROVIDER"
	KeyMaxTokens            = "SMARTSCRAPE_MAX_TOKENS"
	KeyAPIVersion           = "AZURE_OPENAI_API_VERSION"
	KeyChatDeployment       = "AZURE_OPENAI_CHAT_DEPLOYMENT_NAME"
	KeyEmbeddingsDeployment = "AZURE_OPENAI_EMBEDDINGS_DEPLOYMENT_NAME"
	KeyEndpoint             = "AZURE_OPENAI_ENDPOINT"
	KeyAPIKey               = "AZURE_OPENAI_API_KEY"
	KeyEmbeddingsEndpoint   = "AZURE_OPENAI_EMBEDDINGS_ENDPOINT"
	KeyEmbeddingsAPIKey     = "AZURE_OPENAI_EMBEDDINGS_API_KEY"
	KeyGeminiAPIKey         = "GEMINI_API_KEY"
	KeyGeminiModel          = "GEMINI_MODEL"
)

// DefaultGeminiModel is used when GEMINI_MODEL is not set.
const DefaultGeminiModel = "gemini-2.5-flash"

// Endpoint holds the connection details for one model deployment.
type Endpoint struct {
	URL        string `json:"url"`
	APIKey     string `json:"-"`
	Deployment string `json:"deployment"`
}

// ModelConfig is the bundle of model connection details handed to the
// scraper-graph. It is built from a CredentialSource on every trigger.
type ModelConfig struct {
	Provider   Provider `json:"provider"`
	APIVersion string   `json:"apiVersion"`
	LLM        Endpoint `json:"llm"`
	Embeddings Endpoint `json:"embeddings"`

	// MaxTokens is an optional token-budget hint for page content.
	// Zero means no limit.
	MaxTokens int `json:"maxTokens"`
}

// Validate returns an error if required fields for the provider are empty.
func (c *ModelConfig) Validate() error {
	var missing []string
	switch c.Provider {
	case ProviderAzure:
		if c.APIVersion == "" {
			missing = append(missing, KeyAPIVersion)
		}
		if c.LLM.Deployment == "" {
			missing = append(missing, KeyChatDeployment)
		}
		if c.Embeddings.Deployment == "" {
			missing = append(missing, KeyEmbeddingsDeployment)
		}
		if c.LLM.URL == "" {
			missing = append(missing, KeyEndpoint)
		}
		if c.LLM.APIKey == "" {
			missing = append(missing, KeyAPIKey)
		}
	case ProviderGemini:
		if c.LLM.APIKey == "" {
			missing = append(missing, KeyGeminiAPIKey)
		}
	default:
		return Errorf(ECONFIG, "unsupported LLM provider %q", c.Provider)
	}
	if len(missing) > 0 {
		return Errorf(EMISSINGCRED, "missing credentials: %s", strings.Join(missing, ", "))
	}
	if c.MaxTokens < 0 {
		return Errorf(ECONFIG, "max tokens must not be negative")
	}
	return nil
}

// CredentialSource retrieves named credentials from a backing store such as
// the process environment or a secrets store.
type CredentialSource interface {
	// Lookup returns the value stored under key.
	// Returns ENOTFOUND if the key is absent.
	Lookup(ctx context.Context, key string) (string, error)
}

// ConfigLoader builds the model configuration for one scrape.
type ConfigLoader interface {
	// LoadConfig reads credentials and assembles a ModelConfig.
	// Returns EMISSINGCRED if a required credential is absent.
	LoadConfig(ctx context.Context) (*ModelConfig, error)
}

// Ensure CredentialLoader implements ConfigLoader at compile time.
var _ ConfigLoader = (*CredentialLoader)(nil)

// CredentialLoader implements ConfigLoader on top of a CredentialSource.
// It never caches: every call reads the source again.
type CredentialLoader struct {
	Source CredentialSource
}

// NewCredentialLoader creates a new CredentialLoader.
func NewCredentialLoader(src CredentialSource) *CredentialLoader {
	return &CredentialLoader{Source: src}
}

// LoadConfig reads credentials from the source and assembles a ModelConfig.
func (l *CredentialLoader) LoadConfig(ctx context.Context) (*ModelConfig, error) {
	r := &credentialReader{ctx: ctx, src: l.Source}

	provider := Provider(strings.ToLower(r.get(KeyProvider)))
	if provider == "" {
		provider = ProviderAzure
	}

	cfg := &ModelConfig{Provider: provider}

	switch provider {
	case ProviderAzure:
		cfg.APIVersion = r.get(KeyAPIVersion)
		cfg.LLM = Endpoint{
			URL:        r.get(KeyEndpoint),
			APIKey:     r.get(KeyAPIKey),
			Deployment: r.get(KeyChatDeployment),
		}
		cfg.Embeddings = Endpoint{
			URL:        r.getOr(KeyEmbeddingsEndpoint, cfg.LLM.URL),
			APIKey:     r.getOr(KeyEmbeddingsAPIKey, cfg.LLM.APIKey),
			Deployment: r.get(KeyEmbeddingsDeployment),
		}
	case ProviderGemini:
		cfg.LLM = Endpoint{
			APIKey:     r.get(KeyGeminiAPIKey),
			Deployment: r.getOr(KeyGeminiModel, DefaultGeminiModel),
		}
	}

	if s := r.get(KeyMaxTokens); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return nil, Errorf(ECONFIG, "%s must be a positive integer, got %q", KeyMaxTokens, s)
		}
		cfg.MaxTokens = n
	}

	if r.err != nil {
		return nil, r.err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// credentialReader collects lookups and remembers the first hard failure.
// Absent keys read as empty strings so all missing keys are reported at once.
type credentialReader struct {
	ctx context.Context
	src CredentialSource
	err error
}

func (r *credentialReader) get(key string) string {
	if r.err != nil {
		return ""
	}
	v, err := r.src.Lookup(r.ctx, key)
	if err != nil {
		if ErrorCode(err) != ENOTFOUND {
			r.err = err
		}
		return ""
	}
	return strings.TrimSpace(v)
}

func (r *credentialReader) getOr(key, fallback string) string {
	if v := r.get(key); v != "" {
		return v
	}
	return fallback
}
