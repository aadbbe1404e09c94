// Package graph implements the smart scraper pipeline: fetch a page, reduce
// it to Markdown, and ask a chat model to answer a prompt about it as JSON.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/smartscrape"
)

// Deps holds the collaborators a SmartScraperGraph runs with.
type Deps struct {
	// Fetcher retrieves static HTML.
	Fetcher smartscrape.Fetcher

	// JSFetcher renders pages in a browser. Optional.
	JSFetcher smartscrape.Fetcher

	// Prober decides whether static HTML needs rendering. Optional.
	Prober smartscrape.Prober

	// Extractors are tried in order; the raw HTML is used when all fail.
	Extractors []smartscrape.Extractor

	Converter smartscrape.Converter
	LLMs      smartscrape.LLMFactory
}

// SmartScraperGraph answers one prompt about one page.
type SmartScraperGraph struct {
	Prompt string
	Source string
	Config *smartscrape.ModelConfig

	deps Deps
}

// New creates a graph for prompt and source using the given model config.
func New(prompt, source string, cfg *smartscrape.ModelConfig, deps Deps) *SmartScraperGraph {
	return &SmartScraperGraph{
		Prompt: prompt,
		Source: source,
		Config: cfg,
		deps:   deps,
	}
}

// Run executes the pipeline once. Collaborator errors are wrapped with
// context but keep their codes.
func (g *SmartScraperGraph) Run(ctx context.Context) (smartscrape.ScrapeResult, error) {
	html, err := g.fetch(ctx)
	if err != nil {
		return nil, err
	}

	page, content := g.extract(html)

	page.Markdown, err = g.deps.Converter.Convert(content, g.Source)
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", g.Source, err)
	}

	llm, err := g.deps.LLMs.NewLLM(ctx, g.Config)
	if err != nil {
		return nil, err
	}

	reply, err := llm.Complete(ctx, &smartscrape.Completion{
		System: SystemPrompt(),
		User:   BuildUserPrompt(g.Prompt, g.Source, page, g.Config.MaxTokens),
		JSON:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("completion: %w", err)
	}

	return ParseResult(reply)
}

// fetch retrieves the page, switching to the JS fetcher when the static
// fetch fails or the prober reports a client-rendered shell.
func (g *SmartScraperGraph) fetch(ctx context.Context) (string, error) {
	html, err := g.deps.Fetcher.Fetch(ctx, g.Source)
	if err != nil {
		if g.deps.JSFetcher == nil || ctx.Err() != nil {
			return "", fmt.Errorf("fetching %s: %w", g.Source, err)
		}
		rendered, jsErr := g.deps.JSFetcher.Fetch(ctx, g.Source)
		if jsErr != nil {
			return "", fmt.Errorf("rendering %s: %w", g.Source, jsErr)
		}
		return rendered, nil
	}

	if g.deps.JSFetcher == nil || g.deps.Prober == nil || !g.deps.Prober.RequiresJS(html) {
		return html, nil
	}

	rendered, err := g.deps.JSFetcher.Fetch(ctx, g.Source)
	if err != nil {
		// The static shell is kept unless the context is gone.
		if ctx.Err() != nil {
			return "", fmt.Errorf("rendering %s: %w", g.Source, err)
		}
		return html, nil
	}
	return rendered, nil
}

// extract returns the page metadata and the best content HTML available.
// Metadata fields are taken from the first extractor that reports them.
func (g *SmartScraperGraph) extract(html string) (page Page, content string) {
	for _, e := range g.deps.Extractors {
		res, err := e.Extract(html, g.Source)
		if err != nil || res == nil {
			continue
		}
		if page.Title == "" {
			page.Title = res.Title
		}
		if page.Description == "" {
			page.Description = res.Description
		}
		if page.Contacts == nil {
			page.Contacts = res.Contacts
		}
		if strings.TrimSpace(res.ContentHTML) != "" {
			return page, res.ContentHTML
		}
	}
	return page, html
}

// ParseResult decodes a model reply into a ScrapeResult. A surrounding
// Markdown code fence is ignored and non-object values are wrapped under
// the "content" key.
func ParseResult(reply string) (smartscrape.ScrapeResult, error) {
	body := stripFence(reply)
	if body == "" {
		return nil, smartscrape.Errorf(smartscrape.EDEPENDENCY, "model returned an empty reply")
	}

	var v any
	if err := json.Unmarshal([]byte(body), &v); err != nil {
		return nil, smartscrape.Errorf(smartscrape.EDEPENDENCY, "model returned invalid JSON: %v", err)
	}

	if obj, ok := v.(map[string]any); ok {
		return smartscrape.ScrapeResult(obj), nil
	}
	return smartscrape.ScrapeResult{"content": v}, nil
}

func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
