package smartscrape

import "strings"

// ScrapeRequest is a single extraction request collected from the user.
type ScrapeRequest struct {
	Prompt    string `json:"prompt"`
	SourceURL string `json:"url"`
}

// NewScrapeRequest trims the user input and returns a validated request.
func NewScrapeRequest(prompt, sourceURL string) (*ScrapeRequest, error) {
	req := &ScrapeRequest{
		Prompt:    strings.TrimSpace(prompt),
		SourceURL: strings.TrimSpace(sourceURL),
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// Validate returns an error if the request contains blank fields.
// The prompt is checked before the URL.
func (r *ScrapeRequest) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return Errorf(EINVALID, "prompt required")
	}
	if strings.TrimSpace(r.SourceURL) == "" {
		return Errorf(EINVALID, "source URL required")
	}
	return nil
}
