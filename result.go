package smartscrape

import (
	"bytes"
	"encoding/json"
)

// ScrapeResult is the structured data extracted from a page. Its shape is
// decided by the model's answer to the prompt; there is no fixed schema.
type ScrapeResult map[string]any

// FormatJSON renders a result as indented JSON for display.
// A nil result renders as an empty object.
func FormatJSON(result ScrapeResult) (string, error) {
	if result == nil {
		result = ScrapeResult{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
