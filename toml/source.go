// Package toml provides a smartscrape.CredentialSource backed by a
// secrets.toml file in the layout used by Streamlit's st.secrets.
package toml

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/smartscrape"
	gotoml "github.com/pelletier/go-toml/v2"
)

// DefaultPath is where Streamlit apps keep their secrets.
const DefaultPath = ".streamlit/secrets.toml"

// Ensure Source implements smartscrape.CredentialSource at compile time.
var _ smartscrape.CredentialSource = (*Source)(nil)

// Source looks up credentials in a secrets file.
//
// Top-level keys are used verbatim. Keys inside tables are flattened to
// upper case joined by underscores, so
//
//	[azure_openai]
//	api_key = "..."
//
// is found under AZURE_OPENAI_API_KEY. A top-level key wins over a
// flattened one with the same name.
type Source struct {
	path string
}

// NewSource creates a Source reading the file at path.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Path returns the secrets file path.
func (s *Source) Path() string {
	return s.path
}

// Lookup reads the secrets file and returns the value stored under key.
// The file is read on every call so edits take effect on the next trigger.
func (s *Source) Lookup(_ context.Context, key string) (string, error) {
	secrets, err := s.read()
	if err != nil {
		return "", err
	}
	v, ok := secrets[key]
	if !ok {
		return "", smartscrape.Errorf(smartscrape.ENOTFOUND, "secret %q not found in %s", key, s.path)
	}
	return v, nil
}

// read parses the secrets file into a flat key/value map.
func (s *Source) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading secrets file: %w", err)
	}

	var doc map[string]any
	if err := gotoml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing secrets file %s: %w", s.path, err)
	}

	flat := make(map[string]string)
	for k, v := range doc {
		if _, ok := v.(map[string]any); ok {
			continue
		}
		flat[k] = stringify(v)
	}
	for k, v := range doc {
		if table, ok := v.(map[string]any); ok {
			flatten(flat, k, table)
		}
	}
	return flat, nil
}

func flatten(dst map[string]string, prefix string, table map[string]any) {
	for k, v := range table {
		key := strings.ToUpper(prefix + "_" + k)
		if sub, ok := v.(map[string]any); ok {
			flatten(dst, key, sub)
			continue
		}
		if _, exists := dst[key]; !exists {
			dst[key] = stringify(v)
		}
	}
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
