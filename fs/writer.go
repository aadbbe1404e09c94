// Package fs saves scrape results to disk.
package fs

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/smartscrape"
)

// ResultPath converts a page URL to a relative file path for its result.
// Example: https://acme.com/about/team → acme.com/about/team.json
func ResultPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", smartscrape.Errorf(smartscrape.EINVALID, "invalid URL %q", rawURL)
	}
	if u.Host == "" {
		return "", smartscrape.Errorf(smartscrape.EINVALID, "URL %q has no host", rawURL)
	}
	if u.Host == "." || u.Host == ".." || strings.ContainsAny(u.Host, `/\`) {
		return "", smartscrape.Errorf(smartscrape.EINVALID, "URL %q has an invalid host", rawURL)
	}

	path := strings.TrimPrefix(u.Path, "/")

	// Root or trailing slash → index.json
	if path == "" || strings.HasSuffix(path, "/") {
		path += "index"
	}
	path = strings.TrimSuffix(path, filepath.Ext(path))

	rel := filepath.Join(u.Host, filepath.FromSlash(path)+".json")
	if !filepath.IsLocal(rel) || !strings.HasPrefix(rel, u.Host+string(filepath.Separator)) {
		return "", smartscrape.Errorf(smartscrape.EINVALID, "URL %q escapes its host directory", rawURL)
	}
	return rel, nil
}

// ResultWriter writes scrape results as JSON files below a base directory.
type ResultWriter struct {
	baseDir string
}

// NewResultWriter creates a new ResultWriter that writes to baseDir.
func NewResultWriter(baseDir string) *ResultWriter {
	return &ResultWriter{baseDir: baseDir}
}

// WriteResult writes result for sourceURL and returns the file path.
// The file is replaced atomically so readers never see a partial result.
func (w *ResultWriter) WriteResult(sourceURL string, result smartscrape.ScrapeResult) (string, error) {
	relPath, err := ResultPath(sourceURL)
	if err != nil {
		return "", err
	}

	body, err := smartscrape.FormatJSON(result)
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.baseDir, relPath)
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".result-*.tmp")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(body + "\n"); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return "", err
	}
	return fullPath, nil
}
