package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/smartscrape"
	"github.com/fwojciec/smartscrape/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want string
	}{
		{"https://acme.com", "acme.com/index.json"},
		{"https://acme.com/", "acme.com/index.json"},
		{"https://acme.com/about/team", "acme.com/about/team.json"},
		{"https://acme.com/about/", "acme.com/about/index.json"},
		{"https://acme.com/contact.html", "acme.com/contact.json"},
		{"https://acme.com:8080/jobs?page=2", "acme.com:8080/jobs.json"},
		{"https://acme.com/team/../careers", "acme.com/careers.json"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()

			got, err := fs.ResultPath(tt.url)

			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}

	t.Run("rejects URLs without host", func(t *testing.T) {
		t.Parallel()

		_, err := fs.ResultPath("/about")

		require.Error(t, err)
		assert.Equal(t, smartscrape.EINVALID, smartscrape.ErrorCode(err))
	})

	for _, rawURL := range []string{
		"https://acme.com/../../../etc/cron.d/x",
		"https://acme.com/../other.com/page",
		"https://../x",
		"https://./x",
	} {
		t.Run("rejects "+rawURL, func(t *testing.T) {
			t.Parallel()

			_, err := fs.ResultPath(rawURL)

			require.Error(t, err)
			assert.Equal(t, smartscrape.EINVALID, smartscrape.ErrorCode(err))
		})
	}
}

func TestResultWriter_WriteResult(t *testing.T) {
	t.Parallel()

	t.Run("writes indented JSON", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewResultWriter(dir)

		path, err := w.WriteResult("https://acme.com/about", smartscrape.ScrapeResult{"company": "Acme"})

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "acme.com", "about.json"), path)
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "{\n  \"company\": \"Acme\"\n}\n", string(content))
	})

	t.Run("replaces previous result and leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewResultWriter(dir)

		_, err := w.WriteResult("https://acme.com", smartscrape.ScrapeResult{"v": 1})
		require.NoError(t, err)
		path, err := w.WriteResult("https://acme.com", smartscrape.ScrapeResult{"v": 2})
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), `"v": 2`)
		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}
