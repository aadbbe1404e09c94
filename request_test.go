package smartscrape_test

import (
	"testing"

	"github.com/fwojciec/smartscrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScrapeRequest(t *testing.T) {
	t.Parallel()

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		t.Parallel()

		req, err := smartscrape.NewScrapeRequest("  Find the company name\n", "\thttps://example.com ")

		require.NoError(t, err)
		assert.Equal(t, "Find the company name", req.Prompt)
		assert.Equal(t, "https://example.com", req.SourceURL)
	})

	for _, prompt := range []string{"", " ", "\t\n", "   \r\n  "} {
		t.Run("rejects blank prompt "+quote(prompt), func(t *testing.T) {
			t.Parallel()

			_, err := smartscrape.NewScrapeRequest(prompt, "https://example.com")

			require.Error(t, err)
			assert.Equal(t, smartscrape.EINVALID, smartscrape.ErrorCode(err))
			assert.Equal(t, "prompt required", smartscrape.ErrorMessage(err))
		})
	}

	for _, url := range []string{"", " ", "\t\n"} {
		t.Run("rejects blank URL "+quote(url), func(t *testing.T) {
			t.Parallel()

			_, err := smartscrape.NewScrapeRequest("Find the company name", url)

			require.Error(t, err)
			assert.Equal(t, smartscrape.EINVALID, smartscrape.ErrorCode(err))
			assert.Equal(t, "source URL required", smartscrape.ErrorMessage(err))
		})
	}

	t.Run("reports prompt before URL when both blank", func(t *testing.T) {
		t.Parallel()

		_, err := smartscrape.NewScrapeRequest(" ", " ")

		assert.Equal(t, "prompt required", smartscrape.ErrorMessage(err))
	})
}

func quote(s string) string {
	return "[" + s + "]"
}
