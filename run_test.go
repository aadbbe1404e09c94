package smartscrape_test

import (
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/smartscrape"
	"github.com/stretchr/testify/assert"
)

func TestNewRun(t *testing.T) {
	t.Parallel()

	req := &smartscrape.ScrapeRequest{Prompt: "Find the company name", SourceURL: "https://example.com"}

	t.Run("records a successful scrape", func(t *testing.T) {
		t.Parallel()

		run := smartscrape.NewRun(req, smartscrape.ScrapeResult{"company": "Acme"}, nil, 2*time.Second)

		assert.Equal(t, smartscrape.RunSucceeded, run.Status)
		assert.Equal(t, "{\n  \"company\": \"Acme\"\n}", run.Result)
		assert.Equal(t, "Find the company name", run.Prompt)
		assert.Equal(t, "https://example.com", run.SourceURL)
		assert.Equal(t, 2*time.Second, run.Duration)
		assert.Empty(t, run.Error)
		assert.NoError(t, run.Validate())
	})

	t.Run("records a failed scrape", func(t *testing.T) {
		t.Parallel()

		run := smartscrape.NewRun(req, nil, errors.New("dial tcp: refused"), time.Second)

		assert.Equal(t, smartscrape.RunFailed, run.Status)
		assert.Equal(t, smartscrape.EINTERNAL, run.ErrorCode)
		assert.Equal(t, "dial tcp: refused", run.Error)
		assert.Empty(t, run.Result)
	})
}

func TestRun_Validate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, smartscrape.EINVALID, smartscrape.ErrorCode((&smartscrape.Run{SourceURL: "u", Status: smartscrape.RunFailed}).Validate()))
	assert.Equal(t, smartscrape.EINVALID, smartscrape.ErrorCode((&smartscrape.Run{Prompt: "p", Status: smartscrape.RunFailed}).Validate()))
	assert.Equal(t, smartscrape.EINVALID, smartscrape.ErrorCode((&smartscrape.Run{Prompt: "p", SourceURL: "u", Status: "odd"}).Validate()))
}
