package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/smartscrape"
	"github.com/fwojciec/smartscrape/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRun(url string, err error) *smartscrape.Run {
	req := &smartscrape.ScrapeRequest{Prompt: "what does the company do?", SourceURL: url}
	return smartscrape.NewRun(req, smartscrape.ScrapeResult{"company": "Acme"}, err, 1500*time.Millisecond)
}

func TestRunService_CreateRun(t *testing.T) {
	t.Parallel()

	t.Run("assigns ID and timestamp", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))
		run := newRun("https://acme.com", nil)

		err := svc.CreateRun(context.Background(), run)

		require.NoError(t, err)
		assert.NotEmpty(t, run.ID)
		assert.False(t, run.CreatedAt.IsZero())
	})

	t.Run("rejects invalid run", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))

		err := svc.CreateRun(context.Background(), &smartscrape.Run{})

		require.Error(t, err)
		assert.Equal(t, smartscrape.EINVALID, smartscrape.ErrorCode(err))
	})
}

func TestRunService_FindRunByID(t *testing.T) {
	t.Parallel()

	t.Run("round-trips a successful run", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))
		ctx := context.Background()
		run := newRun("https://acme.com", nil)
		require.NoError(t, svc.CreateRun(ctx, run))

		got, err := svc.FindRunByID(ctx, run.ID)

		require.NoError(t, err)
		assert.Equal(t, run.Prompt, got.Prompt)
		assert.Equal(t, "https://acme.com", got.SourceURL)
		assert.Equal(t, smartscrape.RunSucceeded, got.Status)
		assert.JSONEq(t, `{"company":"Acme"}`, got.Result)
		assert.Equal(t, 1500*time.Millisecond, got.Duration)
		assert.True(t, run.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("keeps failure details", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))
		ctx := context.Background()
		run := newRun("https://acme.com", smartscrape.Errorf(smartscrape.EMISSINGCRED, "missing credentials: AZURE_OPENAI_API_KEY"))
		require.NoError(t, svc.CreateRun(ctx, run))

		got, err := svc.FindRunByID(ctx, run.ID)

		require.NoError(t, err)
		assert.Equal(t, smartscrape.RunFailed, got.Status)
		assert.Equal(t, smartscrape.EMISSINGCRED, got.ErrorCode)
		assert.Contains(t, got.Error, "AZURE_OPENAI_API_KEY")
		assert.Empty(t, got.Result)
	})

	t.Run("returns ENOTFOUND for unknown ID", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(setupTestDB(t))

		_, err := svc.FindRunByID(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, smartscrape.ENOTFOUND, smartscrape.ErrorCode(err))
	})
}

func TestRunService_FindRuns(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) *sqlite.RunService {
		t.Helper()
		svc := sqlite.NewRunService(setupTestDB(t))
		ctx := context.Background()
		require.NoError(t, svc.CreateRun(ctx, newRun("https://acme.com", nil)))
		require.NoError(t, svc.CreateRun(ctx, newRun("https://globex.com", errors.New("boom"))))
		require.NoError(t, svc.CreateRun(ctx, newRun("https://acme.com/about", nil)))
		return svc
	}

	t.Run("returns newest first", func(t *testing.T) {
		t.Parallel()

		runs, err := setup(t).FindRuns(context.Background(), smartscrape.RunFilter{})

		require.NoError(t, err)
		require.Len(t, runs, 3)
		assert.Equal(t, "https://acme.com/about", runs[0].SourceURL)
		assert.Equal(t, "https://acme.com", runs[2].SourceURL)
	})

	t.Run("filters by source URL", func(t *testing.T) {
		t.Parallel()

		url := "https://globex.com"
		runs, err := setup(t).FindRuns(context.Background(), smartscrape.RunFilter{SourceURL: &url})

		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, smartscrape.EINTERNAL, runs[0].ErrorCode)
	})

	t.Run("filters by status", func(t *testing.T) {
		t.Parallel()

		status := smartscrape.RunSucceeded
		runs, err := setup(t).FindRuns(context.Background(), smartscrape.RunFilter{Status: &status})

		require.NoError(t, err)
		assert.Len(t, runs, 2)
	})

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		runs, err := setup(t).FindRuns(context.Background(), smartscrape.RunFilter{Limit: 1, Offset: 1})

		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, "https://globex.com", runs[0].SourceURL)
	})

	t.Run("offsets without a limit", func(t *testing.T) {
		t.Parallel()

		runs, err := setup(t).FindRuns(context.Background(), smartscrape.RunFilter{Offset: 1})

		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, "https://globex.com", runs[0].SourceURL)
	})
}

func TestRunService_CorruptRows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    string
		duration  int64
		createdAt string
	}{
		{"unknown status", "pending", 10, "2026-01-02T03:04:05Z"},
		{"negative duration", "succeeded", -1, "2026-01-02T03:04:05Z"},
		{"malformed timestamp", "failed", 10, "yesterday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db := setupTestDB(t)
			ctx := context.Background()
			_, err := db.ExecContext(ctx, `
				INSERT INTO runs (id, prompt, source_url, status, result, error_code, error, duration_ms, created_at)
				VALUES ('bad', 'p', 'https://acme.com', ?, '', '', '', ?, ?)
			`, tt.status, tt.duration, tt.createdAt)
			require.NoError(t, err)

			_, err = sqlite.NewRunService(db).FindRunByID(ctx, "bad")

			require.Error(t, err)
			assert.Equal(t, smartscrape.EINTERNAL, smartscrape.ErrorCode(err))
			assert.Contains(t, smartscrape.ErrorMessage(err), "corrupt run bad")
		})
	}
}
