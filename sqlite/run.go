package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/smartscrape"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ smartscrape.RunService = (*RunService)(nil)

// RunService implements smartscrape.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

const runColumns = "id, prompt, source_url, status, result, error_code, error, duration_ms, created_at"

// CreateRun stores a run, assigning its ID and CreatedAt.
func (s *RunService) CreateRun(ctx context.Context, run *smartscrape.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.CreatedAt = time.Now().UTC().Truncate(time.Second)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (`+runColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Prompt, run.SourceURL, string(run.Status), run.Result, run.ErrorCode, run.Error,
		run.Duration.Milliseconds(), run.CreatedAt.Format(time.RFC3339))

	return err
}

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*smartscrape.Run, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+runColumns+" FROM runs WHERE id = ?", id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, smartscrape.Errorf(smartscrape.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter smartscrape.RunFilter) ([]*smartscrape.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + runColumns + " FROM runs WHERE 1=1")

	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, string(*filter.Status))
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendRunPage(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*smartscrape.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// appendRunPage appends LIMIT and OFFSET clauses. SQLite only accepts
// OFFSET after a LIMIT, so an offset alone uses LIMIT -1.
func appendRunPage(query *strings.Builder, args *[]any, limit, offset int) {
	switch {
	case limit > 0:
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	case offset > 0:
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}

type scanner interface {
	Scan(dest ...any) error
}

// scanRun reads one runs row. Rows with an unknown status, a negative
// duration or a malformed timestamp are reported as EINTERNAL.
func scanRun(sc scanner) (*smartscrape.Run, error) {
	var run smartscrape.Run
	var status, createdAt string
	var durationMS int64

	if err := sc.Scan(&run.ID, &run.Prompt, &run.SourceURL, &status, &run.Result, &run.ErrorCode, &run.Error,
		&durationMS, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if run.Status, err = parseRunStatus(status); err != nil {
		return nil, corruptRun(run.ID, err)
	}
	if run.Duration, err = parseRunDuration(durationMS); err != nil {
		return nil, corruptRun(run.ID, err)
	}
	if run.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, corruptRun(run.ID, fmt.Errorf("created_at: %w", err))
	}
	return &run, nil
}

func parseRunStatus(s string) (smartscrape.RunStatus, error) {
	switch status := smartscrape.RunStatus(s); status {
	case smartscrape.RunSucceeded, smartscrape.RunFailed:
		return status, nil
	default:
		return "", fmt.Errorf("unknown status %q", s)
	}
}

func parseRunDuration(ms int64) (time.Duration, error) {
	if ms < 0 {
		return 0, fmt.Errorf("negative duration_ms %d", ms)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func corruptRun(id string, err error) error {
	return smartscrape.Errorf(smartscrape.EINTERNAL, "corrupt run %s: %v", id, err)
}
