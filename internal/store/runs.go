// ABOUTME: Generation run log storage operations.
// ABOUTME: One row per executed stage, grouped by a uuid run id.

package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RunLog represents one executed stage
type RunLog struct {
	ID         int64
	RunID      string
	Stage      string
	Seed       int64
	Records    int
	DurationMs int
	Error      string
	StartedAt  time.Time
}

// NewRunID returns a fresh identifier shared by all stages of one invocation
func NewRunID() string {
	return uuid.NewString()
}

// RecordRun inserts a run log entry
func (s *Store) RecordRun(ctx context.Context, run *RunLog) error {
	if run.RunID == "" {
		run.RunID = NewRunID()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO generation_runs (run_id, stage, seed, records, duration_ms, error)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.RunID, run.Stage, run.Seed, run.Records, run.DurationMs, run.Error)
	if err != nil {
		return err
	}
	run.ID, err = res.LastInsertId()
	return err
}

// RunQuery represents filters for run logs
type RunQuery struct {
	Limit       int
	RunID       string
	StagePrefix string
	FailedOnly  bool
}

// GetRuns retrieves run logs, newest first
func (s *Store) GetRuns(ctx context.Context, q *RunQuery) ([]*RunLog, error) {
	query := `SELECT id, run_id, stage, seed, records, duration_ms, COALESCE(error, ''), started_at
	          FROM generation_runs WHERE 1=1`
	args := []any{}

	if q.RunID != "" {
		query += " AND run_id = ?"
		args = append(args, q.RunID)
	}
	if q.StagePrefix != "" {
		query += ` AND stage LIKE ? ESCAPE '\'`
		args = append(args, escapeSQLLike(q.StagePrefix)+"%")
	}
	if q.FailedOnly {
		query += " AND error != ''"
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*RunLog
	for rows.Next() {
		run := &RunLog{}
		if err := rows.Scan(&run.ID, &run.RunID, &run.Stage, &run.Seed, &run.Records,
			&run.DurationMs, &run.Error, &run.StartedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunStats represents aggregate statistics over all recorded runs
type RunStats struct {
	Runs          int
	Stages        int
	Failures      int
	TotalRecords  int
	AvgDurationMs int
}

// GetRunStats returns aggregate statistics
func (s *Store) GetRunStats(ctx context.Context) (*RunStats, error) {
	stats := &RunStats{}
	var avg float64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT run_id), COUNT(*),
		       COALESCE(SUM(CASE WHEN error != '' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(records), 0), COALESCE(AVG(duration_ms), 0)
		FROM generation_runs
	`).Scan(&stats.Runs, &stats.Stages, &stats.Failures, &stats.TotalRecords, &avg)
	if err != nil {
		return nil, err
	}
	stats.AvgDurationMs = int(avg)
	return stats, nil
}
