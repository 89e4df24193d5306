// ABOUTME: Stage execution logging.
// ABOUTME: Captures stage name, record count, duration and error, and stores a run entry.

package logging

import (
	"context"
	"log/slog"
	"time"

	"github.com/2389/deskgen/internal/store"
)

// Recorder persists run entries. *store.Store satisfies it.
type Recorder interface {
	RecordRun(ctx context.Context, run *store.RunLog) error
}

// StageFunc runs one stage and reports how many records it produced.
type StageFunc func(ctx context.Context) (int, error)

// Stage wraps fn so every execution is logged and, when rec is non-nil, stored under
// runID. A failing recorder is logged and never fails the stage.
func Stage(logger *slog.Logger, rec Recorder, runID, name string, seed int64, fn StageFunc) StageFunc {
	return func(ctx context.Context) (int, error) {
		logger.Info("stage started", "stage", name)
		start := time.Now()

		records, err := fn(ctx)
		duration := time.Since(start)

		if err != nil {
			logger.Error("stage failed", "stage", name, "duration", duration, "error", err)
		} else {
			logger.Info("stage finished", "stage", name, "records", records, "duration", duration)
		}

		if rec != nil {
			run := &store.RunLog{
				RunID:      runID,
				Stage:      name,
				Seed:       seed,
				Records:    records,
				DurationMs: int(duration.Milliseconds()),
			}
			if err != nil {
				run.Error = err.Error()
			}
			if recErr := rec.RecordRun(ctx, run); recErr != nil {
				logger.Warn("failed to record run", "stage", name, "error", recErr)
			}
		}
		return records, err
	}
}
