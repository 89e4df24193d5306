// ABOUTME: Sequential execution of selected stages.
// ABOUTME: Each stage runs to completion before the next one reads its output.

package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/2389/deskgen/internal/logging"
)

// Outcome pairs a stage with what it produced.
type Outcome struct {
	Stage  string
	Result Result
}

// Select resolves stage names to stages in run order. No names means every stage.
func Select(names ...string) ([]Stage, error) {
	if len(names) == 0 {
		return All(), nil
	}
	seen := make(map[string]bool, len(names))
	stages := make([]Stage, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		s, ok := Get(name)
		if !ok {
			return nil, fmt.Errorf("stage %q not found (available: %s)", name, strings.Join(Names(), ", "))
		}
		seen[name] = true
		stages = append(stages, s)
	}
	sortStages(stages)
	return stages, nil
}

// Run executes stages in order and stops at the first failure. Outcomes of the
// stages that completed are returned alongside the error.
func Run(ctx context.Context, env *Env, stages []Stage) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(stages))
	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}

		var result Result
		fn := logging.Stage(env.Logger, env.Recorder, env.RunID, s.Name(), env.Source.Seed(),
			func(ctx context.Context) (int, error) {
				var err error
				result, err = s.Run(ctx, env)
				return result.Total(), err
			})
		if _, err := fn(ctx); err != nil {
			return outcomes, fmt.Errorf("%s stage: %w", s.Name(), err)
		}
		if result.Summary != "" {
			env.Logger.Info(result.Summary, "stage", s.Name())
		}
		outcomes = append(outcomes, Outcome{Stage: s.Name(), Result: result})
	}
	return outcomes, nil
}
