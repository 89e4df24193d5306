// ABOUTME: Stage contract for the generation pipeline.
// ABOUTME: Defines what every stage receives and reports.

package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/2389/deskgen/internal/chance"
	"github.com/2389/deskgen/internal/config"
	"github.com/2389/deskgen/internal/dataset"
	"github.com/2389/deskgen/internal/logging"
	"github.com/2389/deskgen/internal/seed"
)

// Stage is one batch step. Stages read earlier stages' files and write their own.
type Stage interface {
	Name() string
	// Order fixes the position in a full run; lower runs first.
	Order() int
	Run(ctx context.Context, env *Env) (Result, error)
}

// Result represents generation results
type Result struct {
	Summary string         // Human-readable summary
	Records map[string]int // Entity counts: {"tickets": 25000}
}

// Total sums all record counts.
func (r Result) Total() int {
	n := 0
	for _, c := range r.Records {
		n += c
	}
	return n
}

// Env is shared by every stage of one invocation.
type Env struct {
	Config    *config.Config
	Paths     dataset.Paths
	Source    *chance.Source
	Reference time.Time
	Logger    *slog.Logger
	// Rewriter is optional; nil keeps templated descriptions.
	Rewriter seed.Rewriter
	// Recorder is optional; nil disables the run log.
	Recorder logging.Recorder
	RunID    string
}

// NewEnv builds an Env from configuration. The seed is resolved here, so a clock
// seed is picked once per invocation.
func NewEnv(cfg *config.Config, logger *slog.Logger) (*Env, error) {
	ref, err := cfg.Reference()
	if err != nil {
		return nil, err
	}
	seedValue := cfg.ResolveSeed()
	if cfg.Seed == 0 {
		logger.Info("no seed configured, using clock seed", "seed", seedValue)
	}
	return &Env{
		Config:    cfg,
		Paths:     dataset.Paths{Dir: cfg.DataDir},
		Source:    chance.New(seedValue),
		Reference: ref,
		Logger:    logger,
	}, nil
}

// For returns the random source dedicated to one stage.
func (e *Env) For(stage string) *chance.Source {
	return e.Source.Derive(stage)
}
