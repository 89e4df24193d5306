// ABOUTME: Pipeline stage that tops up zendesk_customers.csv.
// ABOUTME: Loads existing rows, appends generated ones and rewrites the file.

package customers

import (
	"context"
	"errors"
	"fmt"

	"github.com/2389/deskgen/internal/dataset"
	"github.com/2389/deskgen/internal/model"
	"github.com/2389/deskgen/internal/pipeline"
)

const StageName = "customers"

func init() {
	pipeline.Register(&stage{})
}

type stage struct{}

func (s *stage) Name() string { return StageName }
func (s *stage) Order() int   { return 10 }

func (s *stage) Run(ctx context.Context, env *pipeline.Env) (pipeline.Result, error) {
	path := env.Paths.Customers()
	existing, err := dataset.ReadOrganizations(path)
	if errors.Is(err, dataset.ErrMissingInput) {
		env.Logger.Info("no existing customer records found, starting fresh", "path", path)
		existing = nil
	} else if err != nil {
		return pipeline.Result{}, err
	}
	env.Logger.Info("loaded existing customers", "count", len(existing))

	if err := ctx.Err(); err != nil {
		return pipeline.Result{}, err
	}

	targets := make(map[model.OrgType]int, len(model.OrgTypes))
	for _, t := range model.OrgTypes {
		targets[t] = env.Config.Target(t)
	}
	gen := NewGenerator(targets, env.Config.Customers.Cap, env.Reference)
	added := gen.Generate(env.For(StageName), existing)

	all := append(existing, added...)
	if err := dataset.WriteOrganizations(path, all); err != nil {
		return pipeline.Result{}, err
	}

	env.Logger.Info("wrote customers", "new", len(added), "total", len(all), "path", path)
	return pipeline.Result{
		Summary: fmt.Sprintf("generated %d new organizations (%d total)", len(added), len(all)),
		Records: map[string]int{"organizations": len(added)},
	}, nil
}
