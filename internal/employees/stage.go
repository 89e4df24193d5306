// ABOUTME: Pipeline stage that writes zendesk_employees.csv.
// ABOUTME: Regenerates the roster for every organization in the customers file.

package employees

import (
	"context"
	"fmt"

	"github.com/2389/deskgen/internal/dataset"
	"github.com/2389/deskgen/internal/pipeline"
)

const StageName = "employees"

func init() {
	pipeline.Register(&stage{})
}

type stage struct{}

func (s *stage) Name() string { return StageName }
func (s *stage) Order() int   { return 20 }

func (s *stage) Run(ctx context.Context, env *pipeline.Env) (pipeline.Result, error) {
	orgs, err := dataset.ReadOrganizations(env.Paths.Customers())
	if err != nil {
		return pipeline.Result{}, err
	}
	env.Logger.Info("loaded customers", "count", len(orgs))
	if err := ctx.Err(); err != nil {
		return pipeline.Result{}, err
	}

	emps := NewGenerator(env.Reference).Generate(env.For(StageName), orgs)
	if err := dataset.WriteEmployees(env.Paths.Employees(), emps); err != nil {
		return pipeline.Result{}, err
	}

	primaries := 0
	for _, e := range emps {
		if e.IsPrimaryContact {
			primaries++
		}
	}
	avg := 0.0
	if len(orgs) > 0 {
		avg = float64(len(emps)) / float64(len(orgs))
	}
	env.Logger.Info("wrote employees", "count", len(emps), "primary_contacts", primaries,
		"per_customer", fmt.Sprintf("%.1f", avg), "path", env.Paths.Employees())

	return pipeline.Result{
		Summary: fmt.Sprintf("generated %d employees for %d organizations", len(emps), len(orgs)),
		Records: map[string]int{"employees": len(emps)},
	}, nil
}
