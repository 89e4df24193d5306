// ABOUTME: Pipeline stage that writes zendesk_tickets.csv.
// ABOUTME: Optionally rewrites templated descriptions through the configured rewriter.

package tickets

import (
	"context"
	"fmt"

	"github.com/2389/deskgen/internal/dataset"
	"github.com/2389/deskgen/internal/model"
	"github.com/2389/deskgen/internal/pipeline"
	"github.com/2389/deskgen/internal/seed"
)

const StageName = "tickets"

func init() {
	pipeline.Register(&stage{})
}

type stage struct{}

func (s *stage) Name() string { return StageName }
func (s *stage) Order() int   { return 30 }

func (s *stage) Run(ctx context.Context, env *pipeline.Env) (pipeline.Result, error) {
	orgs, err := dataset.ReadOrganizations(env.Paths.Customers())
	if err != nil {
		return pipeline.Result{}, err
	}
	emps, err := dataset.ReadEmployees(env.Paths.Employees())
	if err != nil {
		return pipeline.Result{}, err
	}
	env.Logger.Info("loaded customers and employees", "customers", len(orgs), "employees", len(emps))

	tickets, stats := NewGenerator(env.Reference).Generate(env.For(StageName), orgs, emps)
	for _, id := range stats.Skipped {
		env.Logger.Warn("no employees found for customer, skipping", "customer_id", id)
	}
	if stats.Fallbacks > 0 {
		env.Logger.Warn("descriptions fell back to the generic sentence", "count", stats.Fallbacks)
	}

	if env.Rewriter != nil {
		if err := rewrite(ctx, env.Rewriter, orgs, tickets); err != nil {
			return pipeline.Result{}, err
		}
		env.Logger.Info("rewrote ticket descriptions", "count", len(tickets))
	}

	if err := dataset.WriteTickets(env.Paths.Tickets(), tickets); err != nil {
		return pipeline.Result{}, err
	}
	logDistribution(env, tickets)

	return pipeline.Result{
		Summary: fmt.Sprintf("generated %d tickets for %d organizations", len(tickets), len(orgs)-len(stats.Skipped)),
		Records: map[string]int{"tickets": len(tickets)},
	}, nil
}

// rewrite replaces descriptions in place. The rewriter keeps the templated text for
// anything it cannot rewrite, so only cancellation surfaces as an error.
func rewrite(ctx context.Context, rw seed.Rewriter, orgs []model.Organization, tickets []model.Ticket) error {
	orgType := make(map[string]model.OrgType, len(orgs))
	for _, o := range orgs {
		orgType[o.CustomerID] = o.Type
	}
	reqs := make([]seed.DescriptionRequest, len(tickets))
	for i, t := range tickets {
		reqs[i] = seed.DescriptionRequest{
			Category: string(t.Category),
			OrgType:  string(orgType[t.CustomerID]),
			Priority: string(t.Priority),
			Text:     t.Description,
		}
	}
	out, err := rw.RewriteDescriptions(ctx, reqs)
	if err != nil {
		return err
	}
	for i := range tickets {
		if i < len(out) && out[i] != "" {
			tickets[i].Description = out[i]
		}
	}
	return nil
}

func logDistribution(env *pipeline.Env, tickets []model.Ticket) {
	statuses := map[model.Status]int{}
	priorities := map[model.Priority]int{}
	for _, t := range tickets {
		statuses[t.Status]++
		priorities[t.Priority]++
	}
	env.Logger.Info("wrote tickets", "count", len(tickets), "path", env.Paths.Tickets(),
		"statuses", fmt.Sprint(statuses), "priorities", fmt.Sprint(priorities))
}
