// ABOUTME: Pipeline stage that writes call_transcripts.csv.
// ABOUTME: Reads tickets with their customers and requesters and logs call statistics.

package calls

import (
	"context"
	"fmt"

	"github.com/2389/deskgen/internal/dataset"
	"github.com/2389/deskgen/internal/model"
	"github.com/2389/deskgen/internal/pipeline"
)

const StageName = "calls"

func init() {
	pipeline.Register(&stage{})
}

type stage struct{}

func (s *stage) Name() string { return StageName }
func (s *stage) Order() int   { return 40 }

func (s *stage) Run(ctx context.Context, env *pipeline.Env) (pipeline.Result, error) {
	tickets, err := dataset.ReadTickets(env.Paths.Tickets())
	if err != nil {
		return pipeline.Result{}, err
	}
	orgs, err := dataset.ReadOrganizations(env.Paths.Customers())
	if err != nil {
		return pipeline.Result{}, err
	}
	emps, err := dataset.ReadEmployees(env.Paths.Employees())
	if err != nil {
		return pipeline.Result{}, err
	}
	env.Logger.Info("loaded tickets", "tickets", len(tickets), "customers", len(orgs), "employees", len(emps))

	calls, stats := NewGenerator().Generate(env.For(StageName), tickets, orgs, emps)
	if len(stats.Orphans) > 0 {
		env.Logger.Warn("tickets reference unknown customers or employees, skipping",
			"count", len(stats.Orphans), "first", stats.Orphans[0])
	}
	env.Logger.Info("selected tickets for call transcripts", "selected", len(calls), "considered", stats.Considered)

	if err := dataset.WriteTranscripts(env.Paths.Transcripts(), calls); err != nil {
		return pipeline.Result{}, err
	}
	logStatistics(env, calls)

	return pipeline.Result{
		Summary: fmt.Sprintf("generated %d call transcripts from %d tickets", len(calls), len(tickets)),
		Records: map[string]int{"call_transcripts": len(calls)},
	}, nil
}

func logStatistics(env *pipeline.Env, calls []model.CallTranscript) {
	if len(calls) == 0 {
		env.Logger.Info("wrote call transcripts", "count", 0, "path", env.Paths.Transcripts())
		return
	}
	satisfaction := map[int]int{}
	agents := map[string]int{}
	var seconds, chars, resolved, followUps int
	for _, c := range calls {
		satisfaction[c.CustomerSatisfaction]++
		agents[c.AgentName]++
		seconds += c.CallDuration
		chars += len(c.Text)
		if c.ResolutionProvided {
			resolved++
		}
		if c.FollowUpNeeded {
			followUps++
		}
	}
	n := float64(len(calls))
	env.Logger.Info("wrote call transcripts", "count", len(calls), "path", env.Paths.Transcripts(),
		"satisfaction", fmt.Sprint(satisfaction),
		"agents", len(agents),
		"avg_duration_s", int(float64(seconds)/n),
		"avg_length", int(float64(chars)/n),
		"resolution_rate", fmt.Sprintf("%.1f%%", float64(resolved)/n*100),
		"follow_up_rate", fmt.Sprintf("%.1f%%", float64(followUps)/n*100))
}
