// ABOUTME: Pipeline stage that writes ticket_metrics.csv.
// ABOUTME: Call transcripts are optional; without them metrics carry no call correlation.

package metrics

import (
	"context"
	"errors"
	"fmt"

	"github.com/2389/deskgen/internal/dataset"
	"github.com/2389/deskgen/internal/model"
	"github.com/2389/deskgen/internal/pipeline"
)

const StageName = "metrics"

func init() {
	pipeline.Register(&stage{})
}

type stage struct{}

func (s *stage) Name() string { return StageName }
func (s *stage) Order() int   { return 50 }

func (s *stage) Run(ctx context.Context, env *pipeline.Env) (pipeline.Result, error) {
	tickets, err := dataset.ReadTickets(env.Paths.Tickets())
	if err != nil {
		return pipeline.Result{}, err
	}
	orgs, err := dataset.ReadOrganizations(env.Paths.Customers())
	if err != nil {
		return pipeline.Result{}, err
	}
	calls, err := dataset.ReadTranscripts(env.Paths.Transcripts())
	switch {
	case errors.Is(err, dataset.ErrMissingInput):
		env.Logger.Info("no call transcripts found, proceeding without call correlation")
	case err != nil:
		return pipeline.Result{}, err
	}
	durations := CallDurations(calls)
	env.Logger.Info("loaded tickets", "tickets", len(tickets), "customers", len(orgs), "tickets_with_calls", len(durations))

	metrics, stats := NewGenerator().Generate(env.For(StageName), tickets, orgs, durations)
	if stats.UnknownCustomers > 0 {
		env.Logger.Warn("tickets reference unknown customers, using defaults", "count", stats.UnknownCustomers)
	}

	if err := dataset.WriteMetrics(env.Paths.Metrics(), metrics); err != nil {
		return pipeline.Result{}, err
	}
	logStatistics(env, tickets, orgs, metrics, durations)

	return pipeline.Result{
		Summary: fmt.Sprintf("generated %d ticket metrics (%d with calls)", len(metrics), stats.WithCalls),
		Records: map[string]int{"ticket_metrics": len(metrics)},
	}, nil
}

func logStatistics(env *pipeline.Env, tickets []model.Ticket, orgs []model.Organization, metrics []model.TicketMetric, calls map[int]int) {
	if len(metrics) == 0 {
		env.Logger.Info("wrote ticket metrics", "count", 0, "path", env.Paths.Metrics())
		return
	}
	orgType := make(map[string]model.OrgType, len(orgs))
	for _, o := range orgs {
		orgType[o.CustomerID] = o.Type
	}
	ticketOrg := make(map[int]model.OrgType, len(tickets))
	for _, t := range tickets {
		ticketOrg[t.TicketID] = orgType[t.CustomerID]
	}

	var solved, resolution, firstResponse, work, reassigned, reopened int
	var callWork, callCount int
	byType := map[model.OrgType][2]int{}
	for _, m := range metrics {
		if m.FullResolutionTime > 0 {
			solved++
			resolution += m.FullResolutionTime
			firstResponse += m.FirstResolutionTime
		}
		work += m.AgentWorkTime
		if m.AssigneeStations > 1 {
			reassigned++
		}
		if m.Reopens > 0 {
			reopened++
		}
		if _, ok := calls[m.TicketID]; ok {
			callWork += m.AgentWorkTime
			callCount++
		}
		agg := byType[ticketOrg[m.TicketID]]
		byType[ticketOrg[m.TicketID]] = [2]int{agg[0] + 1, agg[1] + m.AgentWorkTime}
	}

	n := float64(len(metrics))
	env.Logger.Info("wrote ticket metrics", "count", len(metrics), "path", env.Paths.Metrics(),
		"solved", solved, "open", len(metrics)-solved, "with_calls", callCount,
		"avg_work_min", fmt.Sprintf("%.1f", float64(work)/n),
		"reassigned", reassigned, "reopened", reopened)
	if solved > 0 {
		env.Logger.Info("resolution times",
			"avg_resolution_h", fmt.Sprintf("%.1f", float64(resolution)/float64(solved)),
			"avg_first_response_h", fmt.Sprintf("%.1f", float64(firstResponse)/float64(solved)))
	}
	if callCount > 0 && callCount < len(metrics) {
		env.Logger.Info("call correlation",
			"call_work_min", fmt.Sprintf("%.1f", float64(callWork)/float64(callCount)),
			"no_call_work_min", fmt.Sprintf("%.1f", float64(work-callWork)/float64(len(metrics)-callCount)))
	}
	for t, agg := range byType {
		env.Logger.Debug("work time by organization type", "type", string(t),
			"tickets", agg[0], "avg_work_min", fmt.Sprintf("%.1f", float64(agg[1])/float64(agg[0])))
	}
}
