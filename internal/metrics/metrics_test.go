// ABOUTME: Tests for ticket metric derivation and the metrics stage.
// ABOUTME: Checks timestamp clamping, resolution bands and call correlation.

package metrics

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/deskgen/internal/chance"
	"github.com/2389/deskgen/internal/classify"
	"github.com/2389/deskgen/internal/config"
	"github.com/2389/deskgen/internal/dataset"
	"github.com/2389/deskgen/internal/model"
	"github.com/2389/deskgen/internal/pipeline"
)

var created = time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)

func fixture() ([]model.Ticket, []model.Organization) {
	orgs := []model.Organization{
		{CustomerID: "ZENDESK0001", Type: model.OrgFaith, Size: model.SizeLarge, Tier: model.TierPremium},
		{CustomerID: "ZENDESK0002", Type: model.OrgCommunityEd, Size: model.SizeSmall, Tier: model.TierBasic},
	}
	statuses := []model.Status{model.StatusNew, model.StatusOpen, model.StatusPending, model.StatusHold, model.StatusSolved, model.StatusClosed}
	priorities := []model.Priority{model.PriorityLow, model.PriorityNormal, model.PriorityHigh, model.PriorityUrgent}
	ratings := []model.Satisfaction{model.SatisfactionGood, model.SatisfactionBad, model.SatisfactionNone}

	var tickets []model.Ticket
	for i := 0; i < 60; i++ {
		tk := model.Ticket{
			TicketID:    i + 1,
			CustomerID:  orgs[i%2].CustomerID,
			Description: "QuickBooks sync failed again",
			Status:      statuses[i%len(statuses)],
			Priority:    priorities[i%len(priorities)],
			CreatedAt:   created.Add(time.Duration(i) * time.Hour),
		}
		// some windows are shorter than an hour
		span := time.Duration(i%5) * 13 * time.Hour
		if i%7 == 0 {
			span = 20 * time.Minute
		}
		tk.UpdatedAt = tk.CreatedAt.Add(span)
		if tk.Status.Resolved() {
			tk.SolvedAt = tk.UpdatedAt
			tk.Satisfaction = ratings[i%len(ratings)]
		}
		tickets = append(tickets, tk)
	}
	return tickets, orgs
}

func TestGenerateKeepsTimestampsInWindow(t *testing.T) {
	tickets, orgs := fixture()
	calls := map[int]int{5: 300, 6: 1900, 11: 3600, 12: 600}
	metrics, stats := NewGenerator().Generate(chance.New(3), tickets, orgs, calls)
	require.Len(t, metrics, len(tickets))
	assert.Equal(t, 4, stats.WithCalls)
	assert.Zero(t, stats.UnknownCustomers)

	for i, m := range metrics {
		tk := tickets[i]
		assert.Equal(t, tk.TicketID, m.MetricID)
		assert.Equal(t, tk.TicketID, m.TicketID)

		end := tk.WindowEnd()
		for name, ts := range map[string]time.Time{
			"initially_assigned_at": m.InitiallyAssignedAt,
			"assigned_at":           m.AssignedAt,
			"assignee_updated_at":   m.AssigneeUpdatedAt,
			"requester_updated_at":  m.RequesterUpdatedAt,
			"status_updated_at":     m.StatusUpdatedAt,
		} {
			assert.False(t, ts.Before(tk.CreatedAt), "ticket %d %s before created", tk.TicketID, name)
			assert.False(t, ts.After(end), "ticket %d %s after window", tk.TicketID, name)
		}
		assert.False(t, m.AssignedAt.Before(m.InitiallyAssignedAt))
		assert.False(t, m.AssigneeUpdatedAt.Before(m.AssignedAt))

		assert.Contains(t, []int{1, 2}, m.AssigneeStations)
		assert.Contains(t, []int{1, 2, 3}, m.GroupStations)
		assert.GreaterOrEqual(t, m.ReplyTime, 1)
		assert.GreaterOrEqual(t, m.RequesterWaitTime, 1)
		assert.GreaterOrEqual(t, m.Replies, m.Reopens)

		if tk.Status.Resolved() {
			assert.Equal(t, tk.SolvedAt, m.SolvedAt)
			assert.Equal(t, tk.SolvedAt, m.StatusUpdatedAt)
			assert.GreaterOrEqual(t, m.FullResolutionTime, 1)
			assert.GreaterOrEqual(t, m.FirstResolutionTime, 1)
		} else {
			assert.True(t, m.SolvedAt.IsZero())
			assert.Zero(t, m.FullResolutionTime)
			assert.Zero(t, m.Reopens)
		}
		if tk.Status == model.StatusNew {
			assert.Zero(t, m.FirstResolutionTime)
		}
	}
}

func TestUnknownCustomerUsesDefaults(t *testing.T) {
	tickets := []model.Ticket{{TicketID: 1, CustomerID: "ZENDESK0404", Status: model.StatusOpen,
		Priority: model.PriorityNormal, CreatedAt: created, UpdatedAt: created.Add(5 * time.Hour)}}
	metrics, stats := NewGenerator().Generate(chance.New(1), tickets, nil, nil)
	require.Len(t, metrics, 1)
	assert.Equal(t, 1, stats.UnknownCustomers)
}

func TestBand(t *testing.T) {
	tb := DefaultTables()
	tests := []struct {
		minutes int
		max     int
	}{
		{2, 5}, {5, 5}, {6, 15}, {15, 15}, {29, 30}, {45, 45}, {60, 0},
	}
	for _, tt := range tests {
		b := tb.band(tt.minutes)
		if tt.max == 0 {
			assert.Equal(t, tb.Bands[len(tb.Bands)-1], b)
			continue
		}
		assert.Equal(t, tt.max, b.MaxMinutes)
	}
}

func TestFullResolutionFollowsCallBand(t *testing.T) {
	g := NewGenerator()
	src := chance.New(7)
	tk := model.Ticket{Status: model.StatusSolved, CreatedAt: created, SolvedAt: created.Add(500 * time.Hour)}

	// no call: the raw solve window
	assert.Equal(t, 500, g.fullResolution(src, tk, false, 0))

	short := g.Tables.Bands[0]
	for i := 0; i < 200; i++ {
		h := g.fullResolution(src, tk, true, 4*60)
		inQuick := float64(h) >= short.Quick.Lo-1 && float64(h) <= short.Quick.Hi
		inFollowUp := float64(h) >= short.FollowUp.Lo-1 && float64(h) <= short.FollowUp.Hi
		require.True(t, inQuick || inFollowUp, "%d hours", h)
	}

	tk.Satisfaction = model.SatisfactionBad
	long := g.Tables.Bands[len(g.Tables.Bands)-1]
	for i := 0; i < 200; i++ {
		h := g.fullResolution(src, tk, true, 3600)
		require.GreaterOrEqual(t, float64(h), long.Quick.Lo*1.5-1)
		require.LessOrEqual(t, float64(h), long.FollowUp.Hi*2.5)
	}
}

func TestWorkTimeFactors(t *testing.T) {
	g := NewGenerator()
	tk := model.Ticket{Priority: model.PriorityUrgent, Satisfaction: model.SatisfactionBad, Status: model.StatusSolved,
		Description: "Webhook integration broken"}
	big := model.Organization{Size: model.SizeLarge, Tier: model.TierPremium}

	src := chance.New(4)
	hi := 120 * 1.2 * 1.15 * 1.3 * 1.4 * 1.15 * 1.5
	lo := 30 * 1.2 * 1.15 * 1.3 * 1.4 * 1.15 * 1.0
	for i := 0; i < 200; i++ {
		w := g.workTime(src, tk, big, true, true)
		require.GreaterOrEqual(t, float64(w), lo-1)
		require.LessOrEqual(t, float64(w), hi)
	}

	assert.InDelta(t, 1.15, TopicFactor(classify.Classify("Webhook stopped")), 1e-9)
	assert.InDelta(t, 1.1, TopicFactor(classify.Classify("Page keeps loading")), 1e-9)
	assert.InDelta(t, 1.05, TopicFactor(classify.Classify("Workshop for volunteers")), 1e-9)
	assert.InDelta(t, 1.0, TopicFactor(classify.Classify("Hello there")), 1e-9)
}

func TestReplies(t *testing.T) {
	g := NewGenerator()
	src := chance.New(9)
	faith := model.Organization{Type: model.OrgFaith}
	tk := model.Ticket{Priority: model.PriorityUrgent, Satisfaction: model.SatisfactionBad}
	for i := 0; i < 200; i++ {
		n := g.replies(src, tk, faith, true, 2)
		// int(3*1.2)+1+1+2 .. int(8*1.2)+3+4+6
		require.GreaterOrEqual(t, n, 7)
		require.LessOrEqual(t, n, 22)
	}
}

func stageEnv(t *testing.T) *pipeline.Env {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.Seed = 5
	env, err := pipeline.NewEnv(cfg, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	require.NoError(t, err)

	tickets, orgs := fixture()
	require.NoError(t, dataset.WriteOrganizations(env.Paths.Customers(), orgs))
	require.NoError(t, dataset.WriteTickets(env.Paths.Tickets(), tickets))
	return env
}

func TestStageWithoutTranscripts(t *testing.T) {
	env := stageEnv(t)
	st, ok := pipeline.Get(StageName)
	require.True(t, ok)

	res, err := st.Run(context.Background(), env)
	require.NoError(t, err)
	assert.Equal(t, 60, res.Records["ticket_metrics"])

	written, err := dataset.ReadMetrics(env.Paths.Metrics())
	require.NoError(t, err)
	assert.Len(t, written, 60)
}

func TestStageCorrelatesCalls(t *testing.T) {
	env := stageEnv(t)
	require.NoError(t, dataset.WriteTranscripts(env.Paths.Transcripts(), []model.CallTranscript{
		{TranscriptID: 1, TicketID: 5, CallDuration: 1200, Text: "Agent (A): hi", CallDate: created, AgentName: "A", CustomerSatisfaction: 4},
	}))
	st, _ := pipeline.Get(StageName)
	res, err := st.Run(context.Background(), env)
	require.NoError(t, err)
	assert.Contains(t, res.Summary, "1 with calls")
}

func TestStageMalformedTranscripts(t *testing.T) {
	env := stageEnv(t)
	require.NoError(t, dataset.WriteTable(env.Paths.Transcripts(), dataset.TranscriptColumns,
		[][]string{{"1", "x", "60", "text", "2024-01-01 00:00:00", "A", "3", "True", "False"}}))
	st, _ := pipeline.Get(StageName)
	_, err := st.Run(context.Background(), env)
	require.Error(t, err)
}
