// ABOUTME: Derives one operational metrics row per ticket.
// ABOUTME: Correlates with call durations and keeps timestamps inside the ticket window.

package metrics

import (
	"time"

	"github.com/2389/deskgen/internal/chance"
	"github.com/2389/deskgen/internal/classify"
	"github.com/2389/deskgen/internal/model"
)

// Stats summarizes one generation pass.
type Stats struct {
	WithCalls int
	// UnknownCustomers counts tickets whose customer was not found; they use
	// medium/standard defaults.
	UnknownCustomers int
}

type Generator struct {
	Tables *Tables
}

func NewGenerator() *Generator {
	return &Generator{Tables: DefaultTables()}
}

// CallDurations indexes call lengths in seconds by ticket id.
func CallDurations(calls []model.CallTranscript) map[int]int {
	out := make(map[int]int, len(calls))
	for _, c := range calls {
		out[c.TicketID] = c.CallDuration
	}
	return out
}

// Generate returns one metric per ticket with metric_id equal to ticket_id.
func (g *Generator) Generate(src *chance.Source, tickets []model.Ticket, orgs []model.Organization, callSeconds map[int]int) ([]model.TicketMetric, Stats) {
	orgByID := make(map[string]model.Organization, len(orgs))
	for _, o := range orgs {
		orgByID[o.CustomerID] = o
	}

	var stats Stats
	out := make([]model.TicketMetric, 0, len(tickets))
	for _, t := range tickets {
		o, ok := orgByID[t.CustomerID]
		if !ok {
			stats.UnknownCustomers++
			o = model.Organization{Size: model.SizeMedium, Tier: model.TierStandard}
		}
		secs, hasCall := callSeconds[t.TicketID]
		if hasCall {
			stats.WithCalls++
		}
		out = append(out, g.metric(src, t, o, hasCall, secs))
	}
	return out, stats
}

func hours(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour)).Truncate(time.Second)
}

// window clamps instants into a ticket's active window.
type window struct {
	start, end time.Time
}

func (w window) clamp(t time.Time) time.Time {
	if t.Before(w.start) {
		return w.start
	}
	if t.After(w.end) {
		return w.end
	}
	return t
}

// hours is the window length in hours.
func (w window) hours() float64 {
	return w.end.Sub(w.start).Hours()
}

func (g *Generator) metric(src *chance.Source, t model.Ticket, o model.Organization, hasCall bool, callSecs int) model.TicketMetric {
	tb := g.Tables
	resolved := t.Status.Resolved() && !t.SolvedAt.IsZero()
	w := window{start: t.CreatedAt, end: t.WindowEnd()}
	total := w.hours()

	m := model.TicketMetric{MetricID: t.TicketID, TicketID: t.TicketID, SolvedAt: t.SolvedAt}

	// assignment
	firstDelay := src.Uniform(0.1, min(4, total*0.1))
	m.InitiallyAssignedAt = w.clamp(w.start.Add(hours(firstDelay)))
	m.AssignedAt = m.InitiallyAssignedAt
	m.AssigneeStations = 1
	if src.Chance(tb.ReassignRate) {
		delay := src.Uniform(firstDelay, min(total*0.3, firstDelay+24))
		m.AssignedAt = w.clamp(w.start.Add(hours(delay)))
		if m.AssignedAt.Before(m.InitiallyAssignedAt) {
			m.AssignedAt = m.InitiallyAssignedAt
		}
		m.AssigneeStations = 2
	}
	m.GroupStations = chance.Pick(src, tb.GroupStations)
	assignHours := m.AssignedAt.Sub(w.start).Hours()

	m.AgentWorkTime = g.workTime(src, t, o, hasCall, resolved)

	switch {
	case resolved:
		m.FirstResolutionTime = int(max(1, assignHours+src.Uniform(1, 8)))
		m.FullResolutionTime = g.fullResolution(src, t, hasCall, callSecs)
	case t.Status == model.StatusNew:
		m.FirstResolutionTime = 0
	default:
		m.FirstResolutionTime = int(max(1, assignHours+src.Uniform(1, 4)))
	}

	m.ReplyTime = int(max(1, assignHours+src.Uniform(0.5, 3)))
	m.RequesterWaitTime = max(1, int(total))

	if resolved {
		m.Reopens = chance.Pick(src, tb.Reopens)
	}
	m.Replies = g.replies(src, t, o, hasCall, m.Reopens)

	g.stamp(src, &m, t, w, resolved)
	return m
}

// workTime is agent minutes: a priority base scaled by organization, call, rating,
// topic and status factors.
func (g *Generator) workTime(src *chance.Source, t model.Ticket, o model.Organization, hasCall, resolved bool) int {
	tb := g.Tables
	base, ok := tb.WorkBase[t.Priority]
	if !ok {
		base = tb.DefaultWork
	}
	work := float64(between(src, base))
	work *= factor(tb.SizeFactor, o.Size)
	work *= factor(tb.TierFactor, o.Tier)
	if hasCall {
		work *= tb.CallFactor
	}
	work *= factor(tb.RatingFactor, t.Satisfaction)
	work *= TopicFactor(classify.ClassifyTicket(t))
	if resolved {
		work *= uniform(src, tb.ResolvedEffort)
	} else {
		work *= uniform(src, tb.OpenEffort)
	}
	return int(work)
}

// fullResolution is hours from creation to solve. Tickets with a call draw from the
// call's duration band instead of the raw window.
func (g *Generator) fullResolution(src *chance.Source, t model.Ticket, hasCall bool, callSecs int) int {
	tb := g.Tables
	h := t.SolvedAt.Sub(t.CreatedAt).Hours()
	if hasCall {
		if minutes := callSecs / 60; minutes > 0 {
			b := tb.band(minutes)
			if src.Chance(b.QuickRate) {
				h = uniform(src, b.Quick)
			} else {
				h = uniform(src, b.FollowUp)
			}
		}
		if r, ok := tb.RatingHours[t.Satisfaction]; ok {
			h *= uniform(src, r)
		}
	}
	return max(1, int(h))
}

func (g *Generator) replies(src *chance.Source, t model.Ticket, o model.Organization, hasCall bool, reopens int) int {
	tb := g.Tables
	base, ok := tb.ReplyBase[t.Priority]
	if !ok {
		base = tb.DefaultReplies
	}
	n := int(float64(between(src, base)) * factor(tb.OrgReplyFactor, o.Type))
	if hasCall {
		n += between(src, tb.CallReplyBoost)
	}
	if r, ok := tb.RatingReplies[t.Satisfaction]; ok {
		n += between(src, r)
	}
	for i := 0; i < reopens; i++ {
		n += src.IntBetween(1, 3)
	}
	return n
}

// stamp fills the last-updated timestamps, each clamped into the ticket window.
func (g *Generator) stamp(src *chance.Source, m *model.TicketMetric, t model.Ticket, w window, resolved bool) {
	total := w.hours()

	var assignee time.Time
	if resolved {
		assignee = w.end.Add(-hours(src.Uniform(0.1, 2)))
	} else {
		assignee = w.end.Add(-hours(src.Uniform(0.1, 6)))
	}
	if assignee.Before(m.AssignedAt) {
		assignee = m.AssignedAt
	}
	m.AssigneeUpdatedAt = w.clamp(assignee)

	var requester time.Time
	switch {
	case !src.Chance(g.Tables.RequesterReplyRate):
		requester = w.start.Add(hours(src.Uniform(0.1, 1)))
	case resolved:
		requester = w.end.Add(-hours(src.Uniform(1, 12)))
	default:
		requester = w.start.Add(hours(src.Uniform(0, total)))
	}
	m.RequesterUpdatedAt = w.clamp(requester)

	status := t.SolvedAt
	if !resolved {
		status = w.start.Add(hours(src.Uniform(1, total)))
	}
	m.StatusUpdatedAt = w.clamp(status)
}
