// ABOUTME: Selects tickets that had a phone call and synthesizes the call records.
// ABOUTME: Covers selection scoring, call timing, duration and post-call satisfaction.

package calls

import (
	"time"

	"github.com/2389/deskgen/internal/chance"
	"github.com/2389/deskgen/internal/classify"
	"github.com/2389/deskgen/internal/model"
)

// Call length bounds in seconds.
const (
	MinDuration = 120
	MaxDuration = 3600
)

// Stats summarizes one generation pass.
type Stats struct {
	Considered int
	// Orphans lists tickets whose customer or requester is missing from the inputs.
	Orphans []int
}

type Generator struct {
	Agents   []Agent
	Personas []Persona
}

func NewGenerator() *Generator {
	return &Generator{Agents: Agents, Personas: Personas}
}

// Score is the probability that a ticket involved a phone call.
func Score(t model.Ticket, o model.Organization, r classify.Result) float64 {
	p := 0.5
	switch t.Priority {
	case model.PriorityUrgent:
		p += 0.3
	case model.PriorityHigh:
		p += 0.2
	case model.PriorityLow:
		p -= 0.15
	}
	switch t.Channel {
	case model.ChannelPhone:
		p = 0.95
	case model.ChannelChat:
		p += 0.1
	}
	switch o.Size {
	case model.SizeLarge:
		p += 0.15
	case model.SizeSmall:
		p -= 0.1
	}
	switch o.Tier {
	case model.TierPremium:
		p += 0.1
	case model.TierBasic:
		p -= 0.05
	}
	if t.Satisfaction == model.SatisfactionBad {
		p += 0.2
	}
	if r.MoneyRelated() {
		p += 0.15
	}
	return min(0.95, max(0.1, p))
}

// CallDate places the call inside the ticket's active window. Solved tickets are
// called about in the first 80% of the window.
func CallDate(src *chance.Source, t model.Ticket) time.Time {
	end := t.WindowEnd()
	if !t.SolvedAt.IsZero() {
		end = t.CreatedAt.Add(end.Sub(t.CreatedAt) * 4 / 5)
	}
	return src.Between(t.CreatedAt, end)
}

// Duration is the call length in seconds. A priority base range is scaled by topic,
// organization, agent and satisfaction factors, then jittered and clamped.
func Duration(src *chance.Source, t model.Ticket, o model.Organization, a Agent, r classify.Result) int {
	var d int
	switch t.Priority {
	case model.PriorityUrgent:
		d = src.IntBetween(900, 2400)
	case model.PriorityHigh:
		d = src.IntBetween(480, 1500)
	case model.PriorityNormal:
		d = src.IntBetween(240, 900)
	default:
		d = src.IntBetween(180, 600)
	}

	scale := func(lo, hi float64) {
		d = int(float64(d) * src.Uniform(lo, hi))
	}
	switch {
	case r.Has(classify.TopicTraining):
		scale(1.3, 1.8)
	case r.Any(classify.TopicIntegration, classify.TopicTechnical):
		scale(1.2, 1.6)
	case r.Any(classify.TopicPayment, classify.TopicBilling):
		scale(0.8, 1.2)
	case r.Has(classify.TopicFeature):
		scale(1.1, 1.4)
	}
	switch o.Size {
	case model.SizeLarge:
		scale(1.1, 1.3)
	case model.SizeSmall:
		scale(0.8, 1.0)
	}
	switch o.Tier {
	case model.TierPremium:
		scale(1.0, 1.2)
	case model.TierBasic:
		scale(0.9, 1.0)
	}
	switch a.Experience {
	case Junior:
		scale(1.1, 1.4)
	case Senior:
		scale(0.8, 1.0)
	}
	switch t.Satisfaction {
	case model.SatisfactionBad:
		scale(1.3, 1.8)
	case model.SatisfactionGood:
		scale(0.9, 1.1)
	}
	scale(0.7, 1.4)

	return min(MaxDuration, max(MinDuration, d))
}

// satisfactionScore is the 1-5 post-call rating. It follows the ticket rating and
// drifts with agent experience.
func satisfactionScore(src *chance.Source, s model.Satisfaction, e Experience) int {
	var score int
	switch s {
	case model.SatisfactionGood:
		score = chance.Choice(src, []int{4, 5, 5})
	case model.SatisfactionBad:
		score = chance.Choice(src, []int{1, 2, 2})
	default:
		score = chance.Choice(src, []int{3, 4})
	}
	switch e {
	case Senior:
		score = min(5, score+src.Intn(2))
	case Junior:
		score = max(1, score-src.Intn(2))
	}
	return score
}

// Generate selects tickets that had a call and renders one transcript for each,
// numbering transcripts from 1.
func (g *Generator) Generate(src *chance.Source, tickets []model.Ticket, orgs []model.Organization, emps []model.Employee) ([]model.CallTranscript, Stats) {
	orgByID := make(map[string]model.Organization, len(orgs))
	for _, o := range orgs {
		orgByID[o.CustomerID] = o
	}
	empByID := make(map[string]model.Employee, len(emps))
	for _, e := range emps {
		empByID[e.EmployeeID] = e
	}

	var stats Stats
	var out []model.CallTranscript
	for _, t := range tickets {
		o, okOrg := orgByID[t.CustomerID]
		e, okEmp := empByID[t.EmployeeID]
		if !okOrg || !okEmp {
			stats.Orphans = append(stats.Orphans, t.TicketID)
			continue
		}
		stats.Considered++

		r := classify.ClassifyTicket(t)
		if !src.Chance(Score(t, o, r)) {
			continue
		}
		c := g.call(src, t, o, e, r)
		c.TranscriptID = len(out) + 1
		out = append(out, c)
	}
	return out, stats
}

func (g *Generator) call(src *chance.Source, t model.Ticket, o model.Organization, caller model.Employee, r classify.Result) model.CallTranscript {
	at := CallDate(src, t)
	agent := chance.Choice(src, g.Agents)
	duration := Duration(src, t, o, agent, r)

	d := &dialogue{
		src:          src,
		agent:        agent,
		caller:       caller.FullName(),
		persona:      chance.Choice(src, g.Personas),
		org:          contextFor(o.Type),
		brief:        issueBrief(src, t.Description, r),
		track:        r.SupportTrack(),
		satisfaction: t.Satisfaction,
		duration:     duration,
		at:           at,
	}
	text := d.render()

	score := satisfactionScore(src, t.Satisfaction, agent.Experience)
	return model.CallTranscript{
		TicketID:             t.TicketID,
		CallDuration:         duration,
		Text:                 text,
		CallDate:             at,
		AgentName:            agent.Name,
		CustomerSatisfaction: score,
		ResolutionProvided:   score >= 3 && src.Chance(0.8),
		FollowUpNeeded:       score <= 3 || src.Chance(0.25),
	}
}
