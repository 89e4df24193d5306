// ABOUTME: Synthesizes helpdesk tickets for every organization.
// ABOUTME: Draws categorical fields from Tables and keeps timestamps ordered.

package tickets

import (
	"strings"
	"time"

	"github.com/2389/deskgen/internal/chance"
	"github.com/2389/deskgen/internal/model"
)

// Stats summarizes one generation pass.
type Stats struct {
	// Skipped lists organizations without employees.
	Skipped []string
	// Fallbacks counts descriptions that used the generic sentence.
	Fallbacks int
}

type Generator struct {
	Tables    *Tables
	Templates map[model.Category]TemplateSet
	Reference time.Time
}

func NewGenerator(reference time.Time) *Generator {
	return &Generator{
		Tables:    DefaultTables(),
		Templates: DefaultTemplates(),
		Reference: reference,
	}
}

// Count is the number of tickets an organization files.
func (g *Generator) Count(src *chance.Source, o model.Organization) int {
	mult, ok := g.Tables.TierMultiplier[o.Tier]
	if !ok {
		mult = 1.0
	}
	n := int(float64(g.Tables.BaseCount[o.Size])*mult) + src.IntBetween(-g.Tables.CountJitter, g.Tables.CountJitter)
	return max(g.Tables.MinCount, n)
}

// Generate produces tickets for orgs, numbering them from 1. Employees are matched
// to organizations by customer id.
func (g *Generator) Generate(src *chance.Source, orgs []model.Organization, emps []model.Employee) ([]model.Ticket, Stats) {
	staff := map[string][]model.Employee{}
	for _, e := range emps {
		staff[e.CustomerID] = append(staff[e.CustomerID], e)
	}

	var stats Stats
	var out []model.Ticket
	for _, o := range orgs {
		people := staff[o.CustomerID]
		if len(people) == 0 {
			stats.Skipped = append(stats.Skipped, o.CustomerID)
			continue
		}
		n := g.Count(src, o)
		for i := 0; i < n; i++ {
			t, fellBack := g.ticket(src, o, chance.Choice(src, people))
			if fellBack {
				stats.Fallbacks++
			}
			t.TicketID = len(out) + 1
			out = append(out, t)
		}
	}
	return out, stats
}

func (g *Generator) ticket(src *chance.Source, o model.Organization, requester model.Employee) (model.Ticket, bool) {
	tb := g.Tables
	created := g.createdAt(src, o, requester.HireDate)

	category := chance.Pick(src, tb.categoriesFor(o.Type))
	priority := model.PriorityNormal
	if w, ok := tb.Priorities[category]; ok {
		priority = chance.Pick(src, w)
	}
	description, err := describe(src, g.Templates, o, requester, category, priority)

	daysOld := int(g.Reference.Sub(created).Hours() / 24)
	status := chance.Pick(src, tb.statusFor(daysOld))

	t := model.Ticket{
		CustomerID:  o.CustomerID,
		EmployeeID:  requester.EmployeeID,
		Description: description,
		Category:    category,
		Status:      status,
		Priority:    priority,
		Type:        ticketType(src, category),
		Channel:     chance.Pick(src, tb.Channels),
		Tags:        tags(o, category, priority),
		CreatedAt:   created,
	}

	if status.Resolved() && src.Chance(tb.SatisfactionRate) {
		t.Satisfaction = chance.Pick(src, tb.Satisfaction)
		if pool := tb.Comments[t.Satisfaction]; len(pool) > 0 {
			t.SatisfactionComment = chance.Choice(src, pool)
		}
	}

	if days, ok := tb.DueDays[priority]; ok && src.Chance(tb.DueRate) {
		t.DueAt = created.AddDate(0, 0, days)
	}

	if status.Resolved() {
		solved := created.AddDate(0, 0, src.IntBetween(1, tb.MaxResolutionDays))
		if solved.After(g.Reference) {
			solved = src.Between(created, g.Reference)
		}
		t.SolvedAt = solved
		t.UpdatedAt = solved
	} else {
		t.UpdatedAt = g.lastUpdate(src, created, daysOld)
	}
	return t, err != nil
}

// createdAt picks a creation instant on or after both the organization's creation
// and the requester's hire date, favoring the organization type's busy months.
func (g *Generator) createdAt(src *chance.Source, o model.Organization, hire time.Time) time.Time {
	earliest := o.CreatedAt
	if earliest.IsZero() {
		earliest = o.SetupDate
	}
	if hire.After(earliest) {
		earliest = hire
	}
	ref := g.Reference
	if !ref.After(earliest) {
		return earliest
	}

	month := chance.Pick(src, g.Tables.monthsFor(o.Type))
	var years []int
	for y := earliest.Year(); y <= ref.Year(); y++ {
		if y == earliest.Year() && month < earliest.Month() {
			continue
		}
		if y == ref.Year() && month > ref.Month() {
			continue
		}
		years = append(years, y)
	}

	var t time.Time
	if len(years) > 0 {
		day := time.Date(chance.Choice(src, years), month, src.IntBetween(1, 28), 0, 0, 0, 0, time.UTC)
		t = day.Add(time.Duration(src.IntBetween(7, 19))*time.Hour + time.Duration(src.IntBetween(0, 59))*time.Minute)
		if t.Before(earliest) {
			t = earliest.AddDate(0, 0, src.IntBetween(1, 30))
		}
	} else {
		days := int(ref.Sub(earliest).Hours() / 24)
		t = earliest.AddDate(0, 0, src.IntBetween(0, min(days, 730)))
	}
	if t.After(ref) {
		t = src.Between(earliest, ref)
	}
	return t
}

// lastUpdate is a recent activity time for an unresolved ticket, never before created.
func (g *Generator) lastUpdate(src *chance.Source, created time.Time, daysOld int) time.Time {
	if window := min(7, daysOld); window > 0 {
		u := g.Reference.AddDate(0, 0, -src.IntBetween(0, window))
		if u.Before(created) {
			return created
		}
		return u
	}
	return created.Add(time.Duration(src.IntBetween(1, 24)) * time.Hour)
}

func tags(o model.Organization, c model.Category, p model.Priority) []string {
	out := []string{strings.ReplaceAll(string(c), "_", "")}
	switch o.Type {
	case model.OrgFaith:
		out = append(out, "church")
	case model.OrgSchool:
		out = append(out, "education")
	}
	if p == model.PriorityHigh || p == model.PriorityUrgent {
		out = append(out, "urgent")
	}
	if o.Size == model.SizeLarge {
		out = append(out, "enterprise")
	}
	return out
}
