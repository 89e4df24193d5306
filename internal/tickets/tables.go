// ABOUTME: Distribution tables for ticket synthesis.
// ABOUTME: Every categorical draw in the generator reads from a Tables value.

package tickets

import (
	"time"

	"github.com/2389/deskgen/internal/chance"
	"github.com/2389/deskgen/internal/model"
)

// AgeBucket applies Statuses to tickets older than MinDaysOld days.
type AgeBucket struct {
	MinDaysOld int
	Statuses   chance.Weighted[model.Status]
}

// Tables holds the nested distributions. Lookups that miss fall back to the
// Default* fields.
type Tables struct {
	BaseCount      map[model.SizeCategory]int
	TierMultiplier map[model.Tier]float64
	MinCount       int
	CountJitter    int

	Months        map[model.OrgType]chance.Weighted[time.Month]
	DefaultMonths chance.Weighted[time.Month]

	Categories        map[model.OrgType]chance.Weighted[model.Category]
	DefaultCategories chance.Weighted[model.Category]

	Priorities map[model.Category]chance.Weighted[model.Priority]

	// Ages is ordered from oldest bucket to newest; the last bucket has MinDaysOld < 0.
	Ages []AgeBucket

	Channels chance.Weighted[model.Channel]

	SatisfactionRate float64
	Satisfaction     chance.Weighted[model.Satisfaction]
	Comments         map[model.Satisfaction][]string

	DueRate float64
	DueDays map[model.Priority]int

	MaxResolutionDays int
}

func months(weights ...float64) chance.Weighted[time.Month] {
	w := make(chance.Weighted[time.Month], 0, 12)
	for i, v := range weights {
		w = append(w, chance.O(time.Month(i+1), v))
	}
	return w
}

func categories(payment, setup, training, integration, billing, feature, bug float64) chance.Weighted[model.Category] {
	return chance.W(
		chance.O(model.CategoryPaymentProcessing, payment),
		chance.O(model.CategorySetup, setup),
		chance.O(model.CategoryTraining, training),
		chance.O(model.CategoryIntegration, integration),
		chance.O(model.CategoryBilling, billing),
		chance.O(model.CategoryFeatureRequest, feature),
		chance.O(model.CategoryBugReport, bug),
	)
}

func priorities(low, normal, high, urgent float64) chance.Weighted[model.Priority] {
	return chance.W(
		chance.O(model.PriorityLow, low),
		chance.O(model.PriorityNormal, normal),
		chance.O(model.PriorityHigh, high),
		chance.O(model.PriorityUrgent, urgent),
	)
}

func statuses(newW, open, pending, hold, solved, closed float64) chance.Weighted[model.Status] {
	return chance.W(
		chance.O(model.StatusNew, newW),
		chance.O(model.StatusOpen, open),
		chance.O(model.StatusPending, pending),
		chance.O(model.StatusHold, hold),
		chance.O(model.StatusSolved, solved),
		chance.O(model.StatusClosed, closed),
	)
}

// DefaultTables returns the stock distributions.
func DefaultTables() *Tables {
	return &Tables{
		BaseCount:      map[model.SizeCategory]int{model.SizeSmall: 15, model.SizeMedium: 25, model.SizeLarge: 35},
		TierMultiplier: map[model.Tier]float64{model.TierBasic: 0.8, model.TierStandard: 1.0, model.TierPremium: 1.3},
		MinCount:       10,
		CountJitter:    5,

		// seasonal ticket volume, January first
		Months: map[model.OrgType]chance.Weighted[time.Month]{
			model.OrgFaith:     months(6, 6, 8, 8, 7, 7, 6, 6, 9, 7, 12, 12),
			model.OrgSchool:    months(10, 8, 9, 8, 11, 7, 4, 12, 10, 8, 7, 6),
			model.OrgChildcare: months(9, 8, 8, 8, 8, 7, 6, 8, 10, 8, 8, 9),
		},
		DefaultMonths: months(8, 8, 8, 8, 8, 8, 7, 7, 9, 9, 8, 8),

		Categories: map[model.OrgType]chance.Weighted[model.Category]{
			model.OrgFaith:  categories(30, 15, 20, 10, 10, 10, 5),
			model.OrgSchool: categories(25, 20, 25, 15, 5, 7, 3),
		},
		DefaultCategories: categories(35, 15, 15, 12, 8, 10, 5),

		Priorities: map[model.Category]chance.Weighted[model.Priority]{
			model.CategoryPaymentProcessing: priorities(10, 30, 40, 20),
			model.CategoryBugReport:         priorities(5, 25, 50, 20),
			model.CategorySetup:             priorities(20, 50, 25, 5),
			model.CategoryTraining:          priorities(40, 45, 10, 5),
			model.CategoryIntegration:       priorities(15, 40, 35, 10),
			model.CategoryBilling:           priorities(25, 45, 25, 5),
			model.CategoryFeatureRequest:    priorities(50, 40, 8, 2),
		},

		Ages: []AgeBucket{
			{MinDaysOld: 30, Statuses: statuses(2, 8, 5, 2, 45, 38)},
			{MinDaysOld: 7, Statuses: statuses(5, 20, 15, 5, 35, 20)},
			{MinDaysOld: -1, Statuses: statuses(15, 40, 20, 10, 10, 5)},
		},

		Channels: chance.W(
			chance.O(model.ChannelWeb, 40),
			chance.O(model.ChannelEmail, 35),
			chance.O(model.ChannelPhone, 20),
			chance.O(model.ChannelChat, 5),
		),

		SatisfactionRate: 0.7,
		Satisfaction: chance.W(
			chance.O(model.SatisfactionGood, 75),
			chance.O(model.SatisfactionNeutral, 10),
			chance.O(model.SatisfactionBad, 15),
		),
		Comments: map[model.Satisfaction][]string{
			model.SatisfactionGood: {
				"Great support, very helpful!",
				"Quick resolution, thank you!",
				"Excellent service as always.",
				"Problem solved efficiently.",
				"Very satisfied with the help.",
			},
			model.SatisfactionNeutral: {
				"Issue resolved, but it took a few tries.",
				"Okay experience overall.",
				"Answer was fine, documentation could be clearer.",
				"Resolved eventually.",
			},
			model.SatisfactionBad: {
				"Took too long to resolve.",
				"Could have been faster.",
				"Had to follow up multiple times.",
				"Solution was unclear.",
				"Expected better response time.",
			},
		},

		DueRate: 0.4,
		DueDays: map[model.Priority]int{model.PriorityHigh: 5, model.PriorityUrgent: 2},

		MaxResolutionDays: 14,
	}
}

func (t *Tables) monthsFor(o model.OrgType) chance.Weighted[time.Month] {
	if w, ok := t.Months[o]; ok {
		return w
	}
	return t.DefaultMonths
}

func (t *Tables) categoriesFor(o model.OrgType) chance.Weighted[model.Category] {
	if w, ok := t.Categories[o]; ok {
		return w
	}
	return t.DefaultCategories
}

func (t *Tables) statusFor(daysOld int) chance.Weighted[model.Status] {
	for _, b := range t.Ages {
		if daysOld > b.MinDaysOld {
			return b.Statuses
		}
	}
	return t.Ages[len(t.Ages)-1].Statuses
}

// ticketType follows the category: bugs are problems or incidents, feature
// requests are tasks.
func ticketType(src *chance.Source, c model.Category) model.TicketType {
	switch c {
	case model.CategoryBugReport:
		return chance.Choice(src, []model.TicketType{model.TypeProblem, model.TypeIncident})
	case model.CategoryFeatureRequest:
		return model.TypeTask
	}
	return chance.Choice(src, []model.TicketType{model.TypeQuestion, model.TypeTask, model.TypeProblem})
}
