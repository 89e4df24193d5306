// ABOUTME: Factor tables and resolution bands for ticket metrics.
// ABOUTME: Work time and reply counts are a priority base scaled by these factors.

package metrics

import (
	"math"

	"github.com/2389/deskgen/internal/chance"
	"github.com/2389/deskgen/internal/classify"
	"github.com/2389/deskgen/internal/model"
)

// Range is an inclusive [Lo, Hi] interval.
type Range[T int | float64] struct {
	Lo, Hi T
}

// Band maps calls up to MaxMinutes long to full resolution hours. A share of
// QuickRate was settled on the call; the rest needed follow-up work.
type Band struct {
	MaxMinutes int
	QuickRate  float64
	Quick      Range[float64]
	FollowUp   Range[float64]
}

type Tables struct {
	// agent work time, minutes
	WorkBase       map[model.Priority]Range[int]
	DefaultWork    Range[int]
	SizeFactor     map[model.SizeCategory]float64
	TierFactor     map[model.Tier]float64
	CallFactor     float64
	RatingFactor   map[model.Satisfaction]float64
	ResolvedEffort Range[float64]
	OpenEffort     Range[float64]

	ReassignRate  float64
	GroupStations chance.Weighted[int]
	Reopens       chance.Weighted[int]

	// Bands are ordered by MaxMinutes; the last one is unbounded.
	Bands       []Band
	RatingHours map[model.Satisfaction]Range[float64]

	ReplyBase      map[model.Priority]Range[int]
	DefaultReplies Range[int]
	OrgReplyFactor map[model.OrgType]float64
	CallReplyBoost Range[int]
	RatingReplies  map[model.Satisfaction]Range[int]

	RequesterReplyRate float64
}

func DefaultTables() *Tables {
	return &Tables{
		WorkBase: map[model.Priority]Range[int]{
			model.PriorityUrgent: {30, 120},
			model.PriorityHigh:   {20, 90},
			model.PriorityNormal: {15, 60},
		},
		DefaultWork: Range[int]{10, 45},
		SizeFactor: map[model.SizeCategory]float64{
			model.SizeSmall: 0.9, model.SizeMedium: 1.0, model.SizeLarge: 1.2,
		},
		TierFactor: map[model.Tier]float64{
			model.TierBasic: 0.85, model.TierStandard: 1.0, model.TierPremium: 1.15,
		},
		CallFactor: 1.3,
		RatingFactor: map[model.Satisfaction]float64{
			model.SatisfactionBad: 1.4, model.SatisfactionGood: 1.1,
		},
		ResolvedEffort: Range[float64]{1.0, 1.5},
		OpenEffort:     Range[float64]{0.5, 1.0},

		ReassignRate:  0.15,
		GroupStations: chance.W(chance.O(1, 80), chance.O(2, 15), chance.O(3, 5)),
		Reopens:       chance.W(chance.O(0, 85), chance.O(1, 12), chance.O(2, 3)),

		Bands: []Band{
			{5, 0.3, Range[float64]{1, 8}, Range[float64]{24, 120}},
			{15, 0.4, Range[float64]{2, 24}, Range[float64]{12, 96}},
			{30, 0.5, Range[float64]{1, 12}, Range[float64]{48, 168}},
			{45, 0.6, Range[float64]{2, 24}, Range[float64]{72, 240}},
			{math.MaxInt, 0.5, Range[float64]{4, 36}, Range[float64]{96, 336}},
		},
		RatingHours: map[model.Satisfaction]Range[float64]{
			model.SatisfactionBad:  {1.5, 2.5},
			model.SatisfactionGood: {0.7, 1.0},
		},

		ReplyBase: map[model.Priority]Range[int]{
			model.PriorityUrgent: {3, 8},
			model.PriorityHigh:   {2, 6},
		},
		DefaultReplies: Range[int]{1, 4},
		OrgReplyFactor: map[model.OrgType]float64{
			model.OrgFaith: 1.2, model.OrgSchool: 1.1, model.OrgNonprofit: 1.0,
			model.OrgChildcare: 1.0, model.OrgCommunityEd: 0.9,
		},
		CallReplyBoost: Range[int]{1, 3},
		RatingReplies: map[model.Satisfaction]Range[int]{
			model.SatisfactionBad:  {1, 4},
			model.SatisfactionGood: {0, 1},
		},

		RequesterReplyRate: 0.7,
	}
}

// TopicFactor scales work time for topics that take longer to handle.
func TopicFactor(r classify.Result) float64 {
	switch {
	case r.Has(classify.TopicIntegration):
		return 1.15
	case r.Has(classify.TopicTechnical):
		return 1.1
	case r.Has(classify.TopicTraining):
		return 1.05
	default:
		return 1.0
	}
}

// band returns the resolution band for a call of minutes length.
func (tb *Tables) band(minutes int) Band {
	for _, b := range tb.Bands {
		if minutes <= b.MaxMinutes {
			return b
		}
	}
	return tb.Bands[len(tb.Bands)-1]
}

func factor[K comparable](m map[K]float64, k K) float64 {
	if f, ok := m[k]; ok {
		return f
	}
	return 1.0
}

func between(src *chance.Source, r Range[int]) int { return src.IntBetween(r.Lo, r.Hi) }

func uniform(src *chance.Source, r Range[float64]) float64 { return src.Uniform(r.Lo, r.Hi) }
