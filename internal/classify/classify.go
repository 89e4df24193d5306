// ABOUTME: Shared keyword classifier for ticket descriptions.
// ABOUTME: Used by the call and metrics stages so both read the same issue topics.

package classify

import (
	"regexp"
	"strings"

	"github.com/2389/deskgen/internal/model"
)

// Topic is a subject detected in free text.
type Topic string

const (
	TopicPayment     Topic = "payment"
	TopicBilling     Topic = "billing"
	TopicIntegration Topic = "integration"
	TopicTraining    Topic = "training"
	TopicFeature     Topic = "feature"
	TopicSetup       Topic = "setup"
	TopicTechnical   Topic = "technical"
)

// Topics in precedence order.
var Topics = []Topic{
	TopicPayment, TopicBilling, TopicIntegration, TopicTraining,
	TopicFeature, TopicSetup, TopicTechnical,
}

// Keywords per topic. Matching is case-insensitive and anchored at a word start, so
// "ach" matches "ACH transfer" but not "each".
var Keywords = map[Topic][]string{
	TopicPayment:     {"payment", "charge", "refund", "transaction", "ach", "credit", "declined"},
	TopicBilling:     {"billing", "invoice"},
	TopicIntegration: {"quickbooks", "salesforce", "integration", "sync", "api", "export", "webhook"},
	TopicTraining:    {"training", "help", "learn", "workshop", "tutorial", "guidance"},
	TopicFeature:     {"feature", "request", "enhancement", "suggestion", "custom"},
	TopicSetup:       {"setup", "configuration", "install", "domain", "ssl", "initial"},
	TopicTechnical:   {"error", "bug", "crash", "timeout", "loading", "not working", "failed", "technical"},
}

// Matcher tests text against a keyword list.
type Matcher struct {
	re *regexp.Regexp
}

// NewMatcher compiles keywords into a single word-start pattern.
func NewMatcher(keywords ...string) *Matcher {
	quoted := make([]string, len(keywords))
	for i, k := range keywords {
		quoted[i] = regexp.QuoteMeta(strings.ToLower(k))
	}
	return &Matcher{re: regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)`)}
}

// Match reports whether any keyword occurs in text.
func (m *Matcher) Match(text string) bool {
	return m.re.MatchString(strings.ToLower(text))
}

var matchers = func() map[Topic]*Matcher {
	out := make(map[Topic]*Matcher, len(Keywords))
	for topic, kws := range Keywords {
		out[topic] = NewMatcher(kws...)
	}
	return out
}()

// Result is the set of topics found in one description.
type Result struct {
	topics map[Topic]bool
}

// Classify detects every topic mentioned in description.
func Classify(description string) Result {
	r := Result{topics: make(map[Topic]bool)}
	for _, topic := range Topics {
		if matchers[topic].Match(description) {
			r.topics[topic] = true
		}
	}
	return r
}

var categoryTopic = map[model.Category]Topic{
	model.CategoryPaymentProcessing: TopicPayment,
	model.CategoryBilling:           TopicBilling,
	model.CategoryIntegration:       TopicIntegration,
	model.CategoryTraining:          TopicTraining,
	model.CategoryFeatureRequest:    TopicFeature,
	model.CategorySetup:             TopicSetup,
	model.CategoryBugReport:         TopicTechnical,
}

// ClassifyTicket classifies the description and, when no keyword matched, falls back
// to the ticket's category.
func ClassifyTicket(t model.Ticket) Result {
	r := Classify(t.Description)
	if len(r.topics) == 0 {
		if topic, ok := categoryTopic[t.Category]; ok {
			r.topics[topic] = true
		}
	}
	return r
}

// Has reports whether topic was detected.
func (r Result) Has(topic Topic) bool {
	return r.topics[topic]
}

// Any reports whether at least one of topics was detected.
func (r Result) Any(topics ...Topic) bool {
	for _, t := range topics {
		if r.topics[t] {
			return true
		}
	}
	return false
}

// List returns detected topics in precedence order.
func (r Result) List() []Topic {
	var out []Topic
	for _, t := range Topics {
		if r.topics[t] {
			out = append(out, t)
		}
	}
	return out
}

// IssueCategory names the conversation problem pool.
type IssueCategory string

const (
	IssuePayment     IssueCategory = "payment_issues"
	IssueIntegration IssueCategory = "integration_issues"
	IssueTraining    IssueCategory = "training_needs"
	IssueFeature     IssueCategory = "feature_requests"
	IssueTechnical   IssueCategory = "technical_problems"
)

// IssueCategory maps the detected topics to a single conversation category. Setup
// questions are treated as training needs.
func (r Result) IssueCategory() IssueCategory {
	switch {
	case r.Any(TopicPayment, TopicBilling):
		return IssuePayment
	case r.Has(TopicIntegration):
		return IssueIntegration
	case r.Has(TopicTraining):
		return IssueTraining
	case r.Has(TopicFeature):
		return IssueFeature
	case r.Has(TopicSetup):
		return IssueTraining
	default:
		return IssueTechnical
	}
}

// Track selects the troubleshooting and escalation content for long calls.
type Track string

const (
	TrackPayment     Track = "payment"
	TrackIntegration Track = "integration"
	TrackTraining    Track = "training"
	TrackGeneral     Track = "general"
)

// SupportTrack picks the content track for extended troubleshooting.
func (r Result) SupportTrack() Track {
	switch {
	case r.Any(TopicPayment, TopicBilling):
		return TrackPayment
	case r.Has(TopicIntegration):
		return TrackIntegration
	case r.Has(TopicTraining):
		return TrackTraining
	default:
		return TrackGeneral
	}
}

// MoneyRelated reports whether the ticket is about payments or billing, which makes
// customers more likely to call.
func (r Result) MoneyRelated() bool {
	return r.Any(TopicPayment, TopicBilling)
}
