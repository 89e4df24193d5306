// ABOUTME: Tests for the shared description classifier.
// ABOUTME: Covers topic detection, word-start anchoring and derived categories.

package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/2389/deskgen/internal/model"
)

func TestIssueCategory(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        IssueCategory
		track       Track
	}{
		{"payment wins over integration", "Payment sync failed in QuickBooks", IssuePayment, TrackPayment},
		{"billing counts as payment", "Question about our invoice", IssuePayment, TrackPayment},
		{"integration", "Webhook deliveries stopped", IssueIntegration, TrackIntegration},
		{"training", "Need a workshop for new volunteers", IssueTraining, TrackTraining},
		{"setup maps to training", "SSL certificate for our domain", IssueTraining, TrackGeneral},
		{"feature", "Enhancement idea for the giving page", IssueFeature, TrackGeneral},
		{"technical", "Dashboard keeps loading forever", IssueTechnical, TrackGeneral},
		{"nothing matched", "Hello there", IssueTechnical, TrackGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Classify(tt.description)
			assert.Equal(t, tt.want, r.IssueCategory())
			assert.Equal(t, tt.track, r.SupportTrack())
		})
	}
}

func TestKeywordsAnchorAtWordStart(t *testing.T) {
	assert.False(t, Classify("We reach out to each family").Has(TopicPayment))
	assert.True(t, Classify("ACH transfers bounced").Has(TopicPayment))
	assert.False(t, Classify("Rapid growth this year").Has(TopicIntegration))
	assert.True(t, Classify("The API returns 500").Has(TopicIntegration))
	assert.True(t, Classify("Duplicate charges on card").Has(TopicPayment))
}

func TestClassifyTicketFallsBackToCategory(t *testing.T) {
	r := ClassifyTicket(model.Ticket{Description: "Hello there", Category: model.CategoryIntegration})
	assert.True(t, r.Has(TopicIntegration))

	r = ClassifyTicket(model.Ticket{Description: "Refund still pending", Category: model.CategoryIntegration})
	assert.True(t, r.Has(TopicPayment))
	assert.False(t, r.Has(TopicIntegration))
}

func TestResultList(t *testing.T) {
	r := Classify("Training on the new export feature")
	assert.Equal(t, []Topic{TopicIntegration, TopicTraining, TopicFeature}, r.List())
	assert.False(t, r.MoneyRelated())
}

func TestMatcher(t *testing.T) {
	m := NewMatcher("card declined", "declined")
	assert.True(t, m.Match("Card DECLINED at the kiosk"))
	assert.False(t, m.Match("undeclined"))
}
