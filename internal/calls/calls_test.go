// ABOUTME: Tests for call selection, timing, duration and transcript rendering.
// ABOUTME: Includes the long urgent call escalation scenario and the calls stage.

package calls

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
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

var created = time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)

func TestScore(t *testing.T) {
	medium := model.Organization{Size: model.SizeMedium, Tier: model.TierStandard}
	tests := []struct {
		name   string
		ticket model.Ticket
		org    model.Organization
		want   float64
	}{
		{"baseline", model.Ticket{Priority: model.PriorityNormal, Channel: model.ChannelWeb, Description: "Dashboard is slow"}, medium, 0.5},
		{"low priority small basic", model.Ticket{Priority: model.PriorityLow, Channel: model.ChannelEmail, Description: "Question"},
			model.Organization{Size: model.SizeSmall, Tier: model.TierBasic}, 0.2},
		{"phone resets then adjusts", model.Ticket{Priority: model.PriorityUrgent, Channel: model.ChannelPhone, Description: "Question"},
			model.Organization{Size: model.SizeSmall, Tier: model.TierBasic}, 0.8},
		{"chat and money", model.Ticket{Priority: model.PriorityNormal, Channel: model.ChannelChat, Description: "Refund missing"}, medium, 0.75},
		{"clamped high", model.Ticket{Priority: model.PriorityUrgent, Channel: model.ChannelChat, Satisfaction: model.SatisfactionBad, Description: "Payment failed"},
			model.Organization{Size: model.SizeLarge, Tier: model.TierPremium}, 0.95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.ticket, tt.org, classify.ClassifyTicket(tt.ticket))
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCallDateInWindow(t *testing.T) {
	src := chance.New(5)
	solved := model.Ticket{CreatedAt: created, SolvedAt: created.Add(10 * 24 * time.Hour), UpdatedAt: created.Add(10 * 24 * time.Hour)}
	open := model.Ticket{CreatedAt: created, UpdatedAt: created.Add(3 * 24 * time.Hour)}

	for i := 0; i < 300; i++ {
		at := CallDate(src, solved)
		require.False(t, at.Before(created))
		require.False(t, at.After(created.Add(8*24*time.Hour)), "solved tickets are called about in the first 80%% of the window")

		at = CallDate(src, open)
		require.False(t, at.Before(created))
		require.False(t, at.After(open.UpdatedAt))
	}

	sameInstant := model.Ticket{CreatedAt: created, UpdatedAt: created}
	assert.Equal(t, created, CallDate(src, sameInstant))
}

func TestDurationBounds(t *testing.T) {
	src := chance.New(8)
	long := model.Ticket{Priority: model.PriorityUrgent, Satisfaction: model.SatisfactionBad, Description: "Training workshop for staff"}
	short := model.Ticket{Priority: model.PriorityLow, Satisfaction: model.SatisfactionGood, Description: "Invoice question"}
	big := model.Organization{Size: model.SizeLarge, Tier: model.TierPremium}
	small := model.Organization{Size: model.SizeSmall, Tier: model.TierBasic}

	var longest int
	for i := 0; i < 300; i++ {
		d := Duration(src, long, big, Agents[3], classify.ClassifyTicket(long))
		require.GreaterOrEqual(t, d, MinDuration)
		require.LessOrEqual(t, d, MaxDuration)
		longest = max(longest, d)

		d = Duration(src, short, small, Agents[0], classify.ClassifyTicket(short))
		require.GreaterOrEqual(t, d, MinDuration)
		require.LessOrEqual(t, d, MaxDuration)
	}
	assert.Equal(t, MaxDuration, longest)
}

func TestSatisfactionScore(t *testing.T) {
	src := chance.New(2)
	for i := 0; i < 200; i++ {
		s := satisfactionScore(src, model.SatisfactionGood, Junior)
		require.True(t, s >= 3 && s <= 5, "good/junior %d", s)

		s = satisfactionScore(src, model.SatisfactionBad, Senior)
		require.True(t, s >= 1 && s <= 3, "bad/senior %d", s)

		s = satisfactionScore(src, model.SatisfactionNone, Mid)
		require.Contains(t, []int{3, 4}, s)
	}
}

func TestTimeOfDay(t *testing.T) {
	assert.Equal(t, "morning", timeOfDay(5))
	assert.Equal(t, "morning", timeOfDay(11))
	assert.Equal(t, "afternoon", timeOfDay(12))
	assert.Equal(t, "evening", timeOfDay(17))
	assert.Equal(t, "evening", timeOfDay(2))
}

func newDialogue(seed int64, duration int, track classify.Track, s model.Satisfaction) *dialogue {
	return &dialogue{
		src:          chance.New(seed),
		agent:        Agents[0],
		caller:       "Ann Lee",
		persona:      Personas[1],
		org:          contextFor(model.OrgFaith),
		brief:        "payment processing issues during transactions",
		track:        track,
		satisfaction: s,
		duration:     duration,
		at:           created,
	}
}

func containsAny(text string, phrases []string) bool {
	return slices.ContainsFunc(phrases, func(p string) bool { return strings.Contains(text, p) })
}

func TestDialogueTurns(t *testing.T) {
	text := newDialogue(1, 300, classify.TrackGeneral, model.SatisfactionGood).render()
	turns := strings.Split(text, "\n\n")
	require.GreaterOrEqual(t, len(turns), 5)

	for _, turn := range turns {
		ok := strings.HasPrefix(turn, "Agent (Sarah Wilson): ") || strings.HasPrefix(turn, "Customer (Ann Lee): ")
		assert.True(t, ok, turn)
	}
	assert.Contains(t, turns[0], "Sarah")
	assert.NotContains(t, turns[0], "{")
	assert.Equal(t, "Customer (Ann Lee): "+closings[model.SatisfactionGood], turns[len(turns)-1])
}

func TestDialogueDurationTiers(t *testing.T) {
	all := func(pick func(troubleshooting) []string) []string {
		var out []string
		for _, ts := range troubleshootingByTrack {
			out = append(out, pick(ts)...)
		}
		return out
	}
	steps := all(func(ts troubleshooting) []string { return ts.steps })
	var handoffs []string
	for _, e := range escalationByTrack {
		handoffs = append(handoffs, e.handoffs...)
	}

	short := newDialogue(4, 500, classify.TrackPayment, model.SatisfactionNone).render()
	assert.False(t, containsAny(short, steps))
	assert.False(t, containsAny(short, handoffs))
	assert.True(t, strings.HasSuffix(short, defaultClosing))

	mid := newDialogue(4, 900, classify.TrackIntegration, model.SatisfactionNone).render()
	assert.True(t, containsAny(mid, troubleshootingByTrack[classify.TrackIntegration].steps))
	assert.False(t, containsAny(mid, handoffs))

	// training has no deep-dive or escalation pool of its own
	long := newDialogue(4, 2000, classify.TrackTraining, model.SatisfactionBad).render()
	assert.True(t, containsAny(long, troubleshootingByTrack[classify.TrackTraining].steps))
	assert.True(t, containsAny(long, deepDiveByTrack[classify.TrackGeneral].discussion))
	assert.True(t, containsAny(long, escalationByTrack[classify.TrackGeneral].handoffs))
	assert.True(t, containsAny(long, escalationByTrack[classify.TrackGeneral].plans))
	assert.True(t, strings.HasSuffix(long, closings[model.SatisfactionBad]))
}

func TestResultsFocusedCallerTruncates(t *testing.T) {
	d := newDialogue(9, 300, classify.TrackGeneral, model.SatisfactionNone)
	d.persona = Personas[1]
	require.Equal(t, ResultsFocused, d.persona.Name)

	changed := false
	for i := 0; i < 100; i++ {
		got := d.colour("Hi, I need help. It is urgent")
		switch got {
		case "Hi, I need help. It is urgent":
		case "Hi, I need help. How quickly can this be resolved?":
			changed = true
		default:
			t.Fatalf("unexpected line %q", got)
		}
	}
	assert.True(t, changed)
}

func TestIssueBrief(t *testing.T) {
	src := chance.New(12)
	desc := "Webhook notification failed overnight"
	r := classify.Classify(desc)
	require.Equal(t, classify.IssueIntegration, r.IssueCategory())

	aligned := 0
	for i := 0; i < 200; i++ {
		b := issueBrief(src, desc, r)
		if b == "webhook notifications not being delivered properly" {
			aligned++
			continue
		}
		require.Contains(t, problemDescriptions[classify.IssueIntegration], b)
	}
	assert.InDelta(t, 140, aligned, 30)

	// no aligned keyword: the category name stands in
	r = classify.Classify("Hello there")
	for i := 0; i < 50; i++ {
		b := issueBrief(src, "Hello there", r)
		if !slices.Contains(problemDescriptions[classify.IssueTechnical], b) {
			assert.Equal(t, "technical problems", b)
		}
	}
}

func fixture() ([]model.Ticket, []model.Organization, []model.Employee) {
	orgs := []model.Organization{
		{CustomerID: "ZENDESK0001", Type: model.OrgFaith, Size: model.SizeLarge, Tier: model.TierPremium},
		{CustomerID: "ZENDESK0002", Type: model.OrgSchool, Size: model.SizeSmall, Tier: model.TierBasic},
	}
	emps := []model.Employee{
		{EmployeeID: "EMP0001", CustomerID: "ZENDESK0001", FirstName: "Ruth", LastName: "Okafor"},
		{EmployeeID: "EMP0002", CustomerID: "ZENDESK0002", FirstName: "Dan", LastName: "Reyes"},
	}
	descriptions := []string{
		"Card payments declined at the kiosk",
		"QuickBooks sync stopped after the update",
		"Need training for new volunteers",
		"Dashboard keeps loading forever",
	}
	var tickets []model.Ticket
	for i := 0; i < 40; i++ {
		tk := model.Ticket{
			TicketID:    i + 1,
			CustomerID:  orgs[i%2].CustomerID,
			EmployeeID:  emps[i%2].EmployeeID,
			Description: descriptions[i%len(descriptions)],
			Category:    model.CategoryBugReport,
			Priority:    model.PriorityUrgent,
			Channel:     model.ChannelPhone,
			Status:      model.StatusOpen,
			CreatedAt:   created.Add(time.Duration(i) * time.Hour),
		}
		tk.UpdatedAt = tk.CreatedAt.Add(48 * time.Hour)
		if i%3 == 0 {
			tk.Status = model.StatusSolved
			tk.Satisfaction = model.SatisfactionBad
			tk.SolvedAt = tk.CreatedAt.Add(72 * time.Hour)
			tk.UpdatedAt = tk.SolvedAt
		}
		tickets = append(tickets, tk)
	}
	tickets = append(tickets, model.Ticket{TicketID: 41, CustomerID: "ZENDESK0099", EmployeeID: "EMP0001",
		Priority: model.PriorityUrgent, Channel: model.ChannelPhone, CreatedAt: created, UpdatedAt: created})
	return tickets, orgs, emps
}

func TestGenerate(t *testing.T) {
	tickets, orgs, emps := fixture()
	calls, stats := NewGenerator().Generate(chance.New(31), tickets, orgs, emps)
	require.NotEmpty(t, calls)
	assert.Equal(t, []int{41}, stats.Orphans)
	assert.Equal(t, 40, stats.Considered)

	byID := map[int]model.Ticket{}
	for _, tk := range tickets {
		byID[tk.TicketID] = tk
	}
	var handoffs []string
	for _, e := range escalationByTrack {
		handoffs = append(handoffs, e.handoffs...)
	}

	escalated := 0
	for i, c := range calls {
		assert.Equal(t, i+1, c.TranscriptID)
		tk, ok := byID[c.TicketID]
		require.True(t, ok)

		assert.GreaterOrEqual(t, c.CallDuration, MinDuration)
		assert.LessOrEqual(t, c.CallDuration, MaxDuration)
		assert.False(t, c.CallDate.Before(tk.CreatedAt))
		assert.False(t, c.CallDate.After(tk.WindowEnd()))
		assert.True(t, c.CustomerSatisfaction >= 1 && c.CustomerSatisfaction <= 5)
		if c.CustomerSatisfaction < 3 {
			assert.False(t, c.ResolutionProvided)
		}
		if c.CustomerSatisfaction <= 3 {
			assert.True(t, c.FollowUpNeeded)
		}

		emp := emps[(tk.TicketID-1)%2]
		assert.Contains(t, c.Text, fmt.Sprintf("Customer (%s): ", emp.FullName()))
		assert.Contains(t, c.Text, fmt.Sprintf("Agent (%s): ", c.AgentName))

		if c.CallDuration > EscalateAfter {
			escalated++
			assert.True(t, containsAny(c.Text, handoffs), "urgent call of %ds has no escalation", c.CallDuration)
		}
	}
	assert.Positive(t, escalated)
}

func stageEnv(t *testing.T) *pipeline.Env {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.Seed = 23
	env, err := pipeline.NewEnv(cfg, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	require.NoError(t, err)
	return env
}

func TestStageWritesTranscripts(t *testing.T) {
	env := stageEnv(t)
	tickets, orgs, emps := fixture()
	require.NoError(t, dataset.WriteOrganizations(env.Paths.Customers(), orgs))
	require.NoError(t, dataset.WriteEmployees(env.Paths.Employees(), emps))
	require.NoError(t, dataset.WriteTickets(env.Paths.Tickets(), tickets))

	st, ok := pipeline.Get(StageName)
	require.True(t, ok)
	res, err := st.Run(context.Background(), env)
	require.NoError(t, err)

	written, err := dataset.ReadTranscripts(env.Paths.Transcripts())
	require.NoError(t, err)
	require.Len(t, written, res.Records["call_transcripts"])
	require.NotEmpty(t, written)
	assert.Contains(t, written[0].Text, "\n\nCustomer (")
}

func TestStageRequiresTickets(t *testing.T) {
	env := stageEnv(t)
	st, _ := pipeline.Get(StageName)
	_, err := st.Run(context.Background(), env)
	assert.ErrorIs(t, err, dataset.ErrMissingInput)
}
