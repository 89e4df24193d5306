// ABOUTME: Transcript assembly as an explicit state machine.
// ABOUTME: Each state appends turns; longer calls pass through extra troubleshooting states.

package calls

import (
	"fmt"
	"strings"
	"time"

	"github.com/2389/deskgen/internal/chance"
	"github.com/2389/deskgen/internal/classify"
	"github.com/2389/deskgen/internal/model"
)

// Duration thresholds, in seconds, that unlock the extended states.
const (
	TroubleshootAfter = 600
	DeepDiveAfter     = 1200
	EscalateAfter     = 1800
)

type state int

const (
	stateGreeting state = iota
	stateAcknowledge
	stateOrgContext
	stateTechnical
	stateClarify
	stateSolution
	stateExpansion
	stateFollowUp
	stateTroubleshoot
	stateDeepDive
	stateEscalate
	stateClosing
	stateDone
)

// dialogue holds everything one call needs to render its turns.
type dialogue struct {
	src          *chance.Source
	agent        Agent
	caller       string
	persona      Persona
	org          orgContext
	brief        string
	track        classify.Track
	satisfaction model.Satisfaction
	duration     int
	at           time.Time

	turns []string
}

// render walks the states from greeting to done and joins the turns with blank lines.
func (d *dialogue) render() string {
	for s := stateGreeting; s != stateDone; s = d.step(s) {
	}
	return strings.Join(d.turns, "\n\n")
}

func (d *dialogue) step(s state) state {
	switch s {
	case stateGreeting:
		d.greet()
		return stateAcknowledge
	case stateAcknowledge:
		d.agentSays(chance.Choice(d.src, empathyLines) + ". " + chance.Choice(d.src, investigationLines))
		return stateOrgContext
	case stateOrgContext:
		if d.src.Chance(0.4) {
			d.agentSays(fmt.Sprintf("I understand this is particularly challenging during %s, especially for your %s.",
				chance.Choice(d.src, d.org.seasonal), chance.Choice(d.src, d.org.terminology)))
		}
		return stateTechnical
	case stateTechnical:
		if d.persona.TechnicalComfort == High && d.agent.Style == StyleTechnical {
			d.agentSays(chance.Choice(d.src, technicalDeepDive))
			if d.persona.QuestionFrequency == High {
				d.callerSays(fmt.Sprintf("Yes, specifically we're seeing this in our %s.", chance.Choice(d.src, technicalAreas)))
			}
		}
		return stateClarify
	case stateClarify:
		if d.src.Chance(0.6) {
			line := strings.NewReplacer(
				"{specific_issue}", chance.Choice(d.src, clarifiedIssues),
				"{timeframe}", chance.Choice(d.src, clarifiedTimeframes),
			).Replace(chance.Choice(d.src, clarifications))
			d.agentSays(line)
			d.callerSays("That's exactly right.")
		}
		return stateSolution
	case stateSolution:
		d.agentSays(chance.Choice(d.src, solutionLines) + ". " + chance.Choice(d.src, explanationLines))
		return stateExpansion
	case stateExpansion:
		if (d.persona.Name == GrowthMinded || d.persona.Name == TechSavvy) && d.src.Chance(0.3) {
			d.agentSays(chance.Choice(d.src, expansions))
			if d.persona.QuestionFrequency != Low {
				d.callerSays("I'd be interested to hear about those additional options.")
			}
		}
		return stateFollowUp
	case stateFollowUp:
		d.agentSays(chance.Choice(d.src, followUps))
		return d.extendPast(TroubleshootAfter, stateTroubleshoot)
	case stateTroubleshoot:
		ts := troubleshootingByTrack[d.track]
		d.agentSays(chance.Choice(d.src, ts.steps))
		d.callerSays(chance.Choice(d.src, ts.concerns))
		d.agentSays(chance.Choice(d.src, ts.responses))
		return d.extendPast(DeepDiveAfter, stateDeepDive)
	case stateDeepDive:
		dd, ok := deepDiveByTrack[d.track]
		if !ok {
			dd = deepDiveByTrack[classify.TrackGeneral]
		}
		d.agentSays(chance.Choice(d.src, dd.discussion))
		for i, n := 0, d.src.IntBetween(2, 4); i < n; i++ {
			d.callerSays(chance.Choice(d.src, dd.questions))
			d.agentSays(chance.Choice(d.src, dd.explanations))
		}
		return d.extendPast(EscalateAfter, stateEscalate)
	case stateEscalate:
		esc, ok := escalationByTrack[d.track]
		if !ok {
			esc = escalationByTrack[classify.TrackGeneral]
		}
		d.agentSays(chance.Choice(d.src, esc.handoffs))
		d.agentSays(chance.Choice(d.src, esc.plans))
		return stateClosing
	case stateClosing:
		closing, ok := closings[d.satisfaction]
		if !ok {
			closing = defaultClosing
		}
		d.callerSays(closing)
		return stateDone
	}
	return stateDone
}

// extendPast moves to next when the call runs longer than threshold seconds,
// otherwise straight to the closing.
func (d *dialogue) extendPast(threshold int, next state) state {
	if d.duration > threshold {
		return next
	}
	return stateClosing
}

func (d *dialogue) greet() {
	first := strings.Fields(d.agent.Name)[0]
	r := strings.NewReplacer(
		"{agent_name}", first,
		"{time_of_day}", timeOfDay(d.at.Hour()),
		"{issue_brief}", d.brief,
	)
	d.agentSays(r.Replace(chance.Choice(d.src, agentGreetings)))
	d.callerSays(d.colour(r.Replace(chance.Choice(d.src, customerOpenings))))
}

// colour applies the caller's personality to their opening line.
func (d *dialogue) colour(text string) string {
	switch d.persona.Name {
	case DetailOriented:
		if d.src.Chance(0.3) {
			text += fmt.Sprintf(" - this happened at approximately %d:%02d", d.src.IntBetween(8, 17), d.src.IntBetween(10, 59))
		}
	case ResultsFocused:
		if d.src.Chance(0.3) {
			text, _, _ = strings.Cut(text, ".")
			text += ". How quickly can this be resolved?"
		}
	case RelationshipBuilder:
		if d.src.Chance(0.2) {
			text += fmt.Sprintf(" Our %s is really counting on getting this fixed.",
				chance.Choice(d.src, []string{"team", "volunteers", "board"}))
		}
	}
	return text
}

func (d *dialogue) agentSays(line string) {
	d.turns = append(d.turns, fmt.Sprintf("Agent (%s): %s", d.agent.Name, line))
}

func (d *dialogue) callerSays(line string) {
	d.turns = append(d.turns, fmt.Sprintf("Customer (%s): %s", d.caller, line))
}

func timeOfDay(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 17:
		return "afternoon"
	default:
		return "evening"
	}
}

// issueBrief is the caller's one-line summary of the ticket. Most calls restate the
// ticket description; the rest draw from the category's problem pool.
func issueBrief(src *chance.Source, description string, r classify.Result) string {
	category := r.IssueCategory()
	if src.Chance(0.7) {
		for _, b := range alignedBriefs {
			if b.matcher.Match(description) {
				return b.brief
			}
		}
		return strings.ReplaceAll(string(category), "_", " ")
	}
	return chance.Choice(src, problemDescriptions[category])
}
