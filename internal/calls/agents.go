// ABOUTME: Support agent profiles and caller personalities.
// ABOUTME: Style, experience and technical comfort gate dialogue branches and durations.

package calls

type Experience string

const (
	Junior Experience = "junior"
	Mid    Experience = "mid"
	Senior Experience = "senior"
)

type Style string

const (
	StyleConsultative Style = "consultative"
	StyleEfficient    Style = "efficient"
	StyleTechnical    Style = "technical"
	StyleEmpathetic   Style = "empathetic"
	StyleEducational  Style = "educational"
)

type Agent struct {
	Name        string
	Style       Style
	Experience  Experience
	Specialty   string
	Personality string
}

var Agents = []Agent{
	{"Sarah Wilson", StyleConsultative, Senior, "billing_issues", "detail_oriented"},
	{"Mike Johnson", StyleEfficient, Mid, "technical_support", "results_focused"},
	{"Emily Davis", StyleTechnical, Senior, "integrations", "tech_savvy"},
	{"Chris Brown", StyleEmpathetic, Junior, "customer_onboarding", "relationship_builder"},
	{"Jessica Garcia", StyleEducational, Senior, "training", "growth_minded"},
	{"David Miller", StyleConsultative, Mid, "feature_consulting", "analytical"},
	{"Amanda Rodriguez", StyleEmpathetic, Senior, "retention", "relationship_builder"},
	{"Kevin Lee", StyleEfficient, Mid, "quick_fixes", "results_focused"},
	{"Rachel Thompson", StyleEducational, Senior, "complex_issues", "detail_oriented"},
	{"James Martinez", StyleTechnical, Junior, "system_troubleshooting", "tech_savvy"},
}

// Level is a coarse low/medium/high trait.
type Level string

const (
	Low    Level = "low"
	Medium Level = "medium"
	High   Level = "high"
)

// Persona is how a caller behaves on the phone.
type Persona struct {
	Name              string
	QuestionFrequency Level
	TechnicalComfort  Level
}

const (
	DetailOriented      = "detail_oriented"
	ResultsFocused      = "results_focused"
	RelationshipBuilder = "relationship_builder"
	TechSavvy           = "tech_savvy"
	Cautious            = "cautious"
	GrowthMinded        = "growth_minded"
)

var Personas = []Persona{
	{DetailOriented, High, Medium},
	{ResultsFocused, Low, Medium},
	{RelationshipBuilder, Medium, Low},
	{TechSavvy, High, High},
	{Cautious, High, Low},
	{GrowthMinded, Medium, Medium},
}
