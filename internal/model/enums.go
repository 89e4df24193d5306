// ABOUTME: Enumerations shared by every generation stage.
// ABOUTME: String-backed so they serialize directly into CSV cells.

package model

// OrgType is the broad kind of customer organization.
type OrgType string

const (
	OrgFaith       OrgType = "faith"
	OrgSchool      OrgType = "school"
	OrgNonprofit   OrgType = "nonprofit"
	OrgChildcare   OrgType = "childcare"
	OrgCommunityEd OrgType = "community_ed"
)

// OrgTypes lists organization types in generation order.
var OrgTypes = []OrgType{OrgFaith, OrgSchool, OrgNonprofit, OrgChildcare, OrgCommunityEd}

type SizeCategory string

const (
	SizeSmall  SizeCategory = "small"
	SizeMedium SizeCategory = "medium"
	SizeLarge  SizeCategory = "large"
)

type Tier string

const (
	TierBasic    Tier = "basic"
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
)

// Role is an employee's access role inside the helpdesk account.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleFinance   Role = "finance"
	RoleVolunteer Role = "volunteer"
	RoleDirector  Role = "director"
	RoleTeacher   Role = "teacher"
)

// Category is the ticket subject area.
type Category string

const (
	CategoryPaymentProcessing Category = "payment_processing"
	CategorySetup             Category = "setup"
	CategoryTraining          Category = "training"
	CategoryIntegration       Category = "integration"
	CategoryBilling           Category = "billing"
	CategoryFeatureRequest    Category = "feature_request"
	CategoryBugReport         Category = "bug_report"
)

// Categories lists ticket categories in table order.
var Categories = []Category{
	CategoryPaymentProcessing, CategorySetup, CategoryTraining, CategoryIntegration,
	CategoryBilling, CategoryFeatureRequest, CategoryBugReport,
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

type Status string

const (
	StatusNew     Status = "new"
	StatusOpen    Status = "open"
	StatusPending Status = "pending"
	StatusHold    Status = "hold"
	StatusSolved  Status = "solved"
	StatusClosed  Status = "closed"
)

// Resolved reports whether the ticket carries a solved_at timestamp.
func (s Status) Resolved() bool {
	return s == StatusSolved || s == StatusClosed
}

type Channel string

const (
	ChannelWeb   Channel = "web"
	ChannelEmail Channel = "email"
	ChannelPhone Channel = "phone"
	ChannelChat  Channel = "chat"
)

// Satisfaction is the optional customer rating on a resolved ticket. The empty value
// means the requester never rated.
type Satisfaction string

const (
	SatisfactionNone    Satisfaction = ""
	SatisfactionGood    Satisfaction = "good"
	SatisfactionNeutral Satisfaction = "neutral"
	SatisfactionBad     Satisfaction = "bad"
)

// TicketType is the helpdesk ticket kind.
type TicketType string

const (
	TypeQuestion TicketType = "question"
	TypeIncident TicketType = "incident"
	TypeProblem  TicketType = "problem"
	TypeTask     TicketType = "task"
)
