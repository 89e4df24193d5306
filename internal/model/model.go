// ABOUTME: Flat record types for organizations, employees, tickets, metrics and calls.
// ABOUTME: Records are write-once; downstream stages only read them.

package model

import (
	"time"
)

// Timestamp and date layouts used in every CSV file.
const (
	TimeLayout = "2006-01-02 15:04:05"
	DateLayout = "2006-01-02"
)

// Organization is a customer account.
type Organization struct {
	CustomerID       string
	Name             string
	Type             OrgType
	Subtype          string
	Size             SizeCategory
	EmployeeCount    int
	Tier             Tier
	MonthlyRevenue   float64
	SetupDate        time.Time
	ContactName      string
	ContactEmail     string
	ContactPhone     string
	StreetAddress    string
	City             string
	State            string
	ZipCode          string
	TimeZone         string
	PaymentMethods   []string
	IntegrationCount int
	LastLoginDate    time.Time
	SupportTier      string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Employee is a staff member of one organization.
type Employee struct {
	EmployeeID        string
	CustomerID        string
	FirstName         string
	LastName          string
	Email             string
	Phone             string
	Title             string
	Role              Role
	Department        string
	HireDate          time.Time
	IsPrimaryContact  bool
	IsActive          bool
	LastLoginDate     time.Time
	TrainingCompleted bool
	Permissions       []string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// FullName joins first and last name.
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// Ticket is a support request. Zero DueAt and SolvedAt mean the column is empty.
type Ticket struct {
	TicketID            int
	CustomerID          string
	EmployeeID          string
	Description         string
	Category            Category
	Status              Status
	Priority            Priority
	Type                TicketType
	Channel             Channel
	Satisfaction        Satisfaction
	SatisfactionComment string
	Tags                []string
	DueAt               time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
	SolvedAt            time.Time
}

// WindowEnd is the end of the ticket's active window: solved_at when set, otherwise
// updated_at, never earlier than created_at.
func (t Ticket) WindowEnd() time.Time {
	end := t.UpdatedAt
	if !t.SolvedAt.IsZero() && (end.IsZero() || t.SolvedAt.Before(end)) {
		end = t.SolvedAt
	}
	if end.Before(t.CreatedAt) {
		end = t.CreatedAt
	}
	return end
}

// TicketMetric holds derived timing statistics for one ticket. Durations are whole
// hours except AgentWorkTime, which is minutes.
type TicketMetric struct {
	MetricID            int
	TicketID            int
	FirstResolutionTime int
	FullResolutionTime  int
	AgentWorkTime       int
	RequesterWaitTime   int
	ReplyTime           int
	GroupStations       int
	AssigneeStations    int
	Reopens             int
	Replies             int
	AssigneeUpdatedAt   time.Time
	RequesterUpdatedAt  time.Time
	StatusUpdatedAt     time.Time
	InitiallyAssignedAt time.Time
	AssignedAt          time.Time
	SolvedAt            time.Time
}

// CallTranscript is a synthesized phone call tied to one ticket.
type CallTranscript struct {
	TranscriptID         int
	TicketID             int
	CallDuration         int // seconds
	Text                 string
	CallDate             time.Time
	AgentName            string
	CustomerSatisfaction int
	ResolutionProvided   bool
	FollowUpNeeded       bool
}
