// ABOUTME: Column sets and codecs for the five helpdesk entities.
// ABOUTME: File names under the data directory are fixed.

package dataset

import (
	"path/filepath"
	"strconv"

	"github.com/2389/deskgen/internal/model"
)

// File names inside the data directory.
const (
	CustomersFile   = "zendesk_customers.csv"
	EmployeesFile   = "zendesk_employees.csv"
	TicketsFile     = "zendesk_tickets.csv"
	MetricsFile     = "ticket_metrics.csv"
	TranscriptsFile = "call_transcripts.csv"
)

// Paths resolves entity files under one data directory.
type Paths struct {
	Dir string
}

func (p Paths) Customers() string   { return filepath.Join(p.Dir, CustomersFile) }
func (p Paths) Employees() string   { return filepath.Join(p.Dir, EmployeesFile) }
func (p Paths) Tickets() string     { return filepath.Join(p.Dir, TicketsFile) }
func (p Paths) Metrics() string     { return filepath.Join(p.Dir, MetricsFile) }
func (p Paths) Transcripts() string { return filepath.Join(p.Dir, TranscriptsFile) }

var CustomerColumns = []string{
	"customer_id", "organization_name", "organization_type", "organization_subtype",
	"size_category", "employee_count", "subscription_tier", "monthly_revenue",
	"setup_date", "primary_contact_name", "primary_contact_email", "primary_contact_phone",
	"street_address", "city", "state", "zip_code", "time_zone", "payment_methods",
	"integration_count", "last_login_date", "support_tier", "created_at", "updated_at",
}

var EmployeeColumns = []string{
	"employee_id", "customer_id", "first_name", "last_name", "email", "phone", "title",
	"role", "department", "hire_date", "is_primary_contact", "is_active",
	"last_login_date", "training_completed", "permissions", "created_at", "updated_at",
}

var TicketColumns = []string{
	"ticket_id", "customer_id", "employee_id", "description", "category", "status",
	"priority", "type", "via_channel", "satisfaction_rating", "satisfaction_comment",
	"tags", "due_at", "created_at", "updated_at", "solved_at",
}

var MetricColumns = []string{
	"metric_id", "ticket_id", "first_resolution_time", "full_resolution_time",
	"agent_work_time", "requester_wait_time", "reply_time", "group_stations",
	"assignee_stations", "reopens", "replies", "assignee_updated_at",
	"requester_updated_at", "status_updated_at", "initially_assigned_at", "assigned_at",
	"solved_at",
}

var TranscriptColumns = []string{
	"transcript_id", "ticket_id", "call_duration", "transcript_text", "call_date",
	"agent_name", "customer_satisfaction", "resolution_provided", "follow_up_needed",
}

// ReadOrganizations loads zendesk_customers.csv.
func ReadOrganizations(path string) ([]model.Organization, error) {
	return readAll(path, func(r *row) model.Organization {
		return model.Organization{
			CustomerID:       r.str("customer_id"),
			Name:             r.str("organization_name"),
			Type:             model.OrgType(r.str("organization_type")),
			Subtype:          r.str("organization_subtype"),
			Size:             model.SizeCategory(r.str("size_category")),
			EmployeeCount:    r.int("employee_count"),
			Tier:             model.Tier(r.str("subscription_tier")),
			MonthlyRevenue:   r.float("monthly_revenue"),
			SetupDate:        r.date("setup_date"),
			ContactName:      r.str("primary_contact_name"),
			ContactEmail:     r.str("primary_contact_email"),
			ContactPhone:     r.str("primary_contact_phone"),
			StreetAddress:    r.str("street_address"),
			City:             r.str("city"),
			State:            r.str("state"),
			ZipCode:          r.str("zip_code"),
			TimeZone:         r.str("time_zone"),
			PaymentMethods:   r.list("payment_methods"),
			IntegrationCount: r.int("integration_count"),
			LastLoginDate:    r.date("last_login_date"),
			SupportTier:      r.str("support_tier"),
			CreatedAt:        r.time("created_at"),
			UpdatedAt:        r.time("updated_at"),
		}
	})
}

// WriteOrganizations replaces zendesk_customers.csv.
func WriteOrganizations(path string, orgs []model.Organization) error {
	rows := make([][]string, 0, len(orgs))
	for _, o := range orgs {
		rows = append(rows, []string{
			o.CustomerID, o.Name, string(o.Type), o.Subtype, string(o.Size),
			strconv.Itoa(o.EmployeeCount), string(o.Tier),
			strconv.FormatFloat(o.MonthlyRevenue, 'f', 2, 64),
			formatDate(o.SetupDate), o.ContactName, o.ContactEmail, o.ContactPhone,
			o.StreetAddress, o.City, o.State, o.ZipCode, o.TimeZone,
			formatList(o.PaymentMethods), strconv.Itoa(o.IntegrationCount),
			formatDate(o.LastLoginDate), o.SupportTier,
			formatTime(o.CreatedAt), formatTime(o.UpdatedAt),
		})
	}
	return WriteTable(path, CustomerColumns, rows)
}

// ReadEmployees loads zendesk_employees.csv.
func ReadEmployees(path string) ([]model.Employee, error) {
	return readAll(path, func(r *row) model.Employee {
		return model.Employee{
			EmployeeID:        r.str("employee_id"),
			CustomerID:        r.str("customer_id"),
			FirstName:         r.str("first_name"),
			LastName:          r.str("last_name"),
			Email:             r.str("email"),
			Phone:             r.str("phone"),
			Title:             r.str("title"),
			Role:              model.Role(r.str("role")),
			Department:        r.str("department"),
			HireDate:          r.date("hire_date"),
			IsPrimaryContact:  r.bool("is_primary_contact"),
			IsActive:          r.bool("is_active"),
			LastLoginDate:     r.date("last_login_date"),
			TrainingCompleted: r.bool("training_completed"),
			Permissions:       r.list("permissions"),
			CreatedAt:         r.time("created_at"),
			UpdatedAt:         r.time("updated_at"),
		}
	})
}

// WriteEmployees replaces zendesk_employees.csv.
func WriteEmployees(path string, emps []model.Employee) error {
	rows := make([][]string, 0, len(emps))
	for _, e := range emps {
		rows = append(rows, []string{
			e.EmployeeID, e.CustomerID, e.FirstName, e.LastName, e.Email, e.Phone,
			e.Title, string(e.Role), e.Department, formatDate(e.HireDate),
			formatBool(e.IsPrimaryContact), formatBool(e.IsActive),
			formatDate(e.LastLoginDate), formatBool(e.TrainingCompleted),
			formatList(e.Permissions), formatTime(e.CreatedAt), formatTime(e.UpdatedAt),
		})
	}
	return WriteTable(path, EmployeeColumns, rows)
}

// ReadTickets loads zendesk_tickets.csv. Files without a category column load with an
// empty Category.
func ReadTickets(path string) ([]model.Ticket, error) {
	return readAll(path, func(r *row) model.Ticket {
		return model.Ticket{
			TicketID:            r.int("ticket_id"),
			CustomerID:          r.str("customer_id"),
			EmployeeID:          r.str("employee_id"),
			Description:         r.str("description"),
			Category:            model.Category(r.opt("category")),
			Status:              model.Status(r.str("status")),
			Priority:            model.Priority(r.str("priority")),
			Type:                model.TicketType(r.str("type")),
			Channel:             model.Channel(r.str("via_channel")),
			Satisfaction:        model.Satisfaction(r.str("satisfaction_rating")),
			SatisfactionComment: r.str("satisfaction_comment"),
			Tags:                r.list("tags"),
			DueAt:               r.time("due_at"),
			CreatedAt:           r.time("created_at"),
			UpdatedAt:           r.time("updated_at"),
			SolvedAt:            r.time("solved_at"),
		}
	})
}

// WriteTickets replaces zendesk_tickets.csv.
func WriteTickets(path string, tickets []model.Ticket) error {
	rows := make([][]string, 0, len(tickets))
	for _, t := range tickets {
		rows = append(rows, []string{
			strconv.Itoa(t.TicketID), t.CustomerID, t.EmployeeID, t.Description,
			string(t.Category), string(t.Status), string(t.Priority), string(t.Type),
			string(t.Channel), string(t.Satisfaction), t.SatisfactionComment,
			formatList(t.Tags), formatTime(t.DueAt), formatTime(t.CreatedAt),
			formatTime(t.UpdatedAt), formatTime(t.SolvedAt),
		})
	}
	return WriteTable(path, TicketColumns, rows)
}

// ReadMetrics loads ticket_metrics.csv.
func ReadMetrics(path string) ([]model.TicketMetric, error) {
	return readAll(path, func(r *row) model.TicketMetric {
		return model.TicketMetric{
			MetricID:            r.int("metric_id"),
			TicketID:            r.int("ticket_id"),
			FirstResolutionTime: r.int("first_resolution_time"),
			FullResolutionTime:  r.int("full_resolution_time"),
			AgentWorkTime:       r.int("agent_work_time"),
			RequesterWaitTime:   r.int("requester_wait_time"),
			ReplyTime:           r.int("reply_time"),
			GroupStations:       r.int("group_stations"),
			AssigneeStations:    r.int("assignee_stations"),
			Reopens:             r.int("reopens"),
			Replies:             r.int("replies"),
			AssigneeUpdatedAt:   r.time("assignee_updated_at"),
			RequesterUpdatedAt:  r.time("requester_updated_at"),
			StatusUpdatedAt:     r.time("status_updated_at"),
			InitiallyAssignedAt: r.time("initially_assigned_at"),
			AssignedAt:          r.time("assigned_at"),
			SolvedAt:            r.time("solved_at"),
		}
	})
}

// WriteMetrics replaces ticket_metrics.csv.
func WriteMetrics(path string, metrics []model.TicketMetric) error {
	rows := make([][]string, 0, len(metrics))
	for _, m := range metrics {
		rows = append(rows, []string{
			strconv.Itoa(m.MetricID), strconv.Itoa(m.TicketID),
			strconv.Itoa(m.FirstResolutionTime), strconv.Itoa(m.FullResolutionTime),
			strconv.Itoa(m.AgentWorkTime), strconv.Itoa(m.RequesterWaitTime),
			strconv.Itoa(m.ReplyTime), strconv.Itoa(m.GroupStations),
			strconv.Itoa(m.AssigneeStations), strconv.Itoa(m.Reopens),
			strconv.Itoa(m.Replies), formatTime(m.AssigneeUpdatedAt),
			formatTime(m.RequesterUpdatedAt), formatTime(m.StatusUpdatedAt),
			formatTime(m.InitiallyAssignedAt), formatTime(m.AssignedAt),
			formatTime(m.SolvedAt),
		})
	}
	return WriteTable(path, MetricColumns, rows)
}

// ReadTranscripts loads call_transcripts.csv.
func ReadTranscripts(path string) ([]model.CallTranscript, error) {
	return readAll(path, func(r *row) model.CallTranscript {
		return model.CallTranscript{
			TranscriptID:         r.int("transcript_id"),
			TicketID:             r.int("ticket_id"),
			CallDuration:         r.int("call_duration"),
			Text:                 r.str("transcript_text"),
			CallDate:             r.time("call_date"),
			AgentName:            r.str("agent_name"),
			CustomerSatisfaction: r.int("customer_satisfaction"),
			ResolutionProvided:   r.bool("resolution_provided"),
			FollowUpNeeded:       r.bool("follow_up_needed"),
		}
	})
}

// WriteTranscripts replaces call_transcripts.csv.
func WriteTranscripts(path string, calls []model.CallTranscript) error {
	rows := make([][]string, 0, len(calls))
	for _, c := range calls {
		rows = append(rows, []string{
			strconv.Itoa(c.TranscriptID), strconv.Itoa(c.TicketID),
			strconv.Itoa(c.CallDuration), c.Text, formatTime(c.CallDate), c.AgentName,
			strconv.Itoa(c.CustomerSatisfaction), formatBool(c.ResolutionProvided),
			formatBool(c.FollowUpNeeded),
		})
	}
	return WriteTable(path, TranscriptColumns, rows)
}
