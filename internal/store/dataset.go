// ABOUTME: Bulk import of a generated dataset into the SQLite export.
// ABOUTME: Replaces every dataset table inside one transaction.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/2389/deskgen/internal/model"
)

// Dataset is every entity produced by one pipeline run.
type Dataset struct {
	Organizations []model.Organization
	Employees     []model.Employee
	Tickets       []model.Ticket
	Metrics       []model.TicketMetric
	Transcripts   []model.CallTranscript
}

// ImportCounts reports how many rows landed in each table.
type ImportCounts map[string]int

// ImportDataset replaces the dataset tables with ds. Either everything is written or
// nothing is.
func (s *Store) ImportDataset(ctx context.Context, ds *Dataset) (ImportCounts, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// children first so foreign keys never dangle
	for _, table := range []string{"call_transcripts", "ticket_metrics", "tickets", "employees", "organizations"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return nil, fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	counts := ImportCounts{}
	steps := []struct {
		table string
		fn    func(context.Context, *sql.Tx, *Dataset) (int, error)
	}{
		{"organizations", insertOrganizations},
		{"employees", insertEmployees},
		{"tickets", insertTickets},
		{"ticket_metrics", insertMetrics},
		{"call_transcripts", insertTranscripts},
	}
	for _, step := range steps {
		n, err := step.fn(ctx, tx, ds)
		if err != nil {
			return nil, fmt.Errorf("failed to import %s: %w", step.table, err)
		}
		counts[step.table] = n
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return counts, nil
}

// CountRows returns the number of rows in a dataset table.
func (s *Store) CountRows(ctx context.Context, table string) (int, error) {
	switch table {
	case "organizations", "employees", "tickets", "ticket_metrics", "call_transcripts", "generation_runs":
	default:
		return 0, fmt.Errorf("unknown table %q", table)
	}
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n)
	return n, err
}

func insertOrganizations(ctx context.Context, tx *sql.Tx, ds *Dataset) (int, error) {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO organizations (customer_id, organization_name, organization_type, organization_subtype,
			size_category, employee_count, subscription_tier, monthly_revenue, setup_date,
			primary_contact_name, primary_contact_email, primary_contact_phone, street_address,
			city, state, zip_code, time_zone, payment_methods, integration_count, last_login_date,
			support_tier, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, o := range ds.Organizations {
		if _, err := stmt.ExecContext(ctx, o.CustomerID, o.Name, string(o.Type), o.Subtype,
			string(o.Size), o.EmployeeCount, string(o.Tier), o.MonthlyRevenue, nullDate(o.SetupDate),
			o.ContactName, nullString(o.ContactEmail), o.ContactPhone, o.StreetAddress,
			o.City, o.State, o.ZipCode, o.TimeZone, jsonList(o.PaymentMethods), o.IntegrationCount,
			nullDate(o.LastLoginDate), o.SupportTier, nullTime(o.CreatedAt), nullTime(o.UpdatedAt)); err != nil {
			return 0, fmt.Errorf("%s: %w", o.CustomerID, err)
		}
	}
	return len(ds.Organizations), nil
}

func insertEmployees(ctx context.Context, tx *sql.Tx, ds *Dataset) (int, error) {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO employees (employee_id, customer_id, first_name, last_name, email, phone, title,
			role, department, hire_date, is_primary_contact, is_active, last_login_date,
			training_completed, permissions, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, e := range ds.Employees {
		if _, err := stmt.ExecContext(ctx, e.EmployeeID, e.CustomerID, e.FirstName, e.LastName,
			nullString(e.Email), e.Phone, e.Title, string(e.Role), e.Department, nullDate(e.HireDate),
			e.IsPrimaryContact, e.IsActive, nullDate(e.LastLoginDate), e.TrainingCompleted,
			jsonList(e.Permissions), nullTime(e.CreatedAt), nullTime(e.UpdatedAt)); err != nil {
			return 0, fmt.Errorf("%s: %w", e.EmployeeID, err)
		}
	}
	return len(ds.Employees), nil
}

func insertTickets(ctx context.Context, tx *sql.Tx, ds *Dataset) (int, error) {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tickets (ticket_id, customer_id, employee_id, description, category, status,
			priority, type, via_channel, satisfaction_rating, satisfaction_comment, tags, due_at,
			created_at, updated_at, solved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, t := range ds.Tickets {
		if _, err := stmt.ExecContext(ctx, t.TicketID, t.CustomerID, t.EmployeeID, t.Description,
			nullString(string(t.Category)), string(t.Status), string(t.Priority), string(t.Type),
			string(t.Channel), nullString(string(t.Satisfaction)), nullString(t.SatisfactionComment),
			jsonList(t.Tags), nullTime(t.DueAt), nullTime(t.CreatedAt), nullTime(t.UpdatedAt),
			nullTime(t.SolvedAt)); err != nil {
			return 0, fmt.Errorf("ticket %d: %w", t.TicketID, err)
		}
	}
	return len(ds.Tickets), nil
}

func insertMetrics(ctx context.Context, tx *sql.Tx, ds *Dataset) (int, error) {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO ticket_metrics (metric_id, ticket_id, first_resolution_time, full_resolution_time,
			agent_work_time, requester_wait_time, reply_time, group_stations, assignee_stations,
			reopens, replies, assignee_updated_at, requester_updated_at, status_updated_at,
			initially_assigned_at, assigned_at, solved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, m := range ds.Metrics {
		if _, err := stmt.ExecContext(ctx, m.MetricID, m.TicketID, m.FirstResolutionTime,
			m.FullResolutionTime, m.AgentWorkTime, m.RequesterWaitTime, m.ReplyTime, m.GroupStations,
			m.AssigneeStations, m.Reopens, m.Replies, nullTime(m.AssigneeUpdatedAt),
			nullTime(m.RequesterUpdatedAt), nullTime(m.StatusUpdatedAt),
			nullTime(m.InitiallyAssignedAt), nullTime(m.AssignedAt), nullTime(m.SolvedAt)); err != nil {
			return 0, fmt.Errorf("metric %d: %w", m.MetricID, err)
		}
	}
	return len(ds.Metrics), nil
}

func insertTranscripts(ctx context.Context, tx *sql.Tx, ds *Dataset) (int, error) {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO call_transcripts (transcript_id, ticket_id, call_duration, transcript_text,
			call_date, agent_name, customer_satisfaction, resolution_provided, follow_up_needed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, c := range ds.Transcripts {
		if _, err := stmt.ExecContext(ctx, c.TranscriptID, c.TicketID, c.CallDuration, c.Text,
			nullTime(c.CallDate), c.AgentName, c.CustomerSatisfaction, c.ResolutionProvided,
			c.FollowUpNeeded); err != nil {
			return 0, fmt.Errorf("transcript %d: %w", c.TranscriptID, err)
		}
	}
	return len(ds.Transcripts), nil
}
