// ABOUTME: Tests for record helpers.
// ABOUTME: Covers ticket window computation and status resolution.

package model

import (
	"testing"
	"time"
)

func TestTicketWindowEnd(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		ticket Ticket
		want   time.Time
	}{
		{
			name:   "open ticket uses updated_at",
			ticket: Ticket{CreatedAt: created, UpdatedAt: created.Add(48 * time.Hour)},
			want:   created.Add(48 * time.Hour),
		},
		{
			name:   "solved before updated",
			ticket: Ticket{CreatedAt: created, UpdatedAt: created.Add(72 * time.Hour), SolvedAt: created.Add(24 * time.Hour)},
			want:   created.Add(24 * time.Hour),
		},
		{
			name:   "solved without updated",
			ticket: Ticket{CreatedAt: created, SolvedAt: created.Add(5 * time.Hour)},
			want:   created.Add(5 * time.Hour),
		},
		{
			name:   "never before created",
			ticket: Ticket{CreatedAt: created, UpdatedAt: created.Add(-time.Hour)},
			want:   created,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ticket.WindowEnd(); !got.Equal(tt.want) {
				t.Errorf("WindowEnd() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatusResolved(t *testing.T) {
	resolved := map[Status]bool{
		StatusNew: false, StatusOpen: false, StatusPending: false,
		StatusHold: false, StatusSolved: true, StatusClosed: true,
	}
	for status, want := range resolved {
		if got := status.Resolved(); got != want {
			t.Errorf("%s.Resolved() = %v, want %v", status, got, want)
		}
	}
}
