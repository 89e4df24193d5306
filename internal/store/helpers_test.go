// ABOUTME: Tests for SQL helper functions.
// ABOUTME: Tests LIKE escaping edge cases and NULL conversion of empty cells.

package store

import (
	"testing"
	"time"
)

func TestEscapeSQLLike(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "stage name with underscore",
			input:    "ticket_metrics",
			expected: "ticket\\_metrics",
		},
		{
			name:     "percent wildcard",
			input:    "calls%",
			expected: "calls\\%",
		},
		{
			name:     "backslash escape character",
			input:    "a\\b",
			expected: "a\\\\b",
		},
		{
			name:     "mixed special characters",
			input:    "x%_y\\z",
			expected: "x\\%\\_y\\\\z",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeSQLLike(tt.input); got != tt.expected {
				t.Errorf("escapeSQLLike(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNullConversions(t *testing.T) {
	if nullTime(time.Time{}) != nil {
		t.Error("zero time should be NULL")
	}
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := nullTime(ts); got != "2024-01-02 03:04:05" {
		t.Errorf("nullTime() = %v", got)
	}
	if got := nullDate(ts); got != "2024-01-02" {
		t.Errorf("nullDate() = %v", got)
	}
	if nullString("") != nil {
		t.Error("empty string should be NULL")
	}
	if got := jsonList(nil); got != "[]" {
		t.Errorf("jsonList(nil) = %q, want []", got)
	}
}
