// ABOUTME: SQL helper functions for query construction.
// ABOUTME: Utilities for escaping LIKE patterns and converting cell values.

package store

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/2389/deskgen/internal/model"
)

// escapeSQLLike escapes SQL LIKE pattern special characters.
// The backslash must be escaped first to avoid double-escaping.
func escapeSQLLike(pattern string) string {
	pattern = strings.ReplaceAll(pattern, "\\", "\\\\")
	pattern = strings.ReplaceAll(pattern, "%", "\\%")
	pattern = strings.ReplaceAll(pattern, "_", "\\_")
	return pattern
}

// nullTime stores zero times as NULL and everything else in the CSV layout.
func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(model.TimeLayout)
}

func nullDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(model.DateLayout)
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// jsonList encodes list columns the same way the CSV files do.
func jsonList(items []string) string {
	if items == nil {
		items = []string{}
	}
	b, _ := json.Marshal(items)
	return string(b)
}
