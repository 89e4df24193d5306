// ABOUTME: Unit tests for standardized error values
// ABOUTME: Validates formatting, wrapping and code matching

package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"
)

// TestErrorString tests message formatting with the optional parts
func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "message only",
			err:  New(ErrInvalidConfig, "seed must be positive"),
			want: "seed must be positive",
		},
		{
			name: "with path",
			err:  New(ErrMissingInput, "CSV file not found").WithPath("data/x.csv"),
			want: "CSV file not found: data/x.csv",
		},
		{
			name: "with path and line",
			err:  New(ErrMalformedRecord, "bad row").WithPath("t.csv").AtLine(4),
			want: "bad row: t.csv (line 4)",
		},
		{
			name: "with field",
			err:  New(ErrTemplateField, "unknown placeholder").WithField("bogus"),
			want: "unknown placeholder [bogus]",
		},
		{
			name: "wrapped cause",
			err:  Wrap(ErrWriteFailed, "write tickets", fs.ErrPermission),
			want: "write tickets: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestWrapNil tests that wrapping nil yields nil
func TestWrapNil(t *testing.T) {
	if err := Wrap(ErrWriteFailed, "noop", nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

// TestCodeThroughChain tests code lookup through fmt wrapping
func TestCodeThroughChain(t *testing.T) {
	base := New(ErrMissingInput, "tickets file not found").WithPath("a.csv")
	err := fmt.Errorf("metrics stage: %w", base)

	if got := Code(err); got != ErrMissingInput {
		t.Errorf("Code() = %q, want %q", got, ErrMissingInput)
	}
	if !HasCode(err, ErrMissingInput) {
		t.Error("HasCode should match")
	}
	if !stderrors.Is(err, New(ErrMissingInput, "")) {
		t.Error("errors.Is should match by code")
	}
	if stderrors.Is(err, New(ErrWriteFailed, "")) {
		t.Error("errors.Is should not match a different code")
	}
	if Code(fs.ErrNotExist) != "" {
		t.Error("plain errors carry no code")
	}
}

// TestUnwrapCause tests that the cause stays reachable
func TestUnwrapCause(t *testing.T) {
	err := Wrap(ErrMalformedRecord, "parse created_at", fs.ErrInvalid)
	if !stderrors.Is(err, fs.ErrInvalid) {
		t.Error("cause should be reachable with errors.Is")
	}
}
