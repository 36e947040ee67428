package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Field: "query", Message: "cannot be empty"}

	got := err.Error()
	if !strings.Contains(got, "query") {
		t.Errorf("Error() = %q, should contain field name", got)
	}
	if !strings.Contains(got, "cannot be empty") {
		t.Errorf("Error() = %q, should contain message", got)
	}
}

func TestRowError_Error(t *testing.T) {
	err := &RowError{File: "rooms.csv", Row: 3, Err: errors.New("bad area_m2")}

	got := err.Error()
	if !strings.Contains(got, "rooms.csv") {
		t.Errorf("Error() = %q, should contain file name", got)
	}
	if !strings.Contains(got, "3") {
		t.Errorf("Error() = %q, should contain row number", got)
	}
}

func TestRowError_Unwrap(t *testing.T) {
	inner := errors.New("bad value")
	err := &RowError{File: "doors.csv", Row: 2, Err: inner}

	if !errors.Is(err, inner) {
		t.Error("errors.Is() should match the wrapped error")
	}
}

func TestWrapError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		msg     string
		wantNil bool
	}{
		{
			name:    "nil error returns nil",
			err:     nil,
			msg:     "context",
			wantNil: true,
		},
		{
			name:    "wraps with context",
			err:     ErrConfiguration,
			msg:     "missing API key",
			wantNil: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapError(tt.err, tt.msg)
			if tt.wantNil {
				if got != nil {
					t.Errorf("WrapError() = %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.err) {
				t.Error("WrapError() should preserve the original error for errors.Is")
			}
			if !strings.Contains(got.Error(), tt.msg) {
				t.Errorf("WrapError() = %q, should contain message", got.Error())
			}
		})
	}
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	sentinels := []error{ErrConfiguration, ErrNotFound, ErrExternalService}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %v should not match %v", a, b)
			}
		}
	}

	wrapped := fmt.Errorf("chat failed: %w", ErrConfiguration)
	if !errors.Is(wrapped, ErrConfiguration) {
		t.Error("wrapped configuration error should match ErrConfiguration")
	}
}
