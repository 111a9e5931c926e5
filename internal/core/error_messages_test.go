package core

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/JonMunkholm/dataquality/internal/reference"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil error returns empty", nil, ""},
		{"missing column", fmt.Errorf("%w: zip, email", ErrMissingColumns), "VAL001"},
		{"empty input", ErrEmptyInput, "FILE006"},
		{"ragged row", fmt.Errorf("%w: row 3 has 4 columns, expected 5", ErrRaggedRow), "FILE007"},
		{"input too large", ErrInputTooLarge, "FILE005"},
		{"missing input file", fmt.Errorf("input file %q: %w", "x.csv", fs.ErrNotExist), "FILE003"},
		{"permission denied", fmt.Errorf("open out.csv: %w", fs.ErrPermission), "FILE004"},
		{"duplicate state", fmt.Errorf("%w: code MA used by %q and %q", reference.ErrDuplicateState, "Massachusetts", "Mass"), "REF001"},
		{"invalid reference zip", fmt.Errorf("%w: %q for MA", reference.ErrInvalidZip, "2109"), "REF005"},
		{"reference file wraps not-found", fmt.Errorf("open zips reference file: %w", fs.ErrNotExist), "REF007"},
		{"too many scans", ErrTooManyScans, "SCAN001"},
		{"cancelled", fmt.Errorf("scan: %w", context.Canceled), "SCAN002"},
		{"deadline", fmt.Errorf("scan: %w", context.DeadlineExceeded), "SCAN003"},
		{"case insensitive", errors.New("INVALID CSV: bare quote"), "FILE007"},
		{"unknown error returns default", errors.New("some random internal error"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
		})
	}
}

func TestMapError_PhoneFormat(t *testing.T) {
	_, err := ParsePhoneFormat("dots")
	if got := MapError(err).Code; got != "CFG001" {
		t.Errorf("code = %q, want CFG001", got)
	}
}

func TestFormatUserError(t *testing.T) {
	err := fmt.Errorf("%w: email", ErrMissingColumns)

	expected := "Required column is missing from CSV (Code: VAL001). Include social_security, state, zip, phone1 and email headers"
	if got := FormatUserError(err); got != expected {
		t.Errorf("FormatUserError() = %q, want %q", got, expected)
	}
	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error is not user facing", nil, false},
		{"known error is user facing", ErrEmptyInput, true},
		{"unknown error is not user facing", errors.New("random internal error xyz"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewUserError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		if got := NewUserError(nil); got != nil {
			t.Errorf("NewUserError(nil) = %v, want nil", got)
		}
	})

	t.Run("wraps technical error with user message", func(t *testing.T) {
		userErr := NewUserError(ErrTooManyScans)

		if userErr.Error() != "Too many scans in progress" {
			t.Errorf("Error() = %q, want user message", userErr.Error())
		}
		if !errors.Is(userErr, ErrTooManyScans) {
			t.Error("Unwrap() should return original error")
		}
	})
}
