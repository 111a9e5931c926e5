package reference

import (
	"errors"
	"testing"
)

func TestDefaultStates(t *testing.T) {
	d := DefaultStates()

	if d.Len() != 51 {
		t.Errorf("Len() = %d, want 51", d.Len())
	}
	if !d.IsCode("MA") {
		t.Error("IsCode(MA) = false, want true")
	}
	if code, ok := d.CodeForName("Massachusetts"); !ok || code != "MA" {
		t.Errorf("CodeForName(Massachusetts) = %q, %v, want MA, true", code, ok)
	}
	if name, ok := d.NameForCode("DC"); !ok || name != "District of Columbia" {
		t.Errorf("NameForCode(DC) = %q, %v", name, ok)
	}
}

func TestStateDirectory_Resolve(t *testing.T) {
	d := DefaultStates()

	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "exact code", input: "NY", want: "NY", wantOK: true},
		{name: "exact name", input: "New York", want: "NY", wantOK: true},
		{name: "lowercase code is not exact", input: "ny", wantOK: false},
		{name: "lowercase name is not exact", input: "new york", wantOK: false},
		{name: "unknown", input: "xx", wantOK: false},
		{name: "empty", input: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := d.Resolve(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Resolve(%q) = %q, %v, want %q, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestStateDirectory_Match(t *testing.T) {
	d := DefaultStates()

	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{input: "ma", want: "MA", wantOK: true},
		{input: "Ma", want: "MA", wantOK: true},
		{input: "massachusetts", want: "MA", wantOK: true},
		{input: "MASSACHUSETTS", want: "MA", wantOK: true},
		{input: "new york", want: "NY", wantOK: true},
		{input: "district of columbia", want: "DC", wantOK: true},
		{input: "District Of Columbia", want: "DC", wantOK: true},
		{input: "xx", wantOK: false},
		{input: "Mass", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := d.Match(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Match(%q) = %q, %v, want %q, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNewStateDirectory_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   map[string]string
		wantErr error
	}{
		{
			name:    "duplicate code",
			input:   map[string]string{"Massachusetts": "MA", "Mass": "MA"},
			wantErr: ErrDuplicateState,
		},
		{
			name:    "case-insensitive duplicate name",
			input:   map[string]string{"Texas": "TX", "TEXAS": "TE"},
			wantErr: ErrDuplicateState,
		},
		{
			name:    "lowercase code",
			input:   map[string]string{"Texas": "tx"},
			wantErr: ErrInvalidStateCode,
		},
		{
			name:    "three letter code",
			input:   map[string]string{"Texas": "TEX"},
			wantErr: ErrInvalidStateCode,
		},
		{
			name:    "empty name",
			input:   map[string]string{" ": "TX"},
			wantErr: ErrEmptyStateName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStateDirectory(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewStateDirectory() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestStateDirectory_Codes(t *testing.T) {
	d, err := NewStateDirectory(map[string]string{"Texas": "TX", "Alaska": "AK", "Ohio": "OH"})
	if err != nil {
		t.Fatalf("NewStateDirectory() error = %v", err)
	}

	got := d.Codes()
	want := []string{"AK", "OH", "TX"}
	if len(got) != len(want) {
		t.Fatalf("Codes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Codes()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
