package reference

import (
	"errors"
	"strings"
	"testing"
)

func testZips(t *testing.T) *ZipDirectory {
	t.Helper()
	d, err := NewZipDirectory(ZipsFile{
		"MA":         {"02109", "02110"},
		"California": {"90210"},
	}, DefaultStates())
	if err != nil {
		t.Fatalf("NewZipDirectory() error = %v", err)
	}
	return d
}

func TestZipDirectory_Lookups(t *testing.T) {
	d := testZips(t)

	if !d.Contains("02109") {
		t.Error("Contains(02109) = false, want true")
	}
	if d.Contains("2109") {
		t.Error("Contains(2109) = true, want false")
	}
	if !d.InState("MA", "02109") {
		t.Error("InState(MA, 02109) = false, want true")
	}
	if d.InState("MA", "90210") {
		t.Error("InState(MA, 90210) = true, want false")
	}
	if !d.InState("CA", "90210") {
		t.Error("name key should resolve to CA")
	}
	if d.InState("ZZ", "90210") {
		t.Error("InState on unknown state should be false")
	}
	if d.Len() != 3 {
		t.Errorf("Len() = %d, want 3", d.Len())
	}
	if got := strings.Join(d.States(), ","); got != "CA,MA" {
		t.Errorf("States() = %q, want CA,MA", got)
	}
	if got := strings.Join(d.Zips("MA"), ","); got != "02109,02110" {
		t.Errorf("Zips(MA) = %q", got)
	}
}

func TestNewZipDirectory_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   ZipsFile
		wantErr error
	}{
		{name: "unknown state", input: ZipsFile{"Atlantis": {"00001"}}, wantErr: ErrUnknownState},
		{name: "four digit zip", input: ZipsFile{"MA": {"2109"}}, wantErr: ErrInvalidZip},
		{name: "zip plus four", input: ZipsFile{"MA": {"02109-1234"}}, wantErr: ErrInvalidZip},
		{name: "letters", input: ZipsFile{"MA": {"0210A"}}, wantErr: ErrInvalidZip},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewZipDirectory(tt.input, DefaultStates())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewZipDirectory() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsZipFormat(t *testing.T) {
	tests := map[string]bool{
		"02109":  true,
		"99999":  true,
		"2109":   false,
		"021090": false,
		"0210a":  false,
		"":       false,
	}
	for in, want := range tests {
		if got := IsZipFormat(in); got != want {
			t.Errorf("IsZipFormat(%q) = %v, want %v", in, got, want)
		}
	}
}
