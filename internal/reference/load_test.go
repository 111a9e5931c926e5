package reference

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecodeStates_JSON(t *testing.T) {
	d, err := DecodeStates(strings.NewReader(`{"Massachusetts": "MA", "New York": "NY"}`))
	if err != nil {
		t.Fatalf("DecodeStates() error = %v", err)
	}
	if d.Len() != 2 {
		t.Errorf("Len() = %d, want 2", d.Len())
	}
	if code, _ := d.CodeForName("New York"); code != "NY" {
		t.Errorf("CodeForName(New York) = %q, want NY", code)
	}
}

func TestDecodeStates_YAML(t *testing.T) {
	doc := "Massachusetts: MA\nNew York: NY\n"
	d, err := DecodeStates(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("DecodeStates() error = %v", err)
	}
	if !d.IsCode("MA") || !d.IsCode("NY") {
		t.Error("expected MA and NY codes")
	}
}

func TestDecodeStates_Empty(t *testing.T) {
	if _, err := DecodeStates(strings.NewReader("")); err == nil {
		t.Error("DecodeStates() expected error for empty document")
	}
}

func TestDecodeZips_KeepsLeadingZeros(t *testing.T) {
	doc := `{"MA": ["02109", "01001"], "New York": ["10001"]}`
	d, err := DecodeZips(strings.NewReader(doc), DefaultStates())
	if err != nil {
		t.Fatalf("DecodeZips() error = %v", err)
	}
	if !d.InState("MA", "01001") {
		t.Error("InState(MA, 01001) = false, want true")
	}
	if !d.InState("NY", "10001") {
		t.Error("InState(NY, 10001) = false, want true")
	}
}

func TestLoadStates_EmptyPathUsesDefaults(t *testing.T) {
	d, err := LoadStates("")
	if err != nil {
		t.Fatalf("LoadStates() error = %v", err)
	}
	if d.Len() != len(UsStates) {
		t.Errorf("Len() = %d, want %d", d.Len(), len(UsStates))
	}
}

func TestLoadZips_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zips.json")
	if err := os.WriteFile(path, []byte(`{"Massachusetts": ["02109"]}`), 0644); err != nil {
		t.Fatal(err)
	}

	d, err := LoadZips(path, DefaultStates())
	if err != nil {
		t.Fatalf("LoadZips() error = %v", err)
	}
	if !d.InState("MA", "02109") {
		t.Error("InState(MA, 02109) = false, want true")
	}
}

func TestLoadZips_MissingFile(t *testing.T) {
	_, err := LoadZips(filepath.Join(t.TempDir(), "nope.json"), DefaultStates())
	if err == nil {
		t.Fatal("LoadZips() expected error for missing file")
	}
	if !strings.Contains(err.Error(), "open zips reference file") {
		t.Errorf("error = %v, want open failure", err)
	}
}
