package core

import (
	"strings"
	"testing"

	"github.com/JonMunkholm/dataquality/internal/reference"
)

func testZips(t testing.TB) *reference.ZipDirectory {
	t.Helper()
	zips, err := reference.NewZipDirectory(map[string][]string{
		"MA": {"02109", "02110"},
		"CA": {"90210"},
		"NY": {"10001"},
		"NJ": {"07001"},
	}, reference.DefaultStates())
	if err != nil {
		t.Fatalf("NewZipDirectory: %v", err)
	}
	return zips
}

func TestIsMissing(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"NA", true},
		{"na", true},
		{"N/A", true},
		{" n/a ", true},
		{"nan", false},
		{"0", false},
		{"MA", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsMissing(tt.input); got != tt.want {
				t.Errorf("IsMissing(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateSocialSecurity(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantOutcome Outcome
		wantRewrite string
	}{
		{"canonical", "123-45-6789", OutcomeCorrect, ""},
		{"bare digits", "123456789", OutcomeReformatted, "123-45-6789"},
		{"other hyphenation", "12-345-6789", OutcomeCorrect, ""},
		{"too short", "12345678", OutcomeBad, ""},
		{"too long", "1234567890", OutcomeBad, ""},
		{"spaces", "123 45 6789", OutcomeBad, ""},
		{"letters", "123-45-678x", OutcomeBad, ""},
		{"empty", "", OutcomeMissing, ""},
		{"placeholder", "N/A", OutcomeMissing, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateSocialSecurity(tt.input, NewSeenSocialSecurityNumbers())
			if got.Outcome != tt.wantOutcome {
				t.Errorf("outcome = %v, want %v", got.Outcome, tt.wantOutcome)
			}
			if got.Rewrite != tt.wantRewrite {
				t.Errorf("rewrite = %q, want %q", got.Rewrite, tt.wantRewrite)
			}
		})
	}
}

func TestValidateSocialSecurity_Duplicates(t *testing.T) {
	seen := NewSeenSocialSecurityNumbers()

	first := ValidateSocialSecurity("123-45-6789", seen)
	if first.Outcome != OutcomeCorrect {
		t.Fatalf("first outcome = %v, want correct", first.Outcome)
	}

	second := ValidateSocialSecurity("123456789", seen)
	if second.Outcome != OutcomeBad || !second.HasReason(ReasonDuplicate) {
		t.Fatalf("second = %+v, want bad duplicate", second)
	}
	if second.HasReason(ReasonInvalid) {
		t.Error("duplicate should not also be invalid")
	}
	if second.Rewrite != "123-45-6789" {
		t.Errorf("rewrite = %q, want %q", second.Rewrite, "123-45-6789")
	}

	third := ValidateSocialSecurity("987-65-4321", seen)
	if third.Outcome != OutcomeCorrect {
		t.Errorf("third outcome = %v, want correct", third.Outcome)
	}

	if got := seen.Len(); got != 2 {
		t.Errorf("seen.Len() = %d, want 2", got)
	}
}

func TestValidateSocialSecurity_InvalidNotTracked(t *testing.T) {
	seen := NewSeenSocialSecurityNumbers()
	ValidateSocialSecurity("1234", seen)
	if got := ValidateSocialSecurity("1234", seen); got.HasReason(ReasonDuplicate) {
		t.Errorf("short value flagged duplicate: %+v", got)
	}
}

func TestValidateState_RoundTrip(t *testing.T) {
	states := reference.DefaultStates()

	for name, code := range states.Names() {
		t.Run(code, func(t *testing.T) {
			if got := ValidateState(code, states); got.Outcome != OutcomeCorrect {
				t.Errorf("code %s: outcome = %v, want correct", code, got.Outcome)
			}

			got := ValidateState(name, states)
			if got.Outcome != OutcomeReformatted || got.Rewrite != code {
				t.Errorf("name %q: got %+v, want reformatted to %s", name, got, code)
			}
		})
	}
}

func TestValidateState(t *testing.T) {
	states := reference.DefaultStates()

	tests := []struct {
		name        string
		input       string
		wantOutcome Outcome
		wantRewrite string
	}{
		{"lowercase code", "ma", OutcomeReformatted, "MA"},
		{"mixed case code", "Ny", OutcomeReformatted, "NY"},
		{"lowercase name", "massachusetts", OutcomeReformatted, "MA"},
		{"uppercase name", "NEW YORK", OutcomeReformatted, "NY"},
		{"odd casing name", "district OF columbia", OutcomeReformatted, "DC"},
		{"unknown code", "xx", OutcomeBad, ""},
		{"unknown name", "Atlantis", OutcomeBad, ""},
		{"padded code", " MA", OutcomeBad, ""},
		{"missing", "na", OutcomeMissing, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateState(tt.input, states)
			if got.Outcome != tt.wantOutcome {
				t.Errorf("outcome = %v, want %v", got.Outcome, tt.wantOutcome)
			}
			if got.Rewrite != tt.wantRewrite {
				t.Errorf("rewrite = %q, want %q", got.Rewrite, tt.wantRewrite)
			}
		})
	}
}

func TestValidateZip(t *testing.T) {
	zips := testZips(t)

	tests := []struct {
		name        string
		input       string
		wantOutcome Outcome
		wantRewrite string
	}{
		{"known zip", "02109", OutcomeCorrect, ""},
		{"dropped leading zero", "2109", OutcomeReformatted, "02109"},
		{"unknown zip", "99999", OutcomeBad, ""},
		{"unknown four digits", "9999", OutcomeBad, ""},
		{"zip plus four", "02109-1234", OutcomeBad, ""},
		{"three digits", "210", OutcomeBad, ""},
		{"missing", "", OutcomeMissing, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateZip(tt.input, zips)
			if got.Outcome != tt.wantOutcome {
				t.Errorf("outcome = %v, want %v", got.Outcome, tt.wantOutcome)
			}
			if got.Rewrite != tt.wantRewrite {
				t.Errorf("rewrite = %q, want %q", got.Rewrite, tt.wantRewrite)
			}
		})
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		format      PhoneFormat
		wantOutcome Outcome
		wantRewrite string
	}{
		{"canonical", "123-456-7890", PhoneHyphenated, OutcomeCorrect, ""},
		{"country code digits", "11234567890", PhoneHyphenated, OutcomeReformatted, "123-456-7890"},
		{"bare digits", "1234567890", PhoneHyphenated, OutcomeReformatted, "123-456-7890"},
		{"parenthesized to hyphen", "(123) 456-7890", PhoneHyphenated, OutcomeReformatted, "123-456-7890"},
		{"plus country code", "+1 (123) 456-7890", PhoneHyphenated, OutcomeReformatted, "123-456-7890"},
		{"hyphen to parenthesized", "123-456-7890", PhoneParenthesized, OutcomeReformatted, "(123) 456-7890"},
		{"parenthesized canonical", "(123) 456-7890", PhoneParenthesized, OutcomeCorrect, ""},
		{"too few digits", "12345", PhoneHyphenated, OutcomeBad, ""},
		{"eleven digits without 1", "21234567890", PhoneHyphenated, OutcomeBad, ""},
		{"dots", "123.456.7890", PhoneHyphenated, OutcomeBad, ""},
		{"letters", "123-456-789O", PhoneHyphenated, OutcomeBad, ""},
		{"extension", "123-456-7890 x12", PhoneHyphenated, OutcomeBad, ""},
		{"missing", "NA", PhoneHyphenated, OutcomeMissing, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidatePhone(tt.input, tt.format)
			if got.Outcome != tt.wantOutcome {
				t.Errorf("outcome = %v, want %v", got.Outcome, tt.wantOutcome)
			}
			if got.Rewrite != tt.wantRewrite {
				t.Errorf("rewrite = %q, want %q", got.Rewrite, tt.wantRewrite)
			}
		})
	}
}

func TestParsePhoneFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    PhoneFormat
		wantErr bool
	}{
		{"", PhoneHyphenated, false},
		{"hyphen", PhoneHyphenated, false},
		{"PAREN", PhoneParenthesized, false},
		{"parenthesized", PhoneParenthesized, false},
		{"dots", PhoneHyphenated, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePhoneFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		input       string
		wantOutcome Outcome
	}{
		{"jane.doe@example.com", OutcomeCorrect},
		{"j_doe-1@mail.example.io", OutcomeCorrect},
		{"jane@example.info", OutcomeBad},
		{"jane@example.c", OutcomeBad},
		{"jane.example.com", OutcomeBad},
		{"jane doe@example.com", OutcomeBad},
		{"jane+tag@example.com", OutcomeBad},
		{"@example.com", OutcomeBad},
		{"n/a", OutcomeMissing},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ValidateEmail(tt.input, nil)
			if got.Outcome != tt.wantOutcome {
				t.Errorf("outcome = %v, want %v", got.Outcome, tt.wantOutcome)
			}
			if got.Rewrite != "" {
				t.Errorf("email rewritten to %q", got.Rewrite)
			}
		})
	}
}

func TestValidateEmail_CustomMatcher(t *testing.T) {
	matcher := func(v string) bool { return strings.HasSuffix(v, ".gov") }

	if got := ValidateEmail("clerk@state.gov", matcher); got.Outcome != OutcomeCorrect {
		t.Errorf("outcome = %v, want correct", got.Outcome)
	}
	if got := ValidateEmail("jane@example.com", matcher); got.Outcome != OutcomeBad {
		t.Errorf("outcome = %v, want bad", got.Outcome)
	}
}

// Every rewrite must validate as Correct on a second pass.
func TestValidators_Idempotent(t *testing.T) {
	states := reference.DefaultStates()
	zips := testZips(t)

	tests := []struct {
		name     string
		validate func(string) Result
		inputs   []string
	}{
		{
			name: "social security",
			validate: func(v string) Result {
				return ValidateSocialSecurity(v, NewSeenSocialSecurityNumbers())
			},
			inputs: []string{"123456789", "000000001"},
		},
		{
			name:     "state",
			validate: func(v string) Result { return ValidateState(v, states) },
			inputs:   []string{"ma", "california", "NEW JERSEY", "district of columbia"},
		},
		{
			name:     "zip",
			validate: func(v string) Result { return ValidateZip(v, zips) },
			inputs:   []string{"2109", "7001"},
		},
		{
			name:     "phone hyphen",
			validate: func(v string) Result { return ValidatePhone(v, PhoneHyphenated) },
			inputs:   []string{"11234567890", "(123) 456-7890", "+1 123 456 7890"},
		},
		{
			name:     "phone paren",
			validate: func(v string) Result { return ValidatePhone(v, PhoneParenthesized) },
			inputs:   []string{"11234567890", "123-456-7890"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, in := range tt.inputs {
				first := tt.validate(in)
				if first.Outcome != OutcomeReformatted {
					t.Fatalf("%q: first outcome = %v, want reformatted", in, first.Outcome)
				}
				second := tt.validate(first.Rewrite)
				if second.Outcome != OutcomeCorrect || second.Rewrite != "" {
					t.Errorf("%q -> %q: second pass = %+v, want correct", in, first.Rewrite, second)
				}
			}
		})
	}
}
