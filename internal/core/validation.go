package core

// validation.go classifies and normalizes single field values.
//
// Every validator returns one Outcome per value:
//   - Missing: empty or a placeholder such as "NA"
//   - Bad: content present but not a valid instance of the field
//   - Reformatted: valid content in a non-canonical shape (Rewrite is set)
//   - Correct: valid and already canonical
//
// Validators never fail; a value that cannot be understood is Bad.
// Re-validating a Rewrite always yields Correct.

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/JonMunkholm/dataquality/internal/reference"
)

// IsMissing reports whether a value denotes absent data: empty, "na" or
// "n/a" in any case, ignoring surrounding whitespace.
func IsMissing(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "na", "n/a":
		return true
	default:
		return false
	}
}

// digitsOnly returns the ASCII digits of s in order.
func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// onlyChars reports whether every byte of s is a digit or one of extra.
func onlyChars(s, extra string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' {
			continue
		}
		if strings.IndexByte(extra, c) < 0 {
			return false
		}
	}
	return true
}

/* ----------------------------------------
	Social security numbers
---------------------------------------- */

// SeenSocialSecurityNumbers accumulates digit-only SSNs to detect repeats.
// The first occurrence of a digit sequence is canonical.
type SeenSocialSecurityNumbers struct {
	seen map[string]struct{}
}

// NewSeenSocialSecurityNumbers returns an empty accumulator.
func NewSeenSocialSecurityNumbers() *SeenSocialSecurityNumbers {
	return &SeenSocialSecurityNumbers{seen: make(map[string]struct{})}
}

// Observe records digits and reports whether they had been seen before.
func (s *SeenSocialSecurityNumbers) Observe(digits string) (duplicate bool) {
	if _, ok := s.seen[digits]; ok {
		return true
	}
	s.seen[digits] = struct{}{}
	return false
}

// Len returns the number of distinct SSNs observed.
func (s *SeenSocialSecurityNumbers) Len() int {
	return len(s.seen)
}

// ValidateSocialSecurity classifies an SSN.
//
// A value is invalid unless it has exactly nine digits and no characters
// other than digits and '-'. Any nine-digit sequence is checked against seen;
// a repeat is Bad with ReasonDuplicate regardless of formatting. A bare
// nine-digit value is rewritten to DDD-DD-DDDD; a duplicate keeps that
// rewrite but stays Bad.
func ValidateSocialSecurity(value string, seen *SeenSocialSecurityNumbers) Result {
	if IsMissing(value) {
		return missing()
	}

	d := digitsOnly(value)

	var reasons []Reason
	if len(d) != 9 || !onlyChars(value, "-") {
		reasons = append(reasons, ReasonInvalid)
	}
	if len(d) == 9 && seen.Observe(d) {
		reasons = append(reasons, ReasonDuplicate)
	}

	var rewrite string
	if len(value) == 9 && value == d {
		rewrite = formatSocialSecurity(d)
	}

	switch {
	case len(reasons) > 0:
		res := bad(reasons...)
		res.Rewrite = rewrite
		return res
	case rewrite != "":
		return reformatted(rewrite)
	default:
		return correct()
	}
}

func formatSocialSecurity(d string) string {
	return d[0:3] + "-" + d[3:5] + "-" + d[5:9]
}

/* ----------------------------------------
	States
---------------------------------------- */

// ValidateState classifies a state value against the directory.
//
// An exact two-letter code is Correct. Otherwise the uppercased value is
// tried as a code, then the value is matched to a full name ignoring case;
// either match rewrites the value to its code. No match is Bad and the
// value is left as is.
func ValidateState(value string, states *reference.StateDirectory) Result {
	if IsMissing(value) {
		return missing()
	}
	if states.IsCode(value) {
		return correct()
	}
	if code, ok := states.Match(value); ok {
		return reformatted(code)
	}
	return bad(ReasonInvalid)
}

/* ----------------------------------------
	Zip codes
---------------------------------------- */

// ValidateZip classifies a zip code against the flattened zip set.
// A four-character value whose zero-padded form is a known zip is
// rewritten to that form.
func ValidateZip(value string, zips *reference.ZipDirectory) Result {
	if IsMissing(value) {
		return missing()
	}
	if zips.Contains(value) {
		return correct()
	}
	if len(value) == 4 {
		if padded := "0" + value; zips.Contains(padded) {
			return reformatted(padded)
		}
	}
	return bad(ReasonInvalid)
}

/* ----------------------------------------
	Phone numbers
---------------------------------------- */

// PhoneFormat selects the canonical textual form of a phone number.
type PhoneFormat int

const (
	// PhoneHyphenated renders 123-456-7890.
	PhoneHyphenated PhoneFormat = iota
	// PhoneParenthesized renders (123) 456-7890.
	PhoneParenthesized
)

// ErrInvalidPhoneFormat is returned by ParsePhoneFormat for unknown names.
var ErrInvalidPhoneFormat = errors.New("invalid phone format")

// ParsePhoneFormat parses a configured phone format name.
func ParsePhoneFormat(s string) (PhoneFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "hyphen", "hyphenated":
		return PhoneHyphenated, nil
	case "paren", "parenthesized":
		return PhoneParenthesized, nil
	default:
		return PhoneHyphenated, fmt.Errorf("%w %q (use hyphen or paren)", ErrInvalidPhoneFormat, s)
	}
}

func (f PhoneFormat) String() string {
	if f == PhoneParenthesized {
		return "paren"
	}
	return "hyphen"
}

// Format renders ten digits in this format.
func (f PhoneFormat) Format(d string) string {
	if f == PhoneParenthesized {
		return "(" + d[0:3] + ") " + d[3:6] + "-" + d[6:10]
	}
	return d[0:3] + "-" + d[3:6] + "-" + d[6:10]
}

// phoneSeparators are the characters allowed around the digits of a phone number.
const phoneSeparators = "+ -()"

// ValidatePhone classifies a US phone number.
//
// Eleven digits starting with 1 are treated as a number with its country
// code; the 1 is dropped. The value must then have ten digits and nothing
// but digits and phone separators. Valid values not already in the
// canonical format are rewritten.
func ValidatePhone(value string, format PhoneFormat) Result {
	if IsMissing(value) {
		return missing()
	}

	d := digitsOnly(value)
	if len(d) == 11 && d[0] == '1' {
		d = d[1:]
	}

	if len(d) != 10 || !onlyChars(value, phoneSeparators) {
		return bad(ReasonInvalid)
	}

	canonical := format.Format(d)
	if value == canonical {
		return correct()
	}
	return reformatted(canonical)
}

/* ----------------------------------------
	Email addresses
---------------------------------------- */

// EmailMatcher decides whether a value is a well-formed email address.
type EmailMatcher func(string) bool

// emailPattern: local part of word characters, '.', '_' or '-', then '@',
// a domain of the same characters, and a 2-3 character top-level domain.
var emailPattern = regexp.MustCompile(`^[\w._-]+@[\w_.-]+\.\w{2,3}$`)

// MatchEmail is the default EmailMatcher.
func MatchEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// ValidateEmail classifies an email address. Emails are never rewritten.
// A nil matcher uses MatchEmail.
func ValidateEmail(value string, match EmailMatcher) Result {
	if IsMissing(value) {
		return missing()
	}
	if match == nil {
		match = MatchEmail
	}
	if !match(value) {
		return bad(ReasonInvalid)
	}
	return correct()
}
