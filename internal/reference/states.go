// Package reference holds the immutable lookup tables used to validate
// identity records: US state names and codes, and the zip codes that belong
// to each state.
//
// Directories are built once (from the embedded defaults, from JSON/YAML
// files, or from PostgreSQL) and are then safe for concurrent readers.
package reference

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Reference data errors.
var (
	ErrDuplicateState   = errors.New("duplicate state in reference data")
	ErrInvalidStateCode = errors.New("invalid state code in reference data")
	ErrEmptyStateName   = errors.New("empty state name in reference data")
	ErrUnknownState     = errors.New("unknown state in zip reference data")
	ErrInvalidZip       = errors.New("invalid zip code in reference data")
)

// StateDirectory maps full state names to two-letter codes and back.
// The mapping is a bijection: every name has one code and every code one name.
type StateDirectory struct {
	byName map[string]string
	byCode map[string]string
	folded map[string]string // case-folded name -> code
}

// NewStateDirectory builds a directory from a name -> code mapping.
// Codes must be two uppercase ASCII letters and no code may appear twice.
func NewStateDirectory(names map[string]string) (*StateDirectory, error) {
	d := &StateDirectory{
		byName: make(map[string]string, len(names)),
		byCode: make(map[string]string, len(names)),
		folded: make(map[string]string, len(names)),
	}

	for name, code := range names {
		if strings.TrimSpace(name) == "" {
			return nil, ErrEmptyStateName
		}
		if !isStateCode(code) {
			return nil, fmt.Errorf("%w: %q for %q", ErrInvalidStateCode, code, name)
		}
		if other, exists := d.byCode[code]; exists {
			return nil, fmt.Errorf("%w: code %s used by %q and %q", ErrDuplicateState, code, other, name)
		}
		key := fold(name)
		if other, exists := d.folded[key]; exists {
			return nil, fmt.Errorf("%w: name %q collides with %q", ErrDuplicateState, name, d.byCode[other])
		}

		d.byName[name] = code
		d.byCode[code] = name
		d.folded[key] = code
	}

	return d, nil
}

// isStateCode reports whether s is two uppercase ASCII letters.
func isStateCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

// fold returns the case-folded form used for case-insensitive name matching.
// A Caser is stateful, so one is created per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

// Len returns the number of states in the directory.
func (d *StateDirectory) Len() int {
	return len(d.byCode)
}

// IsCode reports whether s is exactly a known two-letter code.
func (d *StateDirectory) IsCode(s string) bool {
	_, ok := d.byCode[s]
	return ok
}

// IsName reports whether s is exactly a known full state name.
func (d *StateDirectory) IsName(s string) bool {
	_, ok := d.byName[s]
	return ok
}

// CodeForName returns the code for an exact full state name.
func (d *StateDirectory) CodeForName(name string) (string, bool) {
	code, ok := d.byName[name]
	return code, ok
}

// NameForCode returns the full state name for an exact code.
func (d *StateDirectory) NameForCode(code string) (string, bool) {
	name, ok := d.byCode[code]
	return name, ok
}

// Resolve maps a value to its state code using exact matches only.
// The code space is checked before the name space.
func (d *StateDirectory) Resolve(s string) (string, bool) {
	if d.IsCode(s) {
		return s, true
	}
	return d.CodeForName(s)
}

// Match maps a value to its state code ignoring case.
// The uppercased value is checked against codes first, then the value is
// compared against full names case-insensitively.
func (d *StateDirectory) Match(s string) (string, bool) {
	if upper := strings.ToUpper(s); d.IsCode(upper) {
		return upper, true
	}
	code, ok := d.folded[fold(s)]
	return code, ok
}

// Codes returns all codes in sorted order.
func (d *StateDirectory) Codes() []string {
	codes := make([]string, 0, len(d.byCode))
	for code := range d.byCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Names returns a copy of the name -> code mapping.
func (d *StateDirectory) Names() map[string]string {
	out := make(map[string]string, len(d.byName))
	for name, code := range d.byName {
		out[name] = code
	}
	return out
}
