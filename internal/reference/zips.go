package reference

import (
	"fmt"
	"sort"
)

// ZipDirectory maps two-letter state codes to the set of zip codes that
// belong to that state. It also keeps the flattened set of every known zip.
type ZipDirectory struct {
	byState map[string]map[string]struct{}
	all     map[string]struct{}
}

// NewZipDirectory builds a zip directory from a state -> zips mapping.
// Keys may be state codes or full state names; they are resolved against
// states (exact first, then case-insensitive). Every zip must be exactly
// five digits; leading zeros are significant.
func NewZipDirectory(zipsByState map[string][]string, states *StateDirectory) (*ZipDirectory, error) {
	d := &ZipDirectory{
		byState: make(map[string]map[string]struct{}, len(zipsByState)),
		all:     make(map[string]struct{}),
	}

	for key, zips := range zipsByState {
		code, ok := states.Resolve(key)
		if !ok {
			code, ok = states.Match(key)
		}
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownState, key)
		}

		set, exists := d.byState[code]
		if !exists {
			set = make(map[string]struct{}, len(zips))
			d.byState[code] = set
		}

		for _, zip := range zips {
			if !IsZipFormat(zip) {
				return nil, fmt.Errorf("%w: %q for %s", ErrInvalidZip, zip, code)
			}
			set[zip] = struct{}{}
			d.all[zip] = struct{}{}
		}
	}

	return d, nil
}

// IsZipFormat reports whether s is exactly five ASCII digits.
func IsZipFormat(s string) bool {
	if len(s) != 5 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Contains reports whether zip belongs to any state.
func (d *ZipDirectory) Contains(zip string) bool {
	_, ok := d.all[zip]
	return ok
}

// InState reports whether zip belongs to the state with the given code.
func (d *ZipDirectory) InState(code, zip string) bool {
	_, ok := d.byState[code][zip]
	return ok
}

// Len returns the number of distinct zip codes across all states.
func (d *ZipDirectory) Len() int {
	return len(d.all)
}

// States returns the codes that have at least one zip, sorted.
func (d *ZipDirectory) States() []string {
	codes := make([]string, 0, len(d.byState))
	for code := range d.byState {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Zips returns the sorted zip codes of one state.
func (d *ZipDirectory) Zips(code string) []string {
	set := d.byState[code]
	zips := make([]string, 0, len(set))
	for zip := range set {
		zips = append(zips, zip)
	}
	sort.Strings(zips)
	return zips
}
