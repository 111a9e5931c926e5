package reference

// builder.go turns raw reference dumps into reference files.
//
// Two inputs are supported:
//   - a state list with one "Full Name XX" entry per line
//   - a directory of per-state zip dumps named "<state_name>_<suffix>.txt",
//     where every whitespace-separated five-digit token is a zip code

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ParseStatesText parses lines of the form "Full State Name XX".
// The last token is the code, the remaining tokens form the name.
// Blank lines are skipped.
func ParseStatesText(r io.Reader) (StatesFile, error) {
	out := make(StatesFile)
	scanner := bufio.NewScanner(r)

	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: expected \"<name> <code>\", got %q", line, scanner.Text())
		}

		code := fields[len(fields)-1]
		name := strings.Join(fields[:len(fields)-1], " ")
		if _, exists := out[name]; exists {
			return nil, fmt.Errorf("line %d: %w: %q", line, ErrDuplicateState, name)
		}
		out[name] = code
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read states text: %w", err)
	}

	// Reject non-bijective input before anything is written.
	if _, err := NewStateDirectory(out); err != nil {
		return nil, err
	}
	return out, nil
}

// ParseZipDump extracts every five-digit token from a zip dump, keeping
// first-seen order and dropping repeats.
func ParseZipDump(r io.Reader) ([]string, error) {
	var zips []string
	seen := make(map[string]struct{})

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		for _, tok := range strings.Fields(scanner.Text()) {
			if !IsZipFormat(tok) {
				continue
			}
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			zips = append(zips, tok)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read zip dump: %w", err)
	}
	return zips, nil
}

// StateNameFromFilename derives a state name from a dump file name such as
// "new_york_zips.txt" -> "New York". The final underscore-separated part is
// a suffix and is dropped; a name without underscores is used whole.
func StateNameFromFilename(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	parts := strings.Split(base, "_")
	if len(parts) > 1 {
		parts = parts[:len(parts)-1]
	}
	return cases.Title(language.AmericanEnglish).String(strings.Join(parts, " "))
}

// BuildZipsFromDir reads every .txt dump in dir and returns zips keyed by
// state code. File names are matched to states case-insensitively.
func BuildZipsFromDir(dir string, states *StateDirectory) (ZipsFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	out := make(ZipsFile)
	for _, entry := range entries {
		if entry.IsDir() || strings.ToLower(filepath.Ext(entry.Name())) != ".txt" {
			continue
		}

		name := StateNameFromFilename(entry.Name())
		code, ok := states.Match(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q from file %s", ErrUnknownState, name, entry.Name())
		}

		zips, err := parseZipFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		out[code] = mergeSorted(out[code], zips)
	}

	return out, nil
}

func parseZipFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open zip dump: %w", err)
	}
	defer f.Close()

	zips, err := ParseZipDump(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return zips, nil
}

func mergeSorted(a, b []string) []string {
	set := make(map[string]struct{}, len(a)+len(b))
	for _, z := range a {
		set[z] = struct{}{}
	}
	for _, z := range b {
		set[z] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for z := range set {
		out = append(out, z)
	}
	sort.Strings(out)
	return out
}

// WriteJSON writes v as indented JSON to path.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal reference data: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write reference file: %w", err)
	}
	return nil
}
