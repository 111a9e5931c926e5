package core

// table.go holds the in-memory table a scan works on.
//
// All cells are kept as text so leading zeros and punctuation survive the
// round trip. A Record is a view over one row: rewrites made through it land
// directly in the table that will be written out.

import (
	"errors"
	"fmt"
	"strings"
)

// Table errors.
var (
	ErrEmptyInput     = errors.New("empty file: no header row")
	ErrMissingColumns = errors.New("missing required column")
	ErrRaggedRow      = errors.New("invalid csv: row width does not match header")
)

// HeaderIndex maps column names (lowercase) to their position in the row.
type HeaderIndex map[string]int

// MakeHeaderIndex creates a HeaderIndex from a header row.
// Keys are cleaned and lowercased for case-insensitive matching.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(CleanCell(h))
		if _, exists := idx[key]; exists {
			continue
		}
		idx[key] = i
	}
	return idx
}

// CleanCell removes common spreadsheet artifacts from a header cell:
// surrounding whitespace, an Excel formula prefix (="...") and quotes.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.Trim(s, `"'`)
}

// ValidateHeaders checks that every field column is present and returns the
// header index, or an error listing the missing columns.
func ValidateHeaders(header []string) (HeaderIndex, error) {
	idx := MakeHeaderIndex(header)
	var missing []string

	for _, def := range fieldDefinitions {
		if _, ok := idx[def.Column]; !ok {
			missing = append(missing, def.Column)
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return idx, nil
}

// Table is a header plus data rows, all as text.
type Table struct {
	Header []string
	Rows   [][]string

	cols [numFields]int
}

// NewTable validates the header and row widths and builds a Table.
// The rows are used in place, not copied.
func NewTable(header []string, rows [][]string) (*Table, error) {
	if len(header) == 0 {
		return nil, ErrEmptyInput
	}

	idx, err := ValidateHeaders(header)
	if err != nil {
		return nil, err
	}

	for i, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrRaggedRow, i, len(row), len(header))
		}
	}

	t := &Table{Header: header, Rows: rows}
	for _, def := range fieldDefinitions {
		t.cols[def.Field] = idx[def.Column]
	}
	return t, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Record returns a view over data row i.
func (t *Table) Record(i int) Record {
	return Record{row: t.Rows[i], cols: &t.cols}
}

// Record is a view over one table row addressed by Field.
type Record struct {
	row  []string
	cols *[numFields]int
}

// Get returns the raw value of a field.
func (r Record) Get(f Field) string {
	return r.row[r.cols[f]]
}

// Set overwrites a field in the underlying row.
func (r Record) Set(f Field, value string) {
	r.row[r.cols[f]] = value
}
