// Package csv reads and writes the identity table as plain text.
//
// Every cell stays a string so leading zeros and punctuation survive. The
// header must carry the five validated columns; any other columns are kept
// and written back in their original order.
package csv

import (
	enccsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/JonMunkholm/dataquality/internal/core"
)

// OutputFileName is the fixed name of the cleaned table.
const OutputFileName = "new_data_quality_case_study.csv"

// DefaultInputFile is read when no input path is given.
const DefaultInputFile = "data_quality_case_study.csv"

var (
	ErrInvalidCSV   = errors.New("invalid csv")
	ErrNotDirectory = errors.New("output path is not a directory")
	ErrInputNotFile = errors.New("input path is not a regular file")
)

// Read parses a table from r. A positive limit caps the input size in bytes.
func Read(r io.Reader, limit int64) (*core.Table, error) {
	cr := enccsv.NewReader(core.NewInputReader(r, limit))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		if errors.Is(err, core.ErrInputTooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidCSV, err)
	}
	if len(records) == 0 {
		return nil, core.ErrEmptyInput
	}

	return core.NewTable(records[0], records[1:])
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string, limit int64) (*core.Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("input file %q: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFile, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("input file %q: %w", path, err)
	}
	defer f.Close()

	t, err := Read(f, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return t, nil
}

// CheckOutputDir verifies that dir exists and is a directory.
func CheckOutputDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("output path %q: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}
	return nil
}

// Write serializes the header and rows of t to w.
func Write(w io.Writer, t *core.Table) error {
	cw := enccsv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}

// WriteFile writes t to OutputFileName inside dir and returns the path.
// The table is written to a temporary file first and renamed into place, so
// a failed write leaves no partial output.
func WriteFile(dir string, t *core.Table) (string, error) {
	if err := CheckOutputDir(dir); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, ".dataquality-*.csv")
	if err != nil {
		return "", fmt.Errorf("create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, t); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close output file: %w", err)
	}

	path := filepath.Join(dir, OutputFileName)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("rename output file: %w", err)
	}
	if err := os.Chmod(path, 0o644); err != nil {
		return "", fmt.Errorf("chmod output file: %w", err)
	}
	return path, nil
}
