// Package report renders scan reports for the terminal.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/JonMunkholm/dataquality/internal/core"
)

const (
	// maxListedRows caps how many missing row indexes are printed per field.
	maxListedRows = 20
	// maxValueWidth caps the display width of a value in the anomaly list.
	maxValueWidth = 40
)

// Render writes the console summary of r to w.
func Render(w io.Writer, r *core.Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Scanned %d records (run %s, %d ms)\n\n", r.Records, r.RunID, r.DurationMs)

	b.WriteString("Missing values\n")
	for _, s := range r.Fields {
		def := s.Field.Definition()
		fmt.Fprintf(&b, "  %s: %d", def.Label, s.Missing)
		if len(s.MissingRows) > 0 {
			fmt.Fprintf(&b, " (rows %s)", joinRows(s.MissingRows))
		}
		b.WriteString("\n")
	}

	if bad := badValues(r); len(bad) > 0 {
		b.WriteString("\nValues needing inspection\n")
		rows := [][]string{{"Row", "Field", "Value", "Problem"}}
		for _, a := range bad {
			rows = append(rows, []string{strconv.Itoa(a.Row), a.Field.String(), clip(a.Value), a.Message})
		}
		writeTable(&b, rows)
	}

	if mismatches := r.AnomaliesOf(core.AnomalyMismatch); len(mismatches) > 0 {
		b.WriteString("\nState/zip mismatches\n")
		rows := [][]string{{"Row", "State", "Zip"}}
		for _, a := range mismatches {
			rows = append(rows, []string{strconv.Itoa(a.Row), clip(a.State), a.Zip})
		}
		writeTable(&b, rows)
	}

	if len(r.FailedRows) > 0 {
		fmt.Fprintf(&b, "\nRows not fully validated: %s\n", joinRows(r.FailedRows))
	}

	b.WriteString("\nSummary\n")
	writeTable(&b, SummaryRows(r))

	_, err := io.WriteString(w, b.String())
	return err
}

// SummaryRows returns the per-field totals table, header first.
func SummaryRows(r *core.Report) [][]string {
	rows := [][]string{{"Field", "Total", "Missing", "Bad", "Valid"}}
	for _, s := range r.Fields {
		rows = append(rows, []string{
			s.Column,
			strconv.Itoa(r.Records),
			strconv.Itoa(s.Missing),
			strconv.Itoa(s.Bad),
			strconv.Itoa(s.Valid()),
		})
	}
	return rows
}

func badValues(r *core.Report) []core.Anomaly {
	var out []core.Anomaly
	for _, a := range r.Anomalies {
		if a.Kind != core.AnomalyMismatch {
			out = append(out, a)
		}
	}
	return out
}

func joinRows(rows []int) string {
	n := len(rows)
	if n > maxListedRows {
		n = maxListedRows
	}
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = strconv.Itoa(rows[i])
	}
	s := strings.Join(parts, ", ")
	if extra := len(rows) - n; extra > 0 {
		s += fmt.Sprintf(" and %d more", extra)
	}
	return s
}

func clip(s string) string {
	return runewidth.Truncate(strconv.Quote(s), maxValueWidth, "...")
}

// writeTable writes rows as a pipe table padded to display width.
// The first row is the header.
func writeTable(b *strings.Builder, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	for r, row := range rows {
		b.WriteString("|")
		for i, cell := range row {
			b.WriteString(" ")
			b.WriteString(runewidth.FillRight(cell, widths[i]))
			b.WriteString(" |")
		}
		b.WriteString("\n")

		if r == 0 {
			b.WriteString("|")
			for _, w := range widths {
				b.WriteString(strings.Repeat("-", w+2))
				b.WriteString("|")
			}
			b.WriteString("\n")
		}
	}
}
