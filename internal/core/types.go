package core

import (
	"fmt"
	"time"
)

// Outcome is the classification of one field value in one record.
type Outcome int

const (
	OutcomeMissing Outcome = iota
	OutcomeBad
	OutcomeReformatted
	OutcomeCorrect
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMissing:
		return "missing"
	case OutcomeBad:
		return "bad"
	case OutcomeReformatted:
		return "reformatted"
	case OutcomeCorrect:
		return "correct"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// MarshalText renders the outcome by name in JSON reports.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Valid reports whether the value has usable content (Correct or Reformatted).
func (o Outcome) Valid() bool {
	return o == OutcomeCorrect || o == OutcomeReformatted
}

// Reason explains why a value was classified Bad.
type Reason string

const (
	ReasonInvalid   Reason = "invalid"
	ReasonDuplicate Reason = "duplicate"
)

// Result is what a field validator returns for one value.
type Result struct {
	Outcome Outcome
	Reasons []Reason // set when Outcome is OutcomeBad
	Rewrite string   // canonical value to store; empty when the value is kept
}

// HasReason reports whether r was flagged for the given reason.
func (r Result) HasReason(reason Reason) bool {
	for _, got := range r.Reasons {
		if got == reason {
			return true
		}
	}
	return false
}

func missing() Result { return Result{Outcome: OutcomeMissing} }

func correct() Result { return Result{Outcome: OutcomeCorrect} }

func bad(reasons ...Reason) Result { return Result{Outcome: OutcomeBad, Reasons: reasons} }

func reformatted(value string) Result {
	return Result{Outcome: OutcomeReformatted, Rewrite: value}
}

// AnomalyKind classifies a reported problem.
type AnomalyKind string

const (
	AnomalyInvalid   AnomalyKind = "invalid"
	AnomalyDuplicate AnomalyKind = "duplicate"
	AnomalyMismatch  AnomalyKind = "mismatch"
)

// Anomaly is a value or record that needs manual inspection.
// Row is the 0-based index of the data row (the header is not counted).
type Anomaly struct {
	Row     int         `json:"row"`
	Field   Field       `json:"field"`
	Kind    AnomalyKind `json:"kind"`
	Value   string      `json:"value"`
	State   string      `json:"state,omitempty"`
	Zip     string      `json:"zip,omitempty"`
	Message string      `json:"message"`
}

// FieldCounts tallies outcomes for one field across a scan.
type FieldCounts struct {
	Missing     int `json:"missing"`
	Bad         int `json:"bad"`
	Reformatted int `json:"reformatted"`
	Correct     int `json:"correct"`
}

// Valid returns the number of values that are neither bad nor missing.
func (c FieldCounts) Valid() int {
	return c.Correct + c.Reformatted
}

func (c *FieldCounts) add(o Outcome) {
	switch o {
	case OutcomeMissing:
		c.Missing++
	case OutcomeBad:
		c.Bad++
	case OutcomeReformatted:
		c.Reformatted++
	case OutcomeCorrect:
		c.Correct++
	}
}

// FieldSummary is the per-field section of a Report.
type FieldSummary struct {
	Field       Field  `json:"field"`
	Column      string `json:"column"`
	FieldCounts `json:"counts"`
	ValidCount  int   `json:"valid"`
	MissingRows []int `json:"missing_rows"`
}

// Report is the outcome of scanning one table.
type Report struct {
	RunID      string         `json:"run_id"`
	Records    int            `json:"records"`
	Fields     []FieldSummary `json:"fields"`
	Anomalies  []Anomaly      `json:"anomalies"`
	FailedRows []int          `json:"failed_rows"` // rows whose validation panicked
	Duration   time.Duration  `json:"-"`
	DurationMs int64          `json:"duration_ms"`
}

func newReport(runID string) *Report {
	defs := Fields()
	r := &Report{
		RunID:      runID,
		Fields:     make([]FieldSummary, len(defs)),
		Anomalies:  []Anomaly{},
		FailedRows: []int{},
	}
	for i, def := range defs {
		r.Fields[i] = FieldSummary{Field: def.Field, Column: def.Column, MissingRows: []int{}}
	}
	return r
}

// Summary returns the summary for one field.
func (r *Report) Summary(f Field) *FieldSummary {
	return &r.Fields[f]
}

// AnomaliesOf returns the anomalies of one kind in scan order.
func (r *Report) AnomaliesOf(kind AnomalyKind) []Anomaly {
	var out []Anomaly
	for _, a := range r.Anomalies {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}

func (r *Report) record(row int, f Field, res Result) {
	s := &r.Fields[f]
	s.add(res.Outcome)
	s.ValidCount = s.Valid()
	if res.Outcome == OutcomeMissing {
		s.MissingRows = append(s.MissingRows, row)
	}
}
