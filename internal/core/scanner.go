package core

// scanner.go walks a table record by record.
//
// For each record the five field validators run in Field order. Rewrites are
// stored back into the table as soon as a validator returns them, so the
// state/zip cross-check sees canonical values. Problems are collected on the
// Report and logged as warnings; they never stop the scan.

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/dataquality/internal/reference"
)

// ctxCheckInterval is how many rows run between context checks.
const ctxCheckInterval = 100

// Observer receives scan events. The metrics package implements it.
type Observer interface {
	ObserveValue(f Field, o Outcome)
	ObserveAnomaly(a Anomaly)
	ObserveScan(r *Report)
}

type nopObserver struct{}

func (nopObserver) ObserveValue(Field, Outcome) {}
func (nopObserver) ObserveAnomaly(Anomaly)      {}
func (nopObserver) ObserveScan(*Report)         {}

// Scanner validates tables against fixed reference data.
//
// A Scanner owns the set of SSNs it has seen, so repeated Scan calls on the
// same Scanner flag SSNs seen in earlier tables as duplicates. Use a fresh
// Scanner per independent input. A Scanner is not safe for concurrent use;
// the directories it reads are.
type Scanner struct {
	states *reference.StateDirectory
	zips   *reference.ZipDirectory
	seen   *SeenSocialSecurityNumbers

	phoneFormat PhoneFormat
	matchEmail  EmailMatcher
	logger      *slog.Logger
	observer    Observer
	newRunID    func() string
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger sets the logger anomalies are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPhoneFormat sets the canonical phone format.
func WithPhoneFormat(f PhoneFormat) Option {
	return func(s *Scanner) { s.phoneFormat = f }
}

// WithEmailMatcher replaces the email predicate.
func WithEmailMatcher(m EmailMatcher) Option {
	return func(s *Scanner) {
		if m != nil {
			s.matchEmail = m
		}
	}
}

// WithObserver registers an Observer for scan events.
func WithObserver(o Observer) Option {
	return func(s *Scanner) {
		if o != nil {
			s.observer = o
		}
	}
}

// NewScanner creates a Scanner over the given reference data.
func NewScanner(states *reference.StateDirectory, zips *reference.ZipDirectory, opts ...Option) *Scanner {
	s := &Scanner{
		states:      states,
		zips:        zips,
		seen:        NewSeenSocialSecurityNumbers(),
		phoneFormat: PhoneHyphenated,
		matchEmail:  MatchEmail,
		logger:      slog.Default(),
		observer:    nopObserver{},
		newRunID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan validates every record of t in order, rewriting values in place.
// The run ID is taken from ctx (see ContextWithRunID) or generated.
//
// It returns an error only when ctx ends; the partial report is returned
// with it.
func (s *Scanner) Scan(ctx context.Context, t *Table) (*Report, error) {
	start := time.Now()

	runID := RunIDFromContext(ctx)
	if runID == "" {
		runID = s.newRunID()
	}
	report := newReport(runID)
	logger := s.logger.With("run_id", report.RunID)

	logger.Info("scan started", "records", t.Len(), "phone_format", s.phoneFormat.String())

	for i := 0; i < t.Len(); i++ {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				s.finish(report, start)
				logger.Warn("scan stopped", "row", i, "error", err)
				return report, fmt.Errorf("scan stopped at row %d: %w", i, err)
			}
		}
		s.scanRecord(logger, report, i, t.Record(i))
		report.Records++
	}

	s.finish(report, start)
	logger.Info("scan completed",
		"records", report.Records,
		"anomalies", len(report.Anomalies),
		"duration_ms", report.DurationMs,
	)
	return report, nil
}

func (s *Scanner) finish(report *Report, start time.Time) {
	report.Duration = time.Since(start)
	report.DurationMs = report.Duration.Milliseconds()
	s.observer.ObserveScan(report)
}

// scanRecord validates one record. A panic inside a validator is logged and
// leaves the record's remaining fields untouched.
func (s *Scanner) scanRecord(logger *slog.Logger, report *Report, row int, rec Record) {
	current := FieldSocialSecurity
	defer func() {
		if r := recover(); r != nil {
			report.FailedRows = append(report.FailedRows, row)
			logger.Error("panic while validating record",
				"row", row,
				"field", current.String(),
				"panic", r,
			)
		}
	}()

	for f := Field(0); f < numFields; f++ {
		current = f
		value := rec.Get(f)
		res := s.validate(f, value)

		if res.Rewrite != "" {
			rec.Set(f, res.Rewrite)
		}
		report.record(row, f, res)
		s.observer.ObserveValue(f, res.Outcome)

		for _, reason := range res.Reasons {
			s.flag(logger, report, badValueAnomaly(row, f, value, reason))
		}
	}

	if a, ok := CrossCheckStateZip(rec.Get(FieldState), rec.Get(FieldZip), s.states, s.zips); ok {
		a.Row = row
		s.flag(logger, report, a)
	}
}

func (s *Scanner) validate(f Field, value string) Result {
	switch f {
	case FieldSocialSecurity:
		return ValidateSocialSecurity(value, s.seen)
	case FieldState:
		return ValidateState(value, s.states)
	case FieldZip:
		return ValidateZip(value, s.zips)
	case FieldPhone:
		return ValidatePhone(value, s.phoneFormat)
	case FieldEmail:
		return ValidateEmail(value, s.matchEmail)
	default:
		panic(fmt.Sprintf("no validator for %s", f))
	}
}

func (s *Scanner) flag(logger *slog.Logger, report *Report, a Anomaly) {
	report.Anomalies = append(report.Anomalies, a)
	s.observer.ObserveAnomaly(a)

	args := []any{"row", a.Row, "field", a.Field.String(), "kind", string(a.Kind), "value", a.Value}
	if a.Kind == AnomalyMismatch {
		args = append(args, "state", a.State)
	}
	logger.Warn(a.Message, args...)
}

func badValueAnomaly(row int, f Field, value string, reason Reason) Anomaly {
	kind := AnomalyInvalid
	msg := "bad " + singular(f)
	if reason == ReasonDuplicate {
		kind = AnomalyDuplicate
		msg = "duplicate " + singular(f)
	}
	return Anomaly{Row: row, Field: f, Kind: kind, Value: value, Message: msg}
}

func singular(f Field) string {
	switch f {
	case FieldSocialSecurity:
		return "social security number"
	case FieldState:
		return "state"
	case FieldZip:
		return "zip code"
	case FieldPhone:
		return "phone number"
	default:
		return "email address"
	}
}
