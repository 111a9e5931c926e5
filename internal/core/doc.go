// Package core holds the data quality rules for identity records.
//
// It is independent of any transport: the CLI and the HTTP surface both
// build a [Table], run a [Scanner] over it and render the [Report].
//
// # Fields
//
// Five columns are validated, in this order: social_security, state, zip,
// phone1 and email (see [Fields]). Other columns pass through untouched.
//
// # Outcomes
//
// Each value gets exactly one [Outcome]:
//
//   - Missing: empty, "na" or "n/a" in any case. Never modified.
//   - Bad: present but invalid. Reported and left as is.
//   - Reformatted: valid but not canonical. Rewritten in place.
//   - Correct: valid and canonical.
//
// Re-validating any rewritten value yields Correct.
//
// # Cross-check
//
// After the field validators, [CrossCheckStateZip] reports zips that are
// known but belong to a different state than the record's. It only adds an
// anomaly; field counts and values are not changed.
//
// # Error Handling
//
// Per-value problems are anomalies, never errors. Errors are reserved for
// unreadable input and cancellation, and [MapError] turns them into a
// [UserMessage] with a support code:
//
//   - FILE001-FILE008: file and CSV errors
//   - VAL001: missing required columns
//   - REF001-REF008: reference data errors
//   - CFG001-CFG002: configuration errors
//   - SCAN001-SCAN003: busy, cancelled or timed-out scans
package core
