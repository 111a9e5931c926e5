package core

import (
	"fmt"

	"github.com/JonMunkholm/dataquality/internal/reference"
)

// CrossCheckStateZip reports a mismatch when a known zip does not belong to
// the record's state. It runs only when both values are present and never
// mutates either of them. The state resolves exactly, code before name;
// values that do not resolve, or zips absent from every state, are left to
// the single-field validators.
func CrossCheckStateZip(state, zip string, states *reference.StateDirectory, zips *reference.ZipDirectory) (Anomaly, bool) {
	if IsMissing(state) || IsMissing(zip) {
		return Anomaly{}, false
	}

	code, ok := states.Resolve(state)
	if !ok || !zips.Contains(zip) {
		return Anomaly{}, false
	}
	if zips.InState(code, zip) {
		return Anomaly{}, false
	}

	return Anomaly{
		Field:   FieldZip,
		Kind:    AnomalyMismatch,
		Value:   zip,
		State:   state,
		Zip:     zip,
		Message: fmt.Sprintf("zip %s is not in state %s", zip, code),
	}, true
}
