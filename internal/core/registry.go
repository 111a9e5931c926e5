package core

import (
	"fmt"
	"strings"
)

// Field identifies one of the validated identity columns.
// The numeric order is the order validators run in for each record.
type Field int

const (
	FieldSocialSecurity Field = iota
	FieldState
	FieldZip
	FieldPhone
	FieldEmail

	numFields = iota
)

// FieldDefinition describes how a field appears in the input table.
type FieldDefinition struct {
	Field  Field
	Key    string // stable identifier used in reports and metrics
	Column string // CSV header name
	Label  string // plural, human-readable
}

var fieldDefinitions = [numFields]FieldDefinition{
	{Field: FieldSocialSecurity, Key: "social_security", Column: "social_security", Label: "social security numbers"},
	{Field: FieldState, Key: "state", Column: "state", Label: "states"},
	{Field: FieldZip, Key: "zip", Column: "zip", Label: "zip codes"},
	{Field: FieldPhone, Key: "phone", Column: "phone1", Label: "phone numbers"},
	{Field: FieldEmail, Key: "email", Column: "email", Label: "email addresses"},
}

// Fields returns every field definition in validation order.
func Fields() []FieldDefinition {
	out := make([]FieldDefinition, numFields)
	copy(out, fieldDefinitions[:])
	return out
}

// Columns returns the required CSV header names in validation order.
func Columns() []string {
	cols := make([]string, numFields)
	for i, def := range fieldDefinitions {
		cols[i] = def.Column
	}
	return cols
}

// FieldByColumn looks up a field by its CSV header name (case-insensitive).
func FieldByColumn(column string) (FieldDefinition, bool) {
	for _, def := range fieldDefinitions {
		if strings.EqualFold(def.Column, strings.TrimSpace(column)) {
			return def, true
		}
	}
	return FieldDefinition{}, false
}

// Definition returns the field's definition.
func (f Field) Definition() FieldDefinition {
	return fieldDefinitions[f]
}

func (f Field) String() string {
	if f < 0 || int(f) >= numFields {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return fieldDefinitions[f].Key
}

// MarshalText renders the field by key in JSON reports.
func (f Field) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}
