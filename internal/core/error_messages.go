package core

// error_messages.go maps technical errors to user-facing messages with a
// code support staff can look up.
//
// # Error Codes Reference
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - Output path is not a directory
//	          Patterns: "not a directory"
//	FILE002 - Input path is not a regular file
//	          Patterns: "not a regular file"
//	FILE003 - File not found
//	          Patterns: "no such file or directory", "file does not exist"
//	FILE004 - Permission denied
//	          Patterns: "permission denied"
//	FILE005 - Input too large
//	          Patterns: "input too large"
//	FILE006 - Empty file
//	          Patterns: "empty file"
//	FILE007 - Invalid CSV
//	          Patterns: "invalid csv"
//	FILE008 - No file
//	          Patterns: "no file provided"
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Missing column
//	         Patterns: "missing required column"
//
// # Reference Data Errors (REF001-REF099)
//
//	REF001 - Duplicate state          "duplicate state"
//	REF002 - Invalid state code       "invalid state code"
//	REF003 - Empty state name         "empty state name"
//	REF004 - Unknown state            "unknown state"
//	REF005 - Invalid reference zip    "invalid zip code in reference"
//	REF006 - Empty reference document "empty reference document"
//	REF007 - Unreadable reference     "reference file"
//	REF008 - Reference database       "reference database"
//
// # Configuration Errors (CFG001-CFG099)
//
//	CFG001 - Invalid phone format     "invalid phone format"
//	CFG002 - Invalid configuration    "invalid configuration"
//
// # Scan Errors (SCAN001-SCAN099)
//
//	SCAN001 - System busy             "too many concurrent scans"
//	SCAN002 - Cancelled               "context canceled"
//	SCAN003 - Timed out               "context deadline exceeded"
//
// # Default Error (ERR000)
//
// Fallback when no pattern matches. Check the logs for the original error.
//
// Patterns are matched case-insensitively with strings.Contains and the
// first match wins, so specific patterns come before general ones.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string `json:"message"`
	Action  string `json:"action"`
	Code    string `json:"code"`
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// Reference data. These wrap file errors, so they come first.
	{"duplicate state", UserMessage{
		Message: "Reference data lists a state name or code twice",
		Action:  "Make every state name and code unique in the states file",
		Code:    "REF001",
	}},
	{"invalid state code", UserMessage{
		Message: "Reference data contains an invalid state code",
		Action:  "Use two uppercase letters for every state code",
		Code:    "REF002",
	}},
	{"empty state name", UserMessage{
		Message: "Reference data contains an empty state name",
		Action:  "Give every state code a full name",
		Code:    "REF003",
	}},
	{"unknown state", UserMessage{
		Message: "Zip reference data names a state that is not in the state list",
		Action:  "Key zip lists by a known state code or full name",
		Code:    "REF004",
	}},
	{"invalid zip code in reference", UserMessage{
		Message: "Zip reference data contains a zip that is not 5 digits",
		Action:  "Store zips as quoted 5-digit strings",
		Code:    "REF005",
	}},
	{"empty reference document", UserMessage{
		Message: "Reference data file is empty",
		Action:  "Check the states and zips file paths",
		Code:    "REF006",
	}},
	{"reference file", UserMessage{
		Message: "Reference data file could not be read",
		Action:  "Check STATES_FILE and ZIPS_FILE",
		Code:    "REF007",
	}},
	{"reference database", UserMessage{
		Message: "Reference data could not be loaded from the database",
		Action:  "Check REFERENCE_DATABASE_URL and the reference tables",
		Code:    "REF008",
	}},

	// Input table
	{"missing required column", UserMessage{
		Message: "Required column is missing from CSV",
		Action:  "Include social_security, state, zip, phone1 and email headers",
		Code:    "VAL001",
	}},

	// Configuration
	{"invalid phone format", UserMessage{
		Message: "Unknown phone format",
		Action:  "Use hyphen or paren",
		Code:    "CFG001",
	}},
	{"invalid configuration", UserMessage{
		Message: "Configuration is invalid",
		Action:  "Fix the listed settings and restart",
		Code:    "CFG002",
	}},

	// Files
	{"not a directory", UserMessage{
		Message: "Output path is not a directory",
		Action:  "Pass an existing directory with -o",
		Code:    "FILE001",
	}},
	{"not a regular file", UserMessage{
		Message: "Input path is not a file",
		Action:  "Pass a CSV file with -i",
		Code:    "FILE002",
	}},
	{"no such file or directory", UserMessage{
		Message: "File or directory not found",
		Action:  "Check the path and try again",
		Code:    "FILE003",
	}},
	{"file does not exist", UserMessage{
		Message: "File or directory not found",
		Action:  "Check the path and try again",
		Code:    "FILE003",
	}},
	{"permission denied", UserMessage{
		Message: "Permission denied",
		Action:  "Check file and directory permissions",
		Code:    "FILE004",
	}},
	{"input too large", UserMessage{
		Message: "File exceeds the maximum scan size",
		Action:  "Split the file into smaller chunks",
		Code:    "FILE005",
	}},
	{"empty file", UserMessage{
		Message: "The file is empty",
		Action:  "Provide a CSV file with a header row",
		Code:    "FILE006",
	}},
	{"invalid csv", UserMessage{
		Message: "File is not a valid CSV",
		Action:  "Ensure file is comma-separated with consistent columns",
		Code:    "FILE007",
	}},
	{"no file provided", UserMessage{
		Message: "No file was sent",
		Action:  "Send the CSV as the request body or a multipart field named file",
		Code:    "FILE008",
	}},

	// Scans
	{"too many concurrent scans", UserMessage{
		Message: "Too many scans in progress",
		Action:  "Please wait a moment and try again",
		Code:    "SCAN001",
	}},
	{"context canceled", UserMessage{
		Message: "Scan was cancelled",
		Action:  "Please try again",
		Code:    "SCAN002",
	}},
	{"context deadline exceeded", UserMessage{
		Message: "Scan timed out",
		Action:  "Try a smaller file or try again later",
		Code:    "SCAN003",
	}},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or check the logs",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// If no pattern matches, the ERR000 fallback is returned.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError renders "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user message.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err; it returns nil for a nil err.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{Technical: err, User: MapError(err)}
}
