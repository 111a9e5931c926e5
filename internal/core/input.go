package core

// input.go prepares raw CSV bytes for parsing.
//
// Spreadsheet exports often start with a UTF-8 byte order mark and can carry
// stray non-UTF-8 bytes. NewInputReader strips the BOM, replaces invalid
// sequences with U+FFFD and counts bytes so callers can cap input size.

import (
	"errors"
	"io"

	"golang.org/x/text/encoding/unicode"
)

// ErrInputTooLarge is returned once a capped reader passes its limit.
var ErrInputTooLarge = errors.New("input too large")

// InputReader decodes and counts input bytes.
type InputReader struct {
	src   io.Reader
	limit int64

	// BytesRead counts raw bytes taken from the source.
	BytesRead int64
}

// NewInputReader wraps r. A positive limit makes reads fail with
// ErrInputTooLarge after more than limit raw bytes.
func NewInputReader(r io.Reader, limit int64) io.Reader {
	counted := &InputReader{src: r, limit: limit}
	return unicode.UTF8BOM.NewDecoder().Reader(counted)
}

// Read implements io.Reader.
func (r *InputReader) Read(p []byte) (int, error) {
	n, err := r.src.Read(p)
	r.BytesRead += int64(n)
	if r.limit > 0 && r.BytesRead > r.limit {
		return n, ErrInputTooLarge
	}
	return n, err
}
