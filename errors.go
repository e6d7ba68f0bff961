package qsenc

import (
	"errors"
	"strings"

	"github.com/reoring/qsenc/i18n"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeDescribeFailed  = "describe_failed"
	CodeUnsupportedType = "unsupported_type"
	// Source documents (JSON/YAML inputs)
	CodeParseError   = "parse_error"
	CodeDuplicateKey = "duplicate_key"
)

// EncodingError is the single failure kind surfaced by Encode. Path is a JSON
// Pointer into the described value (for example: /filter/tags/2), built from
// field names and element indexes even though the query output itself is flat.
type EncodingError struct {
	Path    string
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
}

func (e *EncodingError) Error() string {
	b := &strings.Builder{}
	b.WriteString("qsenc: ")
	b.WriteString(e.Code)
	b.WriteString(" at ")
	if e.Path == "" {
		b.WriteString("/")
	} else {
		b.WriteString(e.Path)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *EncodingError) Unwrap() error { return e.Cause }

// NewError builds an EncodingError with the translated message for code.
func NewError(path, code string, cause error, data map[string]string) *EncodingError {
	return &EncodingError{Path: path, Code: code, Message: i18n.T(code, data), Cause: cause}
}

// AsEncodingError extracts an *EncodingError from err using errors.As internally.
func AsEncodingError(err error) (*EncodingError, bool) {
	if err == nil {
		return nil, false
	}
	var ee *EncodingError
	if errors.As(err, &ee) {
		return ee, true
	}
	return nil, false
}

// describeFailed wraps an error returned by a Describer. Errors that already
// carry an EncodingError pass through unchanged so the innermost path wins.
func describeFailed(path string, err error) error {
	if _, ok := AsEncodingError(err); ok {
		return err
	}
	return NewError(path, CodeDescribeFailed, err, nil)
}
