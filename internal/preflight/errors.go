package preflight

import (
	"errors"
	"strings"
)

// Failure kinds. A *CheckError matches its kind with errors.Is.
var (
	ErrMissingFile     = errors.New("missing file")
	ErrMissingVariable = errors.New("missing variable")
	ErrParse           = errors.New("parse error")
	ErrInvalidShape    = errors.New("invalid shape")
	ErrRuntimeNotFound = errors.New("runtime not found")
)

// CheckError is a fatal check failure
type CheckError struct {
	// Kind is one of the Err* sentinels
	Kind error

	// Message is the human-readable failure line
	Message string

	// Missing lists every absent variable name for ErrMissingVariable
	Missing []string

	// Err is the underlying cause, if any
	Err error
}

func (e *CheckError) Error() string {
	if len(e.Missing) > 0 {
		return e.Message + " " + strings.Join(e.Missing, ", ")
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *CheckError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newCheckError(kind error, message string, cause error) *CheckError {
	return &CheckError{Kind: kind, Message: message, Err: cause}
}
