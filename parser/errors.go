package parser

import (
	"errors"
	"sync"
)

var (
	// ErrGrammar is returned when the document does not follow the
	// parameter file layout.
	ErrGrammar = errors.New("invalid parameter document")
	// ErrSyntax is returned when the input is not well-formed YAML.
	ErrSyntax = errors.New("invalid yaml")
	// ErrInvalidName is returned when a node name or namespace is rejected
	// by the validator.
	ErrInvalidName = errors.New("invalid name")
	// ErrInvalidOverride is returned for a malformed override rule.
	ErrInvalidOverride = errors.New("invalid parameter override")

	errEmptyParamName = errors.New("empty parameter name")
)

//nolint:gochecknoglobals // process-wide error channel
var lastError struct {
	mu  sync.Mutex
	msg string
}

// LastError returns the message of the most recent parse failure, or ""
// when nothing failed since the last ResetError.
func LastError() string {
	lastError.mu.Lock()
	defer lastError.mu.Unlock()

	return lastError.msg
}

// ResetError clears the message returned by LastError.
func ResetError() {
	lastError.mu.Lock()
	defer lastError.mu.Unlock()

	lastError.msg = ""
}

func setLastError(err error) {
	lastError.mu.Lock()
	defer lastError.mu.Unlock()

	lastError.msg = err.Error()
}
