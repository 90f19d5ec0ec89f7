package repositories

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the repositories. Handlers translate these into
// HTTP status codes instead of matching on message strings.
var (
	ErrPostNotFound = errors.New("post not found")
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// ValidationError reports a write that violated a required-field or
// derived-content rule before reaching the database.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}
