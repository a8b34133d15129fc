package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the data-access contract. Callers distinguish them
// with errors.Is; store-level failures propagate unwrapped to these.
var (
	// ErrNotFound covers missing users, posts and accounts.
	ErrNotFound = errors.New("not found")

	// ErrConflict covers duplicate email or username at registration.
	ErrConflict = errors.New("already exists")
)

// ValidationError reports client-side input problems (empty content, short
// password). It is terminal for the triggering action, never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
