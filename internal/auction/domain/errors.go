package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyQueue      = errors.New("player queue is empty")
	ErrNoActiveSession = errors.New("no auction session is active")
)

// ValidationError reports a rejected bid or correction payload, no state was
// mutated when it is returned
type ValidationError struct {
	Field  string
	Detail string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Detail)
}

// Is allows errors.Is() to match any ValidationError
func (e ValidationError) Is(target error) bool {
	_, ok := target.(ValidationError)
	return ok
}

// StateError reports an operation that does not apply to the current auction
// state, like committing past auction complete or correcting an index that
// was never processed. No state was mutated when it is returned.
type StateError struct {
	Detail string
}

func (e StateError) Error() string {
	return "invalid auction state: " + e.Detail
}

// Is allows errors.Is() to match any StateError
func (e StateError) Is(target error) bool {
	_, ok := target.(StateError)
	return ok
}
