package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrValidation marks a request payload that is malformed or incomplete.
	ErrValidation = errors.New("validation failed")
	// ErrConsistency marks a delete that would orphan rows still referencing the target.
	ErrConsistency = errors.New("consistency violation")
	// ErrExecution wraps failures reported by the analyzer collaborator.
	ErrExecution = errors.New("execution failed")
)
