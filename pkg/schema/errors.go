package schema

import (
	"errors"
	"fmt"
)

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Key    string // Dotted field path, e.g. "warrior.Bash.cost"
	Reason string // Human-readable reason for failure
	Value  any    // The value that failed validation
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("field %q: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("field %q: %s (got %T)", e.Key, e.Reason, e.Value)
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}

// prefix scopes every failure in err under scope and flattens nested
// aggregates.
func prefix(scope string, err error) error {
	var out []error
	var walk func(error)
	walk = func(err error) {
		var aggr *AggregateError
		if errors.As(err, &aggr) {
			for _, e := range aggr.Errors {
				walk(e)
			}
			return
		}
		var ve *ValidationError
		if errors.As(err, &ve) {
			scoped := *ve
			scoped.Key = scope + "." + ve.Key
			out = append(out, &scoped)
			return
		}
		out = append(out, fmt.Errorf("%s: %w", scope, err))
	}
	walk(err)
	return &AggregateError{Errors: out}
}

// flatten merges nested aggregates into one.
func flatten(errs []error) error {
	out := make([]error, 0, len(errs))
	for _, err := range errs {
		var aggr *AggregateError
		if errors.As(err, &aggr) {
			out = append(out, ValidationErrors(flatten(aggr.Errors))...)
			continue
		}
		out = append(out, err)
	}
	return &AggregateError{Errors: out}
}
