package controller

import "errors"

// ErrSubmitInFlight signals a submit attempt while another submission is still
// running; callers treat it as "ignore the click", not a failure.
var ErrSubmitInFlight = errors.New("controller: submission already in flight")

// ValidationError reports a recoverable precondition failure (no template
// selected at submit). It blocks the operation but never changes loaded state.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "controller: " + e.Message
}
