// Package controller owns the form session state machine: no template
// selected, template active, submitting, and the terminal result/failed states
// that editing re-enters. It wires the value store, formula evaluation,
// payload sanitization, and the generation collaborator together while keeping
// each of those pieces independently testable. Exactly one submission may be
// in flight; aborted requests are treated as no-ops rather than failures.
package controller
