// Package schema defines the typed representation of a form template: ordered
// sections of fields, per-field kinds, and the formula descriptors backing
// calculated fields. Templates are loaded once per session and treated as
// immutable; Validate enforces the structural invariants (unique field keys,
// no nested repeaters, formulas on calculated fields) and Registry holds the
// selectable set, excluding any template that fails validation so one bad
// schema never blocks the rest.
package schema
