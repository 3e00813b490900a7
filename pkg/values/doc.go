// Package values implements the in-memory value store backing an active
// template: kind-appropriate defaults at initialization, total-replacement
// writes, index-addressed repeater item updates, and chip-driven repeater
// items keyed by their type sub-field. A store is created when a template is
// selected and discarded when the selection changes.
package values
