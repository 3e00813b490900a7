package controller

import "github.com/goliatone/go-formflow/pkg/schema"

// Option configures a Controller at construction.
type Option func(*Controller)

// WithRegistry seeds a pre-built template registry, bypassing LoadTemplates.
// Useful for embedded template sets and tests.
func WithRegistry(reg *schema.Registry) Option {
	return func(c *Controller) {
		if reg != nil {
			c.reg = reg
		}
	}
}
