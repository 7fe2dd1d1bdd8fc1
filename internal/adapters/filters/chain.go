package filters

import (
	"github.com/baditaflorin/go_mt_eval/internal/ports"
)

// Chain composes several line filters into one, applied in order.
type Chain struct {
	filters []ports.LineFilter
}

// NewChain creates a filter chain from the given filters.
func NewChain(filters ...ports.LineFilter) *Chain {
	return &Chain{filters: filters}
}

// Name returns the filter identifier.
func (c *Chain) Name() string { return "chain" }

// Apply runs the line through every filter in order.
func (c *Chain) Apply(line string) string {
	for _, f := range c.filters {
		line = f.Apply(line)
	}
	return line
}

// Filters returns the filters in the chain, in application order.
func (c *Chain) Filters() []ports.LineFilter {
	return c.filters
}
