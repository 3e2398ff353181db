package audiofilter

import (
	"errors"
	"fmt"
	"time"
)

// Chain runs filters in order over the same window. A Chain is itself a
// Filter, so chains nest.
type Chain struct {
	filters []Filter
}

// NewChain returns a chain of filters. Nil filters are skipped.
func NewChain(filters ...Filter) *Chain {
	c := &Chain{filters: make([]Filter, 0, len(filters))}
	for _, f := range filters {
		c.Append(f)
	}
	return c
}

// Append adds f to the end of the chain.
func (c *Chain) Append(f Filter) {
	if f != nil {
		c.filters = append(c.filters, f)
	}
}

// Filters returns the filters in processing order.
func (c *Chain) Filters() []Filter {
	out := make([]Filter, len(c.filters))
	copy(out, c.filters)
	return out
}

// Len returns the number of filters in the chain.
func (c *Chain) Len() int {
	return len(c.filters)
}

// Process implements Filter. It stops at the first failing filter.
func (c *Chain) Process(input [][]float32, offset, length int) error {
	for i, f := range c.filters {
		if err := f.Process(input, offset, length); err != nil {
			return fmt.Errorf("filter %d (%T): %w", i, f, err)
		}
	}
	return nil
}

// SeekPerformed implements Filter.
func (c *Chain) SeekPerformed(requested, provided time.Duration) {
	for _, f := range c.filters {
		f.SeekPerformed(requested, provided)
	}
}

// Flush implements Filter. Every filter is flushed; errors are joined.
func (c *Chain) Flush() error {
	var errs []error
	for _, f := range c.filters {
		errs = append(errs, f.Flush())
	}
	return errors.Join(errs...)
}

// Close implements Filter. Every filter is closed; errors are joined.
func (c *Chain) Close() error {
	var errs []error
	for _, f := range c.filters {
		errs = append(errs, f.Close())
	}
	return errors.Join(errs...)
}
