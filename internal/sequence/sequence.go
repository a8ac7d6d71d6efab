// Package sequence hands out process-lifetime identifiers.
package sequence

import "sync/atomic"

// Generator yields strictly increasing ids.
type Generator interface {
	Next() int64
}

// Counter is a Generator starting at 1.
type Counter struct {
	last atomic.Int64
}

// NewCounter returns a counter whose first id is 1.
func NewCounter() *Counter {
	return &Counter{}
}

// Next returns the next id.
func (c *Counter) Next() int64 {
	return c.last.Add(1)
}
