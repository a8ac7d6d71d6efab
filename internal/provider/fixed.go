package provider

import (
	"context"
	"fmt"
	"sync"
)

// FixedSource replays a scripted sequence of integers, cycling when it runs
// out. It forces wheel outcomes in tests and rigged demo sessions.
type FixedSource struct {
	mu     sync.Mutex
	values []int
	pos    int
}

// NewFixedSource returns a source that yields values in order.
func NewFixedSource(values ...int) *FixedSource {
	return &FixedSource{values: append([]int(nil), values...)}
}

// Intn returns the next scripted value. A value outside [0, n) is an error.
func (s *FixedSource) Intn(_ context.Context, n int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.values) == 0 {
		return 0, fmt.Errorf("fixed source: no values scripted")
	}
	v := s.values[s.pos%len(s.values)]
	s.pos++
	if v < 0 || v >= n {
		return 0, fmt.Errorf("fixed source: value %d outside [0, %d)", v, n)
	}
	return v, nil
}

// Calls reports how many values have been consumed.
func (s *FixedSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}
