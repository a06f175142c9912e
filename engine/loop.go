package engine

import (
	"context"
	"errors"
	"time"
)

// DefaultTickInterval is the polling period of the device loop
const DefaultTickInterval = 5 * time.Millisecond

// ErrStopped is returned by Run when the step function asked to stop
var ErrStopped = errors.New("engine: loop stopped")

// StepFunc advances every behaviour once; returning false ends the loop
type StepFunc func(now time.Time) bool

// Loop is the single cooperative control loop
// Every periodic behaviour compares now against its own last timestamp inside
// the step; the loop only decides how often that happens
type Loop struct {
	Interval time.Duration
	Clock    TimeProvider

	ticks uint64
}

// NewLoop creates a loop polling every interval, falling back to the default
func NewLoop(interval time.Duration, clock TimeProvider) *Loop {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}
	return &Loop{Interval: interval, Clock: clock}
}

// Ticks returns how many steps ran so far
func (l *Loop) Ticks() uint64 {
	return l.ticks
}

// Run calls step once per interval until ctx is done or step returns false
func (l *Loop) Run(ctx context.Context, step StepFunc) error {
	ticker := time.NewTicker(l.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.ticks++
			if !step(l.Clock.Now()) {
				return ErrStopped
			}
		}
	}
}

// RunFor drives step with a fixed simulated interval, no sleeping
// Used by tests and headless tools to replay a number of ticks deterministically
func RunFor(clock *MockTimeProvider, interval time.Duration, ticks int, step StepFunc) int {
	for i := 0; i < ticks; i++ {
		if !step(clock.Advance(interval)) {
			return i + 1
		}
	}
	return ticks
}
