// Package engine drives the device: a time source and the single cooperative
// loop that polls input and advances every periodic behaviour.
package engine

import "time"

// TimeProvider supplies "now" to the loop and to everything it drives
// Game code never calls time.Now directly so tests can control time
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the system clock (monotonic reading included)
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a system clock provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}
