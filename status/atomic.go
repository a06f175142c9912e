package status

import (
	"math"
	"sync/atomic"
)

// MaxStringLen bounds string metrics to one LCD line
const MaxStringLen = 16

// AtomicFloat stores a float64 as its bit pattern
// Zero value is ready to use (represents 0.0)
type AtomicFloat struct {
	bits atomic.Uint64
}

// Set stores val
func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

// Get loads the current value
func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// AtomicString holds a short label such as a phase or state name
// Zero value is ready to use (represents empty string)
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store sets the value, cutting it at MaxStringLen runes
func (s *AtomicString) Store(val string) {
	if r := []rune(val); len(r) > MaxStringLen {
		val = string(r[:MaxStringLen])
	}
	s.ptr.Store(&val)
}

// Load returns the current value
func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
