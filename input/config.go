// Package input turns raw joystick readings into the discrete events the game
// consumes: one direction per cooldown window and a debounced press edge.
package input

import "time"

// Config holds the stick thresholds and timing windows
type Config struct {
	// Axis readings are 10-bit, Center is the rest value
	Center int
	// Upper and Lower are the deflection thresholds
	Upper int
	Lower int
	// DeadZoneMin and DeadZoneMax bound the rest band of the other axis
	DeadZoneMin int
	DeadZoneMax int

	// Cooldown suppresses directions after one was reported
	Cooldown time.Duration
	// Debounce is how long the button level must hold before it counts
	Debounce time.Duration

	// LegacyDeadZone ignores the other axis entirely, so diagonals resolve by
	// precedence instead of being dropped
	LegacyDeadZone bool
}

// DefaultConfig returns the handheld's stick calibration
func DefaultConfig() Config {
	return Config{
		Center:      512,
		Upper:       768,
		Lower:       256,
		DeadZoneMin: 492,
		DeadZoneMax: 532,
		Cooldown:    500 * time.Millisecond,
		Debounce:    100 * time.Millisecond,
	}
}

// inDeadZone reports whether an axis value sits in the rest band
func (c Config) inDeadZone(v int) bool {
	if c.LegacyDeadZone {
		return true
	}
	return v >= c.DeadZoneMin && v <= c.DeadZoneMax
}
