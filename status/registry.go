// Package status collects the runtime counters of a session: ticks, moves,
// pickups, catches and the current phase. Readers are the simulator's debug
// line and the spectator feed.
package status

import "sync/atomic"

// Well-known metric keys
const (
	KeyTicks         = "loop.ticks"
	KeyMoves         = "player.moves"
	KeyCrossings     = "player.crossings"
	KeyPickups       = "note.pickups"
	KeyCatches       = "pursuer.catches"
	KeySteps         = "pursuer.steps"
	KeyDistance      = "pursuer.distance"
	KeyPursuerState  = "pursuer.state"
	KeyRounds        = "game.rounds"
	KeyElapsed       = "game.elapsed"
	KeyPhase         = "game.phase"
	KeyPaused        = "game.paused"
	KeyScreen        = "menu.screen"
	KeyFramesDropped = "spectate.dropped"
)

// Registry groups the metric maps by value type
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns the number of metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Len() + r.Ints.Len() + r.Floats.Len() + r.Strings.Len()
}

// Snapshot copies every metric into a plain map, suitable for JSON
func (r *Registry) Snapshot() map[string]any {
	out := make(map[string]any, r.TotalCount())
	for k, v := range r.Bools.All() {
		out[k] = v.Load()
	}
	for k, v := range r.Ints.All() {
		out[k] = v.Load()
	}
	for k, v := range r.Floats.All() {
		out[k] = v.Get()
	}
	for k, v := range r.Strings.All() {
		out[k] = v.Load()
	}
	return out
}
