// Package gesture adapts external hand-tracking input into the single
// openness signal consumed by the particle field.
package gesture

import (
	"log/slog"
	"math"
)

// Signal is one reading of the hand-openness control.
// Openness is always within [0, 1] when built with NewSignal.
type Signal struct {
	Openness float64
	Detected bool
}

// Idle is the reading used when no hand is tracked.
var Idle = Signal{}

// NewSignal clamps openness into [0, 1]. NaN is treated as a closed hand.
func NewSignal(openness float64, detected bool) Signal {
	switch {
	case math.IsNaN(openness):
		openness = 0
	case openness < 0:
		openness = 0
	case openness > 1:
		openness = 1
	}
	return Signal{Openness: openness, Detected: detected}
}

// LogValue implements slog.LogValuer.
func (s Signal) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("openness", s.Openness),
		slog.Bool("detected", s.Detected),
	)
}
