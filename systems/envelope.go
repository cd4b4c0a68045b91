// Package systems implements the per-tick particle field update and the star
// backdrop.
package systems

import (
	"log/slog"
	"math"

	"github.com/pthm-cable/morphfield/config"
	"github.com/pthm-cable/morphfield/gesture"
)

// Envelope holds the per-tick modulation derived from the gesture signal.
type Envelope struct {
	Expansion float64 // Radial scale applied to the target
	Noise     float64 // Per-axis jitter amplitude
	Blend     float64 // Weight of the morph target, 0 unless Morphing
	Morphing  bool    // True when the two-target blend is active
}

// LogValue implements slog.LogValuer.
func (e Envelope) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("expansion", e.Expansion),
		slog.Float64("noise", e.Noise),
		slog.Float64("blend", e.Blend),
		slog.Bool("morphing", e.Morphing),
	)
}

// Breath returns the idle expansion at elapsed seconds.
func Breath(elapsed float64, p config.MotionConfig) float64 {
	return math.Sin(elapsed*p.BreathRate)*p.BreathAmplitude + 1
}

// ComputeEnvelope derives the envelope for one tick. morphable reports
// whether the active shape carries a morph target.
//
//	no hand:           expansion = breath(t), noise = 0
//	hand, plain shape: expansion = 1 + o*gain, noise = o*noiseGain
//	hand, morphable:   expansion = 1, noise = o*morphNoiseGain, blend = o
func ComputeEnvelope(sig gesture.Signal, elapsed float64, morphable bool, p config.MotionConfig) Envelope {
	if !sig.Detected {
		return Envelope{Expansion: Breath(elapsed, p)}
	}

	o := sig.Openness
	if morphable {
		return Envelope{
			Expansion: 1,
			Noise:     o * p.MorphNoiseGain,
			Blend:     o,
			Morphing:  true,
		}
	}
	return Envelope{
		Expansion: 1 + o*p.ExpansionGain,
		Noise:     o * p.NoiseGain,
	}
}

// RotationDelta returns the spin applied to the field this tick, in radians.
func RotationDelta(sig gesture.Signal, p config.MotionConfig) float64 {
	d := p.BaseSpin
	if sig.Detected {
		d += sig.Openness * p.GestureSpin
	}
	return d
}
