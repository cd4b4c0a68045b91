package gesture

import "math"

// Sweep is a synthetic gesture source that opens and closes a virtual hand on
// a cosine cycle. Every fourth cycle the hand is withdrawn so the idle path
// also gets exercised.
type Sweep struct {
	Period float64 // Seconds per open/close cycle
}

// At returns the reading at t seconds.
func (s Sweep) At(t float64) Signal {
	if s.Period <= 0 || t < 0 {
		return Idle
	}
	cycle := int(t / s.Period)
	if cycle%4 == 3 {
		return Idle
	}
	phase := 2 * math.Pi * t / s.Period
	return NewSignal((1-math.Cos(phase))/2, true)
}
