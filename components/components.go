// Package components defines ECS components for the star backdrop.
package components

// Position represents a star's world position.
type Position struct {
	X, Y, Z float32
}

// Star holds the fixed appearance of a backdrop star.
type Star struct {
	Size  float32 // Point size in world units
	Phase float32 // Noise-space offset so neighbours twinkle independently
}

// Twinkle holds the per-tick brightness of a star.
type Twinkle struct {
	Brightness float32 // 0.0 to 1.0
}
