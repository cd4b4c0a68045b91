package telemetry

import (
	"math"
)

// TickSample is the per-tick input to the collector.
type TickSample struct {
	Openness  float64
	Detected  bool
	Expansion float64
	Noise     float64
	Morphing  bool
}

// Collector accumulates per-tick samples within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	// Accumulators for current window
	ticks         int
	detectedTicks int
	morphTicks    int
	opennessSum   float64
	opennessMax   float64
	expansionSum  float64
	noiseSum      float64
	shapeChanges  int
	handAcquired  int
	handLost      int

	// Carried across windows
	lastDetected bool
	radii        []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(math.Round(windowDurationSec / float64(dt)))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// Record adds one tick to the current window and reports hand transitions.
func (c *Collector) Record(s TickSample) (acquired, lost bool) {
	c.ticks++
	if s.Detected {
		c.detectedTicks++
		c.opennessSum += s.Openness
		c.opennessMax = math.Max(c.opennessMax, s.Openness)
	}
	if s.Morphing {
		c.morphTicks++
	}
	c.expansionSum += s.Expansion
	c.noiseSum += s.Noise

	acquired = s.Detected && !c.lastDetected
	lost = !s.Detected && c.lastDetected
	if acquired {
		c.handAcquired++
	}
	if lost {
		c.handLost++
	}
	c.lastDetected = s.Detected
	return acquired, lost
}

// RecordShapeChange records a shape-select command taking effect.
func (c *Collector) RecordShapeChange() {
	c.shapeChanges++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// positions is the current particle buffer, flat xyz.
func (c *Collector) Flush(currentTick int32, shape string, positions []float32, targetDistance float64) WindowStats {
	n := len(positions) / 3
	if cap(c.radii) < n {
		c.radii = make([]float64, n)
	}
	c.radii = c.radii[:n]
	for i := 0; i < n; i++ {
		x := float64(positions[3*i])
		y := float64(positions[3*i+1])
		z := float64(positions[3*i+2])
		c.radii[i] = math.Sqrt(x*x + y*y + z*z)
	}
	radius := ComputeDistribution(c.radii)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Shape:        shape,
		ShapeChanges: c.shapeChanges,

		OpennessMax:  c.opennessMax,
		HandAcquired: c.handAcquired,
		HandLost:     c.handLost,

		RadiusMean: radius.Mean,
		RadiusStd:  radius.Std,
		RadiusP10:  radius.P10,
		RadiusP50:  radius.P50,
		RadiusP90:  radius.P90,

		TargetDistance: targetDistance,
	}
	if c.ticks > 0 {
		stats.DetectedFrac = float64(c.detectedTicks) / float64(c.ticks)
		stats.MorphFrac = float64(c.morphTicks) / float64(c.ticks)
		stats.ExpansionMean = c.expansionSum / float64(c.ticks)
		stats.NoiseMean = c.noiseSum / float64(c.ticks)
	}
	if c.detectedTicks > 0 {
		stats.OpennessMean = c.opennessSum / float64(c.detectedTicks)
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.ticks = 0
	c.detectedTicks = 0
	c.morphTicks = 0
	c.opennessSum = 0
	c.opennessMax = 0
	c.expansionSum = 0
	c.noiseSum = 0
	c.shapeChanges = 0
	c.handAcquired = 0
	c.handLost = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
