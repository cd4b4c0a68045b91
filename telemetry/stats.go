package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Shape active at window end
	Shape        string `csv:"shape"`
	ShapeChanges int    `csv:"shape_changes"`

	// Gesture signal over the window
	DetectedFrac float64 `csv:"detected_frac"`
	OpennessMean float64 `csv:"openness_mean"` // Over detected ticks only
	OpennessMax  float64 `csv:"openness_max"`
	HandAcquired int     `csv:"hand_acquired"`
	HandLost     int     `csv:"hand_lost"`

	// Envelope over the window
	ExpansionMean float64 `csv:"expansion_mean"`
	NoiseMean     float64 `csv:"noise_mean"`
	MorphFrac     float64 `csv:"morph_frac"`

	// Particle distance from origin (sampled at window end)
	RadiusMean float64 `csv:"radius_mean"`
	RadiusStd  float64 `csv:"radius_std"`
	RadiusP10  float64 `csv:"radius_p10"`
	RadiusP50  float64 `csv:"radius_p50"`
	RadiusP90  float64 `csv:"radius_p90"`

	// Mean particle distance to its modulated target (sampled at window end)
	TargetDistance float64 `csv:"target_distance"`

	RunID string `csv:"run_id"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Distribution summarizes a sample.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
	Max           float64
}

// ComputeDistribution calculates mean, standard deviation and percentiles.
// The input is not modified.
func ComputeDistribution(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}

	var d Distribution
	d.Mean = stat.Mean(values, nil)
	if len(values) > 1 {
		d.Std = stat.PopStdDev(values, nil)
	}
	d.Max = floats.Max(values)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	d.P10 = Percentile(sorted, 0.10)
	d.P50 = Percentile(sorted, 0.50)
	d.P90 = Percentile(sorted, 0.90)
	return d
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.String("shape", s.Shape),
		slog.Int("shape_changes", s.ShapeChanges),
		slog.Float64("detected_frac", s.DetectedFrac),
		slog.Float64("openness_mean", s.OpennessMean),
		slog.Float64("openness_max", s.OpennessMax),
		slog.Int("hand_acquired", s.HandAcquired),
		slog.Int("hand_lost", s.HandLost),
		slog.Float64("expansion_mean", s.ExpansionMean),
		slog.Float64("noise_mean", s.NoiseMean),
		slog.Float64("morph_frac", s.MorphFrac),
		slog.Float64("radius_mean", s.RadiusMean),
		slog.Float64("radius_std", s.RadiusStd),
		slog.Float64("radius_p10", s.RadiusP10),
		slog.Float64("radius_p50", s.RadiusP50),
		slog.Float64("radius_p90", s.RadiusP90),
		slog.Float64("target_distance", s.TargetDistance),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
