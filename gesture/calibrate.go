package gesture

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// ErrNoSamples is returned when a calibration fit has nothing to fit.
var ErrNoSamples = errors.New("gesture: no calibration samples")

// CalibrationSample pairs a measured hand spread with the openness the
// user was asked to hold.
type CalibrationSample struct {
	Spread   float64 `csv:"spread"`
	Openness float64 `csv:"openness"`
}

// ParseSample decodes a recorded landmark line carrying an openness label.
//
//	{"openness":1,"hands":[[[x,y,z], ... 21 points]]}
func ParseSample(line []byte) (CalibrationSample, error) {
	var msg message
	if err := json.Unmarshal(line, &msg); err != nil {
		return CalibrationSample{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if msg.Openness == nil || len(msg.Hands) == 0 {
		return CalibrationSample{}, fmt.Errorf("%w: sample needs openness and hands", ErrMalformed)
	}
	hands, err := decodeHands(msg.Hands)
	if err != nil {
		return CalibrationSample{}, err
	}
	var total float64
	for i := range hands {
		total += hands[i].Spread()
	}
	return CalibrationSample{Spread: total / float64(len(hands)), Openness: *msg.Openness}, nil
}

// FitCalibration finds the fist and open distances that best map sample
// spreads onto their labels, starting the search from initial.
func FitCalibration(samples []CalibrationSample, initial Calibration) (Calibration, error) {
	if len(samples) == 0 {
		return initial, ErrNoSamples
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			span := x[1] - x[0]
			if span < 1e-6 {
				return math.Inf(1)
			}
			var loss float64
			for _, s := range samples {
				d := (s.Spread-x[0])/span - s.Openness
				loss += d * d
			}
			return loss / float64(len(samples))
		},
	}
	settings := &optimize.Settings{FuncEvaluations: 5000}

	result, err := optimize.Minimize(problem, []float64{initial.Fist, initial.Open}, settings, &optimize.NelderMead{})
	if result == nil {
		return initial, fmt.Errorf("fitting calibration: %w", err)
	}
	if err != nil {
		slog.Warn("calibration fit stopped early", "status", result.Status.String(), "error", err)
	}

	cal := Calibration{Fist: result.X[0], Open: result.X[1]}
	slog.Info("calibration fitted",
		"samples", len(samples),
		"fist", cal.Fist,
		"open", cal.Open,
		"loss", result.F,
	)
	return cal, nil
}
