package gesture

import (
	"math"

	"github.com/pthm-cable/morphfield/config"
)

// LandmarkCount is the number of tracked points per hand.
const LandmarkCount = 21

// Wrist and fingertip landmark indices.
const (
	Wrist     = 0
	ThumbTip  = 4
	IndexTip  = 8
	MiddleTip = 12
	RingTip   = 16
	PinkyTip  = 20
)

var fingertips = [...]int{ThumbTip, IndexTip, MiddleTip, RingTip, PinkyTip}

// Landmark is a tracked point in normalized image coordinates.
// Z is carried for completeness; openness uses only X and Y.
type Landmark struct {
	X, Y, Z float64
}

// Hand holds the landmarks of one tracked hand.
type Hand [LandmarkCount]Landmark

// Calibration maps mean wrist-to-fingertip distance onto openness.
type Calibration struct {
	Fist float64 // Distance reported as openness 0
	Open float64 // Distance reported as openness 1
}

// DefaultCalibration matches a typical webcam framing.
var DefaultCalibration = Calibration{Fist: 0.15, Open: 0.4}

// CalibrationFromConfig builds a calibration from gesture config.
func CalibrationFromConfig(cfg config.GestureConfig) Calibration {
	return Calibration{Fist: cfg.FistDistance, Open: cfg.OpenDistance}
}

// Spread returns the mean 2D distance from the wrist to the five fingertips.
func (h *Hand) Spread() float64 {
	w := h[Wrist]
	var sum float64
	for _, tip := range fingertips {
		sum += math.Hypot(h[tip].X-w.X, h[tip].Y-w.Y)
	}
	return sum / float64(len(fingertips))
}

// Estimate averages the spread of every hand and maps it through cal.
// No hands yields the idle signal.
func Estimate(hands []Hand, cal Calibration) Signal {
	if len(hands) == 0 {
		return Idle
	}

	var total float64
	for i := range hands {
		total += hands[i].Spread()
	}
	avg := total / float64(len(hands))

	span := cal.Open - cal.Fist
	if span <= 0 {
		span = DefaultCalibration.Open - DefaultCalibration.Fist
	}
	return NewSignal((avg-cal.Fist)/span, true)
}
