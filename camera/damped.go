package camera

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Spring tuning for orbit damping.
const (
	orbitFrequency = 8.0
	orbitDamping   = 1.0 // Critically damped
)

// Damped eases a camera toward a goal orientation with a spring, so drags
// glide to a stop instead of snapping.
type Damped struct {
	cam    *Camera
	spring harmonica.Spring

	goalYaw, goalPolar float64
	yawVel, polarVel   float64
}

// NewDamped wraps cam, stepping fps times per second.
func NewDamped(cam *Camera, fps int) *Damped {
	return &Damped{
		cam:       cam,
		spring:    harmonica.NewSpring(harmonica.FPS(fps), orbitFrequency, orbitDamping),
		goalYaw:   cam.Yaw,
		goalPolar: cam.Polar,
	}
}

// Camera returns the wrapped camera.
func (d *Damped) Camera() *Camera {
	return d.cam
}

// Rotate moves the goal orientation; the camera follows on Update.
func (d *Damped) Rotate(dYaw, dPolar float64) {
	d.goalYaw += dYaw
	d.goalPolar = clamp(d.goalPolar+dPolar, d.cam.MinPolar, d.cam.MaxPolar)
}

// Reset snaps the camera and goal back to the front view.
func (d *Damped) Reset() {
	d.cam.Reset()
	d.goalYaw, d.goalPolar = d.cam.Yaw, d.cam.Polar
	d.yawVel, d.polarVel = 0, 0
}

// Update advances the spring one frame.
func (d *Damped) Update() {
	yaw, yawVel := d.spring.Update(d.cam.Yaw, d.yawVel, d.goalYaw)
	polar, polarVel := d.spring.Update(d.cam.Polar, d.polarVel, d.goalPolar)
	d.yawVel, d.polarVel = yawVel, polarVel

	// Keep yaw bounded without a jump between camera and goal.
	if math.Abs(yaw) > 2*math.Pi {
		wrap := math.Trunc(yaw/(2*math.Pi)) * 2 * math.Pi
		yaw -= wrap
		d.goalYaw -= wrap
	}
	d.cam.Yaw = yaw
	d.cam.Polar = clamp(polar, d.cam.MinPolar, d.cam.MaxPolar)
}

// Settled reports whether the camera has reached its goal.
func (d *Damped) Settled() bool {
	const eps = 1e-4
	return math.Abs(d.cam.Yaw-d.goalYaw) < eps && math.Abs(d.cam.Polar-d.goalPolar) < eps &&
		math.Abs(d.yawVel) < eps && math.Abs(d.polarVel) < eps
}
