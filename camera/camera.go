// Package camera provides an orbit camera around the particle field.
package camera

import (
	"math"

	"github.com/pthm-cable/morphfield/config"
)

const nearPlane = 0.1

// Camera orbits the origin at a fixed distance. There is no pan or zoom;
// dragging changes yaw and the polar angle, the latter clamped so the view
// never flips over the poles.
type Camera struct {
	// Yaw is the rotation about +Y, 0 looking down -Z
	Yaw float64

	// Polar is the angle from +Y in radians (π/2 = level)
	Polar float64

	Distance float64
	FOV      float64 // Vertical, degrees

	MinPolar, MaxPolar float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// CellAspect is the width/height ratio of one viewport unit.
	// 1 for pixels, about 0.5 for terminal cells.
	CellAspect float64
}

// New creates a level camera on the +Z axis.
func New(cfg config.CameraConfig, viewportW, viewportH float64) *Camera {
	c := &Camera{
		Distance:   cfg.Distance,
		FOV:        cfg.FOV,
		MinPolar:   cfg.MinPolar,
		MaxPolar:   cfg.MaxPolar,
		ViewportW:  viewportW,
		ViewportH:  viewportH,
		CellAspect: 1,
	}
	c.Reset()
	return c
}

// Reset returns the camera to the level front view.
func (c *Camera) Reset() {
	c.Yaw = 0
	c.Polar = clamp(math.Pi/2, c.MinPolar, c.MaxPolar)
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Rotate orbits by the given yaw and polar deltas in radians.
func (c *Camera) Rotate(dYaw, dPolar float64) {
	c.Yaw = math.Mod(c.Yaw+dYaw, 2*math.Pi)
	c.Polar = clamp(c.Polar+dPolar, c.MinPolar, c.MaxPolar)
}

// Eye returns the camera position in world coordinates.
func (c *Camera) Eye() (x, y, z float64) {
	s := math.Sin(c.Polar)
	return c.Distance * s * math.Sin(c.Yaw),
		c.Distance * math.Cos(c.Polar),
		c.Distance * s * math.Cos(c.Yaw)
}

// basis returns the right, up and forward vectors of the view.
func (c *Camera) basis() (right, up, fwd [3]float64) {
	ex, ey, ez := c.Eye()
	fwd = normalize([3]float64{-ex, -ey, -ez})
	right = normalize(cross(fwd, [3]float64{0, 1, 0}))
	up = cross(right, fwd)
	return right, up, fwd
}

// WorldToScreen projects a world point with a perspective divide.
// ok is false for points at or behind the near plane. depth is the distance
// along the view direction.
func (c *Camera) WorldToScreen(x, y, z float64) (sx, sy, depth float64, ok bool) {
	right, up, fwd := c.basis()
	ex, ey, ez := c.Eye()
	rel := [3]float64{x - ex, y - ey, z - ez}

	depth = dot(rel, fwd)
	if depth <= nearPlane {
		return 0, 0, depth, false
	}

	f := 1 / math.Tan(c.FOV*math.Pi/360)
	halfH := c.ViewportH / 2
	aspect := c.CellAspect
	if aspect <= 0 {
		aspect = 1
	}

	sx = c.ViewportW/2 + dot(rel, right)/depth*f*halfH/aspect
	sy = halfH - dot(rel, up)/depth*f*halfH
	return sx, sy, depth, true
}

// IsVisible reports whether a projected point lands inside the viewport.
func (c *Camera) IsVisible(sx, sy float64) bool {
	return sx >= 0 && sx < c.ViewportW && sy >= 0 && sy < c.ViewportH
}

// RotateY rotates (x, z) about the vertical axis by angle radians.
func RotateY(x, z, angle float64) (float64, float64) {
	s, co := math.Sincos(angle)
	return x*co + z*s, -x*s + z*co
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func normalize(v [3]float64) [3]float64 {
	l := math.Sqrt(dot(v, v))
	if l == 0 {
		return v
	}
	return [3]float64{v[0] / l, v[1] / l, v[2] / l}
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
