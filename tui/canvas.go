// Package tui renders the particle field as ASCII density in a terminal.
package tui

import (
	"github.com/pthm-cable/morphfield/camera"
	"github.com/pthm-cable/morphfield/shapes"
)

// Ramp maps cell density to glyphs, sparse to dense.
const Ramp = " .:-=+*#%@"

// Canvas accumulates projected particle hits per terminal cell.
type Canvas struct {
	w, h   int
	counts []int
	max    int
}

// NewCanvas creates an empty w×h canvas.
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the canvas if the size changed.
func (c *Canvas) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if w == c.w && h == c.h && c.counts != nil {
		return
	}
	c.w, c.h = w, h
	c.counts = make([]int, w*h)
	c.max = 0
}

// Size returns the canvas dimensions in cells.
func (c *Canvas) Size() (w, h int) {
	return c.w, c.h
}

// Plot projects every particle, rotated about +Y by rotation, and counts
// hits per cell. Previous counts are cleared.
func (c *Canvas) Plot(pos shapes.Buffer, rotation float64, cam *camera.Camera) {
	clear(c.counts)
	c.max = 0
	for i := 0; i < pos.Len(); i++ {
		x, y, z := pos.At(i)
		rx, rz := camera.RotateY(float64(x), float64(z), rotation)
		sx, sy, _, ok := cam.WorldToScreen(rx, float64(y), rz)
		if !ok || !cam.IsVisible(sx, sy) {
			continue
		}
		idx := int(sy)*c.w + int(sx)
		if idx < 0 || idx >= len(c.counts) {
			continue
		}
		c.counts[idx]++
		if c.counts[idx] > c.max {
			c.max = c.counts[idx]
		}
	}
}

// Count returns the hits in a cell.
func (c *Canvas) Count(x, y int) int {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return 0
	}
	return c.counts[y*c.w+x]
}

// Intensity returns a cell's density relative to the densest cell, in [0, 1].
func (c *Canvas) Intensity(x, y int) float64 {
	if c.max == 0 {
		return 0
	}
	return float64(c.Count(x, y)) / float64(c.max)
}

// Glyph returns the ramp character for a cell. Any hit is at least the
// first visible glyph.
func (c *Canvas) Glyph(x, y int) rune {
	n := c.Count(x, y)
	if n == 0 {
		return ' '
	}
	last := len(Ramp) - 1
	i := 1 + int(c.Intensity(x, y)*float64(last-1)+0.5)
	if i > last {
		i = last
	}
	return rune(Ramp[i])
}
