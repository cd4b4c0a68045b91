// Package renderer draws the field, the star backdrop and the background
// with raylib.
package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

// Gradient stops: gray-900 at the edges fading to black in the middle.
var (
	edgeColor   = rl.Color{R: 17, G: 24, B: 39, A: 255}
	centreColor = rl.Color{R: 0, G: 0, B: 0, A: 255}
)

// BackgroundRenderer fills the screen with a vertical gradient.
type BackgroundRenderer struct {
	screenW, screenH int32
}

// NewBackgroundRenderer creates a new background renderer.
func NewBackgroundRenderer(screenW, screenH int32) *BackgroundRenderer {
	return &BackgroundRenderer{screenW: screenW, screenH: screenH}
}

// Resize updates the fill area.
func (b *BackgroundRenderer) Resize(screenW, screenH int32) {
	b.screenW = screenW
	b.screenH = screenH
}

// Draw renders the gradient. Call outside 3D mode.
func (b *BackgroundRenderer) Draw() {
	half := b.screenH / 2
	rl.DrawRectangleGradientV(0, 0, b.screenW, half, edgeColor, centreColor)
	rl.DrawRectangleGradientV(0, half, b.screenW, b.screenH-half, centreColor, edgeColor)
}
