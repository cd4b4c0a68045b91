package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morphfield/components"
	"github.com/pthm-cable/morphfield/systems"
)

// StarRenderer draws the twinkling backdrop.
type StarRenderer struct{}

// NewStarRenderer creates a new star renderer.
func NewStarRenderer() *StarRenderer {
	return &StarRenderer{}
}

// Draw renders every star with alpha from its brightness.
// Must be called between BeginMode3D and EndMode3D.
func (r *StarRenderer) Draw(b *systems.Backdrop) {
	if b == nil {
		return
	}
	rl.BeginBlendMode(rl.BlendAdditive)
	b.Each(func(pos components.Position, size, brightness float32) {
		color := rl.Color{R: 255, G: 255, B: 255, A: uint8(brightness * 255)}
		rl.DrawCube(rl.NewVector3(pos.X, pos.Y, pos.Z), size, size, size, color)
	})
	rl.EndBlendMode()
}
