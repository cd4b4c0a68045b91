package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morphfield/camera"
	"github.com/pthm-cable/morphfield/config"
	"github.com/pthm-cable/morphfield/scene"
)

// ParticleRenderer draws the field as small additive cubes.
type ParticleRenderer struct {
	size    float32
	opacity float64
}

// NewParticleRenderer creates a particle renderer from the field config.
func NewParticleRenderer(cfg config.FieldConfig) *ParticleRenderer {
	return &ParticleRenderer{
		size:    float32(cfg.PointSize),
		opacity: cfg.Opacity,
	}
}

// Draw renders the frame's positions rotated about +Y by the frame rotation.
// Must be called between BeginMode3D and EndMode3D.
func (r *ParticleRenderer) Draw(frame scene.Frame) {
	cr, cg, cb, ca := frame.Color.RGBA(r.opacity)
	color := rl.Color{R: cr, G: cg, B: cb, A: ca}

	rl.BeginBlendMode(rl.BlendAdditive)
	pos := frame.Positions
	for i := 0; i < pos.Len(); i++ {
		x, y, z := pos.At(i)
		rx, rz := camera.RotateY(float64(x), float64(z), frame.Rotation)
		rl.DrawCube(rl.NewVector3(float32(rx), y, float32(rz)), r.size, r.size, r.size, color)
	}
	rl.EndBlendMode()
}
