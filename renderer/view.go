package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morphfield/camera"
)

// Camera3D converts the orbit camera into a raylib perspective camera.
func Camera3D(cam *camera.Camera) rl.Camera3D {
	x, y, z := cam.Eye()
	return rl.Camera3D{
		Position:   rl.NewVector3(float32(x), float32(y), float32(z)),
		Target:     rl.NewVector3(0, 0, 0),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       float32(cam.FOV),
		Projection: rl.CameraPerspective,
	}
}
