package game

import rl "github.com/gen2brain/raylib-go/raylib"

// shapeKeys select catalog entries by position.
var shapeKeys = []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive, rl.KeySix, rl.KeySeven, rl.KeyEight, rl.KeyNine}

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.showPerf = !g.showPerf
	}
	if rl.IsKeyPressed(rl.KeyC) {
		g.openPicker()
	}

	catalog := g.scene.Catalog()
	for i, key := range shapeKeys {
		if i < len(catalog) && rl.IsKeyPressed(key) {
			g.SelectShape(catalog[i].Name)
		}
	}

	if g.manual {
		g.handleGestureInput()
	}
	g.handleCameraInput()
}

// handleGestureInput maps keys and the wheel onto the simulated hand.
func (g *Game) handleGestureInput() {
	if rl.IsKeyPressed(rl.KeyH) {
		g.handUp = !g.handUp
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.setOpenness(g.openness + opennessStep/4)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.setOpenness(g.openness - opennessStep/4)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.setOpenness(g.openness + wheel*opennessStep)
		g.handUp = true
	}
}

// handleCameraInput orbits on left-drag outside the controls panel.
func (g *Game) handleCameraInput() {
	if rl.IsKeyPressed(rl.KeyR) {
		g.orbit.Reset()
	}

	mouse := rl.GetMousePosition()
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		g.dragging = !g.controls.Contains(mouse.X, mouse.Y)
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		g.dragging = false
	}
	if g.dragging && rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		delta := rl.GetMouseDelta()
		g.orbit.Rotate(-float64(delta.X)*orbitSensitivity, -float64(delta.Y)*orbitSensitivity)
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.cam.Resize(float64(w), float64(h))
	g.background.Resize(w, h)
	g.controls.SetPosition(w-panelWidth-10, 10)
}
