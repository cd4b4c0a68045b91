package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morphfield/palette"
	"github.com/pthm-cable/morphfield/renderer"
	"github.com/pthm-cable/morphfield/ui"
)

// Draw renders the last frame and the UI.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.background.Draw()

	rl.BeginMode3D(renderer.Camera3D(g.cam))
	g.stars.Draw(g.scene.Backdrop())
	g.particles.Draw(g.lastFrame)
	rl.EndMode3D()

	g.drawUI()

	rl.EndDrawing()
}

func (g *Game) drawUI() {
	frame := g.lastFrame

	g.hud.Draw(ui.HUDData{
		Title:     g.title,
		Shape:     g.scene.Shape().Name,
		Color:     frame.Color,
		Openness:  frame.Signal.Openness,
		Detected:  frame.Signal.Detected,
		Morphing:  frame.Envelope.Morphing,
		Expansion: frame.Envelope.Expansion,
		Tick:      frame.Tick,
		FPS:       rl.GetFPS(),
		Particles: frame.Positions.Len(),
	})

	if g.showPerf {
		g.perfPanel.Draw(g.scene.Perf().Stats())
	}

	act := g.controls.Draw(ui.ControlsState{
		Shapes:   g.scene.Catalog().Names(),
		Active:   g.scene.Shape().Name,
		Swatches: palette.Swatches(),
		Color:    g.scene.Color(),
		Openness: g.openness,
		HandUp:   g.handUp,
		Picking:  g.picker.IsOpen(),
	})
	g.applyControls(act)

	g.hud.DrawControls(g.screenHeight, controlsLegend)
}

// applyControls acts on panel clicks. Commands are queued and take effect
// on the next tick.
func (g *Game) applyControls(act ui.ControlsActions) {
	if act.Shape != "" {
		g.SelectShape(act.Shape)
	}
	if act.Color != nil {
		g.selectColor(*act.Color)
	}
	if act.OpenPicker {
		g.openPicker()
	}
	if g.manual {
		if act.HandToggle {
			g.handUp = !g.handUp
		}
		if act.Openness != g.openness {
			g.setOpenness(act.Openness)
			g.handUp = true
		}
	}
}
