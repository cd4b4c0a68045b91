// Package game is the interactive raylib shell around a scene: input,
// camera, drawing and the colour dialog.
package game

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morphfield/camera"
	"github.com/pthm-cable/morphfield/config"
	"github.com/pthm-cable/morphfield/dialog"
	"github.com/pthm-cable/morphfield/gesture"
	"github.com/pthm-cable/morphfield/palette"
	"github.com/pthm-cable/morphfield/renderer"
	"github.com/pthm-cable/morphfield/scene"
	"github.com/pthm-cable/morphfield/ui"
)

// Control constants
const (
	orbitSensitivity = 0.005 // Radians per dragged pixel
	opennessStep     = 0.05  // Per wheel notch or key press
	panelWidth       = 200
)

const controlsLegend = "[1-7] shape  [H] hand  [Up/Down/wheel] openness  [C] colour  [drag] orbit  [R] reset view  [Tab] panel  [P] perf"

// Options configures the interactive shell.
type Options struct {
	Scene scene.Options

	// ManualGesture lets keyboard and panel controls drive the gesture.
	// Disable when an external stream feeds the mailbox.
	ManualGesture bool
}

// Game holds the interactive state around a scene.
type Game struct {
	scene *scene.Scene
	cam   *camera.Camera
	orbit *camera.Damped
	dt    float64
	title string

	// Rendering
	background *renderer.BackgroundRenderer
	particles  *renderer.ParticleRenderer
	stars      *renderer.StarRenderer
	hud        *ui.HUD
	controls   *ui.ControlsPanel
	perfPanel  *ui.PerfPanel
	picker     *dialog.ColorPicker

	// Manual gesture state
	manual   bool
	handUp   bool
	openness float32

	showPerf  bool
	dragging  bool
	lastFrame scene.Frame

	screenWidth, screenHeight int32
}

// NewGame creates a game. The raylib window must already be open.
func NewGame(opts Options) (*Game, error) {
	cfg := config.Cfg()

	s, err := scene.New(opts.Scene)
	if err != nil {
		return nil, fmt.Errorf("creating scene: %w", err)
	}

	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())

	g := &Game{
		scene:        s,
		cam:          camera.New(cfg.Camera, float64(w), float64(h)),
		dt:           cfg.Derived.DT,
		title:        cfg.Screen.Title,
		background:   renderer.NewBackgroundRenderer(w, h),
		particles:    renderer.NewParticleRenderer(cfg.Field),
		stars:        renderer.NewStarRenderer(),
		hud:          ui.NewHUD(),
		controls:     ui.NewControlsPanel(w-panelWidth-10, 10, panelWidth),
		perfPanel:    ui.NewPerfPanel(10, 200),
		picker:       dialog.NewColorPicker(nil),
		manual:       opts.ManualGesture,
		screenWidth:  w,
		screenHeight: h,
	}
	g.orbit = camera.NewDamped(g.cam, cfg.Screen.TargetFPS)
	g.lastFrame = scene.Frame{Color: s.Color()}
	g.lastFrame.Positions = s.Field().Current()

	return g, nil
}

// Update handles input and advances the scene one tick.
func (g *Game) Update() {
	g.handleInput()
	g.orbit.Update()
	g.pollPicker()

	if g.manual {
		sig := gesture.Idle
		if g.handUp {
			sig = gesture.NewSignal(float64(g.openness), true)
		}
		g.scene.PostGesture(sig)
	}

	g.lastFrame = g.scene.Tick(g.dt)
	g.scene.Perf().RecordFrame()
}

func (g *Game) pollPicker() {
	res, ok := g.picker.Poll()
	if !ok || res.Canceled || res.Err != nil {
		return
	}
	if err := g.scene.SetColor(res.Color.Hex); err != nil {
		slog.Warn("picked colour rejected", "error", err)
	}
}

// SelectShape queues a shape change by catalog name.
func (g *Game) SelectShape(name string) {
	shape := g.scene.SetShape(name)
	slog.Debug("shape selected", "shape", shape.Name)
}

// Mailbox returns the scene's gesture mailbox.
func (g *Game) Mailbox() *gesture.Mailbox {
	return g.scene.Mailbox()
}

func (g *Game) selectColor(c palette.Color) {
	if err := g.scene.SetColor(c.Hex); err != nil {
		slog.Warn("swatch rejected", "error", err)
	}
}

func (g *Game) openPicker() {
	if err := g.picker.Open(g.scene.Color()); err != nil {
		slog.Debug("color picker not opened", "error", err)
	}
}

func (g *Game) setOpenness(v float32) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	g.openness = v
}

// Tick returns the number of ticks run so far.
func (g *Game) Tick() int32 {
	return g.scene.Field().TickCount()
}

// Unload releases the scene's resources.
func (g *Game) Unload() {
	if err := g.scene.Close(); err != nil {
		slog.Error("closing scene", "error", err)
	}
}
