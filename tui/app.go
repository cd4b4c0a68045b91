package tui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/morphfield/camera"
	"github.com/pthm-cable/morphfield/gesture"
	"github.com/pthm-cable/morphfield/palette"
	"github.com/pthm-cable/morphfield/scene"
)

// Key steps
const (
	opennessStep = 0.1
	orbitStep    = 0.1 // Radians per arrow press
)

// App drives a scene from a terminal: one tick and redraw per interval,
// keys mapped onto scene commands.
type App struct {
	screen tcell.Screen
	scene  *scene.Scene
	view   *View
	cam    *camera.Camera
	dt     float64

	manual   bool
	handUp   bool
	openness float64
	swatch   int
}

// NewApp wires a scene to an initialised screen. manual enables the
// keyboard-driven hand.
func NewApp(screen tcell.Screen, s *scene.Scene, cam *camera.Camera, dt float64, manual bool) *App {
	return &App{
		screen: screen,
		scene:  s,
		view:   NewView(screen, cam),
		cam:    cam,
		dt:     dt,
		manual: manual,
	}
}

// View returns the app's view.
func (a *App) View() *View {
	return a.view
}

// Step posts the manual gesture, ticks the scene and redraws.
func (a *App) Step() scene.Frame {
	if a.manual {
		a.scene.PostGesture(a.manualSignal())
	}
	frame := a.scene.Tick(a.dt)
	a.scene.Perf().RecordFrame()
	a.view.Draw(frame, a.scene.Backdrop(), StatusLine(frame, a.scene.Shape().Name, a.scene.Perf().Stats().FPS))
	return frame
}

// HandleKey applies one key press and reports whether the app should quit.
func (a *App) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		a.cam.Rotate(-orbitStep, 0)
	case tcell.KeyRight:
		a.cam.Rotate(orbitStep, 0)
	case tcell.KeyUp:
		a.cam.Rotate(0, -orbitStep)
	case tcell.KeyDown:
		a.cam.Rotate(0, orbitStep)
	case tcell.KeyRune:
		return a.handleRune(ev.Rune())
	}
	return false
}

func (a *App) handleRune(r rune) bool {
	switch {
	case r == 'q':
		return true
	case r >= '1' && r <= '9':
		catalog := a.scene.Catalog()
		if i := int(r - '1'); i < len(catalog) {
			a.scene.SetShape(catalog[i].Name)
		}
	case r == 'h' && a.manual:
		a.handUp = !a.handUp
	case (r == '+' || r == '=') && a.manual:
		a.setOpenness(a.openness + opennessStep)
	case r == '-' && a.manual:
		a.setOpenness(a.openness - opennessStep)
	case r == 'c':
		swatches := palette.Swatches()
		a.swatch = (a.swatch + 1) % len(swatches)
		_ = a.scene.SetColor(swatches[a.swatch].Hex)
	case r == 'r':
		a.cam.Reset()
	}
	return false
}

// manualSignal is the keyboard hand: tracked while raised, Idle once lowered.
func (a *App) manualSignal() gesture.Signal {
	if !a.handUp {
		return gesture.Idle
	}
	return gesture.NewSignal(a.openness, true)
}

func (a *App) setOpenness(v float64) {
	a.openness = min(max(v, 0), 1)
	a.handUp = true
}

// Run ticks until ctx is cancelled or the user quits.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Duration(a.dt * float64(time.Second)))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if a.HandleKey(ev) {
					return nil
				}
			case *tcell.EventResize:
				a.view.Sync()
			}
		case <-ticker.C:
			a.Step()
		}
	}
}
