package tui

import (
	"math"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/morphfield/camera"
	"github.com/pthm-cable/morphfield/config"
	"github.com/pthm-cable/morphfield/scene"
	"github.com/pthm-cable/morphfield/shapes"
	"github.com/pthm-cable/morphfield/systems"
)

func init() {
	config.MustInit("")
}

func newTestCamera(w, h int) *camera.Camera {
	cam := camera.New(config.Cfg().Camera, float64(w), float64(h))
	cam.CellAspect = 0.5
	return cam
}

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func newTestScene(t *testing.T) *scene.Scene {
	t.Helper()
	s, err := scene.New(scene.Options{Seed: 1, ParticleCount: 2000, NoBackdrop: true})
	if err != nil {
		t.Fatalf("scene.New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCanvasPlot(t *testing.T) {
	cam := newTestCamera(40, 20)
	c := NewCanvas(40, 20)

	// Three particles at the origin, one off to the right, one behind the camera.
	pos := shapes.Buffer{0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 20}
	c.Plot(pos, 0, cam)

	if got := c.Count(20, 10); got != 3 {
		t.Errorf("centre count = %d, want 3", got)
	}
	if c.Glyph(20, 10) != '@' {
		t.Errorf("densest glyph = %q, want '@'", c.Glyph(20, 10))
	}
	total := 0
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			total += c.Count(x, y)
		}
	}
	if total != 4 {
		t.Errorf("plotted %d particles, want 4 (one behind the camera)", total)
	}
	if c.Glyph(0, 0) != ' ' {
		t.Errorf("empty glyph = %q", c.Glyph(0, 0))
	}
}

func TestCanvasRotation(t *testing.T) {
	cam := newTestCamera(40, 20)
	c := NewCanvas(40, 20)
	pos := shapes.Buffer{1, 0, 0}

	c.Plot(pos, 0, cam)
	right := c.Count(20, 10)
	c.Plot(pos, math.Pi/2, cam)
	if c.Count(20, 10) != 1 || right != 0 {
		t.Errorf("quarter turn should bring +X onto the view axis: before %d after %d", right, c.Count(20, 10))
	}
}

func TestGlyphRampIsMonotonic(t *testing.T) {
	cam := newTestCamera(40, 20)
	c := NewCanvas(40, 20)
	var pos shapes.Buffer
	for n := 1; n <= 9; n++ {
		x := float32(n-5) * 0.5
		for i := 0; i < n; i++ {
			pos = append(pos, x, 0, 0)
		}
	}
	c.Plot(pos, 0, cam)

	first, prev := -1, -1
	for x := 0; x < 40; x++ {
		if c.Count(x, 10) == 0 {
			continue
		}
		idx := strings.IndexRune(Ramp, c.Glyph(x, 10))
		if idx < prev {
			t.Errorf("glyph at x=%d is %q, sparser than its left neighbour", x, c.Glyph(x, 10))
		}
		if first < 0 {
			first = idx
		}
		prev = idx
	}
	if first < 1 || prev != len(Ramp)-1 {
		t.Errorf("ramp runs from %d to %d, want visible to densest", first, prev)
	}
}

func TestViewDrawsField(t *testing.T) {
	screen := newSimScreen(t, 80, 24)
	s := newTestScene(t)
	app := NewApp(screen, s, newTestCamera(80, 24), config.Cfg().Derived.DT, true)

	for i := 0; i < 5; i++ {
		app.Step()
	}

	cells, w, h := screen.GetContents()
	if w != 80 || h != 24 {
		t.Fatalf("screen size = %dx%d", w, h)
	}
	lit := 0
	for _, cell := range cells[:w*(h-1)] {
		if len(cell.Runes) > 0 && strings.ContainsRune(Ramp[1:], cell.Runes[0]) {
			lit++
		}
	}
	if lit < 20 {
		t.Errorf("only %d cells lit", lit)
	}

	var status strings.Builder
	for _, cell := range cells[w*(h-1):] {
		if len(cell.Runes) > 0 {
			status.WriteRune(cell.Runes[0])
		}
	}
	if !strings.Contains(status.String(), "Heart") {
		t.Errorf("status line = %q", status.String())
	}
}

func TestHandleKey(t *testing.T) {
	screen := newSimScreen(t, 80, 24)
	s := newTestScene(t)
	cam := newTestCamera(80, 24)
	app := NewApp(screen, s, cam, config.Cfg().Derived.DT, true)

	key := func(r rune) bool {
		return app.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}

	key('3')
	key('+')
	key('+')
	frame := app.Step()
	if s.Shape().Name != "Saturn" {
		t.Errorf("shape = %q, want Saturn", s.Shape().Name)
	}
	if !frame.Signal.Detected || math.Abs(frame.Signal.Openness-0.2) > 1e-9 {
		t.Errorf("signal = %+v, want detected at 0.2", frame.Signal)
	}

	key('h')
	if frame := app.Step(); frame.Signal.Detected {
		t.Error("hand still detected after toggling it down")
	}

	before := s.Color().Hex
	key('c')
	app.Step()
	if s.Color().Hex == before {
		t.Error("c did not cycle the colour")
	}

	yaw := cam.Yaw
	app.HandleKey(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	if cam.Yaw == yaw {
		t.Error("right arrow did not orbit")
	}

	if !key('q') {
		t.Error("q should quit")
	}
	if !app.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Error("escape should quit")
	}
}

func TestLoweringHandReturnsToBreathing(t *testing.T) {
	screen := newSimScreen(t, 80, 24)
	s := newTestScene(t)
	app := NewApp(screen, s, newTestCamera(80, 24), config.Cfg().Derived.DT, true)

	key := func(r rune) {
		app.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}

	key('+')
	if frame := app.Step(); !frame.Signal.Detected || frame.Envelope.Expansion <= 1 {
		t.Fatalf("raised hand frame = %+v, want detected with expansion above 1", frame.Envelope)
	}

	key('h')
	for i := 0; i < 3; i++ {
		frame := app.Step()
		if frame.Signal.Detected {
			t.Fatalf("tick %d after lowering: hand still detected", i)
		}
		want := systems.Breath(s.Field().Elapsed()-config.Cfg().Derived.DT, config.Cfg().Motion)
		if math.Abs(frame.Envelope.Expansion-want) > 1e-9 {
			t.Errorf("tick %d after lowering: expansion = %v, want breath %v", i, frame.Envelope.Expansion, want)
		}
	}
}

func TestLoweringHandWithNoStaleness(t *testing.T) {
	config.Cfg().Gesture.StaleAfter = 0
	t.Cleanup(func() { config.MustInit("") })

	screen := newSimScreen(t, 80, 24)
	s := newTestScene(t)
	app := NewApp(screen, s, newTestCamera(80, 24), config.Cfg().Derived.DT, true)

	app.HandleKey(tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone))
	app.Step()
	app.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone))
	if frame := app.Step(); frame.Signal.Detected {
		t.Error("never-stale mailbox kept the lowered hand detected")
	}
}
