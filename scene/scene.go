// Package scene owns the particle field and everything fed into it each tick:
// queued shape and colour commands, the gesture mailbox, the star backdrop and
// telemetry. It has no rendering dependency.
package scene

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/pthm-cable/morphfield/config"
	"github.com/pthm-cable/morphfield/gesture"
	"github.com/pthm-cable/morphfield/palette"
	"github.com/pthm-cable/morphfield/shapes"
	"github.com/pthm-cable/morphfield/systems"
	"github.com/pthm-cable/morphfield/telemetry"
)

// Options configures a scene.
type Options struct {
	Seed           int64
	ParticleCount  int     // 0 = use config
	LogStats       bool    // Log window stats and bookmarks via slog
	StatsWindowSec float64 // 0 = use config
	OutputDir      string  // Empty disables CSV output
	Sweep          bool    // Drive the field from a synthetic gesture instead of the mailbox
	NoBackdrop     bool

	StatsCallback func(telemetry.WindowStats)
}

// Frame is one tick of output for a renderer.
type Frame struct {
	systems.Frame
	Color  palette.Color
	Signal gesture.Signal
}

// Scene is the explicit mutable context the tick loop runs against.
// Commands may be issued from any goroutine; they take effect at the start of
// the next Tick. Tick itself must be called from one goroutine.
type Scene struct {
	mu           sync.Mutex
	pendingShape *shapes.Shape
	pendingColor *palette.Color

	catalog  shapes.Catalog
	text     *shapes.Rasterizer
	field    *systems.Field
	backdrop *systems.Backdrop
	mailbox  *gesture.Mailbox
	sweep    *gesture.Sweep
	color    palette.Color
	runID    string

	// Telemetry
	collector     *telemetry.Collector
	perf          *telemetry.PerfCollector
	bookmarks     *telemetry.BookmarkDetector
	output        *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
}

// New builds a scene from the global config showing the configured initial
// shape and colour.
func New(opts Options) (*Scene, error) {
	cfg := config.Cfg()

	color, err := palette.Parse(cfg.Field.InitialColor)
	if err != nil {
		return nil, fmt.Errorf("initial color: %w", err)
	}

	text, err := shapes.NewRasterizer(cfg.Text)
	if err != nil {
		return nil, fmt.Errorf("text rasterizer: %w", err)
	}

	n := cfg.Field.ParticleCount
	if opts.ParticleCount > 0 {
		n = opts.ParticleCount
	}
	rng := rand.New(rand.NewSource(opts.Seed))
	catalog := shapes.CatalogFromConfig(cfg.Shapes)
	gen := shapes.NewGenerator(n, text, rng)

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		text.Close()
		return nil, fmt.Errorf("telemetry output: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	s := &Scene{
		catalog:       catalog,
		text:          text,
		field:         systems.NewField(gen, cfg.Motion, catalog.Lookup(cfg.Field.InitialShape), rng),
		mailbox:       gesture.NewMailbox(cfg.Gesture.StaleAfter),
		color:         color,
		runID:         uuid.NewString(),
		collector:     telemetry.NewCollector(statsWindow, float32(cfg.Derived.DT)),
		perf:          telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarks:     telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize, cfg.Telemetry.SettleEpsilon),
		output:        output,
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
	}
	if cfg.Backdrop.Enabled && !opts.NoBackdrop {
		s.backdrop = systems.NewBackdrop(cfg.Backdrop)
	}
	if opts.Sweep {
		s.sweep = &gesture.Sweep{Period: cfg.Gesture.SweepPeriod}
	}

	slog.Info("scene ready",
		"run_id", s.runID,
		"particles", n,
		"shape", s.field.Shape().Name,
		"color", s.color.Hex,
		"backdrop", s.backdrop != nil,
		"sweep", opts.Sweep,
	)
	return s, nil
}

// SetShape queues a shape change by catalog name and returns the shape it
// resolved to. Unknown names resolve to Sphere.
func (s *Scene) SetShape(name string) shapes.Shape {
	shape := s.catalog.Lookup(name)
	s.mu.Lock()
	s.pendingShape = &shape
	s.mu.Unlock()
	return shape
}

// SetColor queues a colour change. Invalid colours are rejected and the
// current colour is kept.
func (s *Scene) SetColor(hex string) error {
	c, err := palette.Parse(hex)
	if err != nil {
		slog.Warn("rejected color", "color", hex, "error", err)
		return err
	}
	s.mu.Lock()
	s.pendingColor = &c
	s.mu.Unlock()
	return nil
}

// PostGesture delivers a gesture reading for the next tick.
func (s *Scene) PostGesture(sig gesture.Signal) {
	s.mailbox.Post(sig)
}

// Mailbox returns the gesture mailbox, for wiring a stream reader.
func (s *Scene) Mailbox() *gesture.Mailbox {
	return s.mailbox
}

// Tick applies queued commands, reads the latest gesture and advances the
// field and backdrop by dt seconds.
func (s *Scene) Tick(dt float64) Frame {
	s.perf.StartTick()

	s.perf.StartPhase(telemetry.PhaseCommands)
	s.applyCommands()

	s.perf.StartPhase(telemetry.PhaseGesture)
	sig := s.mailbox.Latest()
	if s.sweep != nil {
		sig = s.sweep.At(s.field.Elapsed())
	}

	s.perf.StartPhase(telemetry.PhaseField)
	frame := s.field.Tick(dt, sig)

	if s.backdrop != nil {
		s.perf.StartPhase(telemetry.PhaseBackdrop)
		s.backdrop.Update(s.field.Elapsed())
	}

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	s.recordTelemetry(frame, sig)

	s.perf.EndTick()

	return Frame{Frame: frame, Color: s.color, Signal: sig}
}

func (s *Scene) applyCommands() {
	s.mu.Lock()
	shape, color := s.pendingShape, s.pendingColor
	s.pendingShape, s.pendingColor = nil, nil
	s.mu.Unlock()

	if shape != nil {
		from := s.field.Shape().Name
		s.field.SetShape(*shape)
		s.collector.RecordShapeChange()
		slog.Info("shape changed", "from", from, "to", shape.Name, "kind", shape.Kind.String(), "tick", s.field.TickCount())
	}
	if color != nil {
		s.color = *color
		slog.Info("color changed", "color", s.color.Hex)
	}
}

// Shape returns the active shape.
func (s *Scene) Shape() shapes.Shape { return s.field.Shape() }

// Color returns the active colour.
func (s *Scene) Color() palette.Color { return s.color }

// Catalog returns the selectable shapes in display order.
func (s *Scene) Catalog() shapes.Catalog { return s.catalog }

// Field returns the particle field.
func (s *Scene) Field() *systems.Field { return s.field }

// Backdrop returns the star backdrop, or nil when disabled.
func (s *Scene) Backdrop() *systems.Backdrop { return s.backdrop }

// RunID identifies this scene in logs and telemetry rows.
func (s *Scene) RunID() string { return s.runID }

// Perf returns the tick timing collector.
func (s *Scene) Perf() *telemetry.PerfCollector { return s.perf }

// Close releases the font face and closes telemetry output.
func (s *Scene) Close() error {
	return errors.Join(s.text.Close(), s.output.Close())
}
