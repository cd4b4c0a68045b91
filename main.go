package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/morphfield/config"
	"github.com/pthm-cable/morphfield/game"
	"github.com/pthm-cable/morphfield/gesture"
	"github.com/pthm-cable/morphfield/scene"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	particles := flag.Int("particles", 0, "Particle count (0 = use config)")
	shape := flag.String("shape", "", "Initial shape (empty = use config)")
	sweep := flag.Bool("sweep", false, "Drive the field from a synthetic open/close cycle")
	gestureStdin := flag.Bool("gesture-stdin", false, "Read JSON-line gesture readings from stdin")
	realtime := flag.Bool("realtime", false, "Pace headless ticks at the target FPS")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := scene.Options{
		Seed:           rngSeed,
		ParticleCount:  *particles,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Sweep:          *sweep,
		NoBackdrop:     *headless,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *headless {
		if err := runHeadless(ctx, opts, *shape, *gestureStdin, *realtime, *maxTicks); err != nil {
			slog.Error("headless run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(game.Options{
		Scene:         opts,
		ManualGesture: !*gestureStdin && !*sweep,
	})
	if err != nil {
		slog.Error("failed to start", "error", err)
		return
	}
	defer g.Unload()

	if *shape != "" {
		g.SelectShape(*shape)
	}
	if *gestureStdin {
		startGestureStream(ctx, g.Mailbox())
	}

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
	}
}

// runHeadless ticks a scene without raylib until maxTicks or ctx is done.
func runHeadless(ctx context.Context, opts scene.Options, shape string, gestureStdin, realtime bool, maxTicks int) error {
	cfg := config.Cfg()

	s, err := scene.New(opts)
	if err != nil {
		return err
	}
	defer s.Close()

	if shape != "" {
		s.SetShape(shape)
	}
	if gestureStdin {
		startGestureStream(ctx, s.Mailbox())
	}

	slog.Info("starting headless run",
		"seed", opts.Seed,
		"max_ticks", maxTicks,
		"sweep", opts.Sweep,
		"gesture_stdin", gestureStdin,
		"realtime", realtime,
	)

	var pace <-chan time.Time
	if realtime {
		ticker := time.NewTicker(time.Duration(cfg.Derived.DT * float64(time.Second)))
		defer ticker.Stop()
		pace = ticker.C
	}

	for {
		if pace != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-pace:
			}
		} else if ctx.Err() != nil {
			return nil
		}

		frame := s.Tick(cfg.Derived.DT)

		if maxTicks > 0 && int(frame.Tick) >= maxTicks {
			slog.Info("max ticks reached", "tick", frame.Tick, "shape", s.Shape().Name)
			return nil
		}
	}
}

// startGestureStream feeds stdin readings into box until EOF or ctx ends.
func startGestureStream(ctx context.Context, box *gesture.Mailbox) {
	reader := gesture.NewStreamReader(os.Stdin, box, gesture.CalibrationFromConfig(config.Cfg().Gesture))
	go func() {
		err := reader.Run(ctx)
		lines, skipped := reader.Counts()
		switch {
		case err == nil:
			slog.Info("gesture stream ended", "lines", lines, "skipped", skipped)
		case errors.Is(err, context.Canceled):
		default:
			slog.Error("gesture stream failed", "error", err, "lines", lines)
		}
	}()
}
