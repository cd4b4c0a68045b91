// Command termview previews the particle field in a terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/morphfield/camera"
	"github.com/pthm-cable/morphfield/config"
	"github.com/pthm-cable/morphfield/gesture"
	"github.com/pthm-cable/morphfield/scene"
	"github.com/pthm-cable/morphfield/tui"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	particles := flag.Int("particles", 3000, "Particle count (0 = use config)")
	shape := flag.String("shape", "", "Initial shape (empty = use config)")
	sweep := flag.Bool("sweep", false, "Drive the field from a synthetic open/close cycle")
	gestureStdin := flag.Bool("gesture-stdin", false, "Read JSON-line gesture readings from stdin")
	logFile := flag.String("log", "", "Write JSON logs to this file (default: discard)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	// The terminal is the display; logs must not go to it.
	var logOut io.Writer = io.Discard
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			log.Fatalf("failed to open log file: %v", err)
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	s, err := scene.New(scene.Options{
		Seed:          rngSeed,
		ParticleCount: *particles,
		Sweep:         *sweep,
	})
	if err != nil {
		log.Fatalf("failed to create scene: %v", err)
	}
	defer s.Close()
	if *shape != "" {
		s.SetShape(*shape)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *gestureStdin {
		reader := gesture.NewStreamReader(os.Stdin, s.Mailbox(), gesture.CalibrationFromConfig(cfg.Gesture))
		go func() {
			if err := reader.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("gesture stream failed", "error", err)
			}
		}()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("failed to init screen: %v", err)
	}

	w, h := screen.Size()
	cam := camera.New(cfg.Camera, float64(w), float64(h))
	app := tui.NewApp(screen, s, cam, cfg.Derived.DT, !*gestureStdin && !*sweep)

	err = app.Run(ctx)
	screen.Fini()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("%v", err)
	}
}
