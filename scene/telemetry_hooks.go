package scene

import (
	"log/slog"

	"github.com/pthm-cable/morphfield/gesture"
	"github.com/pthm-cable/morphfield/systems"
	"github.com/pthm-cable/morphfield/telemetry"
)

// recordTelemetry feeds the tick into the collector and flushes finished windows.
func (s *Scene) recordTelemetry(frame systems.Frame, sig gesture.Signal) {
	acquired, lost := s.collector.Record(telemetry.TickSample{
		Openness:  sig.Openness,
		Detected:  sig.Detected,
		Expansion: frame.Envelope.Expansion,
		Noise:     frame.Envelope.Noise,
		Morphing:  frame.Envelope.Morphing,
	})
	if acquired {
		slog.Info("hand acquired", "tick", frame.Tick, "signal", sig)
	}
	if lost {
		slog.Info("hand lost", "tick", frame.Tick)
	}

	s.flushTelemetry(frame.Tick)
}

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (s *Scene) flushTelemetry(tick int32) {
	if !s.collector.ShouldFlush(tick) {
		return
	}

	stats := s.collector.Flush(tick, s.field.Shape().Name, s.field.Current(), s.field.MeanTargetDistance())
	stats.RunID = s.runID
	perfStats := s.perf.Stats()

	if s.statsCallback != nil {
		s.statsCallback(stats)
	}

	if s.logStats {
		stats.LogStats()
		slog.Info("perf", "stats", perfStats)
	}

	if err := s.output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := s.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range s.bookmarks.Check(stats) {
		if s.logStats {
			bm.LogBookmark()
		}
		if err := s.output.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}
