package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkHandAcquired BookmarkType = "hand_acquired"
	BookmarkHandLost     BookmarkType = "hand_lost"
	BookmarkShapeChanged BookmarkType = "shape_changed"
	BookmarkSettled      BookmarkType = "settled"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects notable moments from consecutive windows.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	settleEpsilon float64
	settled       bool
}

// NewBookmarkDetector creates a detector with the given history size.
// settleEpsilon is the mean target distance below which the field counts as settled.
func NewBookmarkDetector(historySize int, settleEpsilon float64) *BookmarkDetector {
	if historySize < 2 {
		historySize = 2
	}
	return &BookmarkDetector{
		history:       make([]WindowStats, historySize),
		historySize:   historySize,
		settleEpsilon: settleEpsilon,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if prev, ok := bd.previous(); ok {
		if b := bd.checkHand(prev, stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkShape(prev, stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}
	if b := bd.checkSettled(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) previous() (WindowStats, bool) {
	if !bd.historyFull && bd.historyIdx == 0 {
		return WindowStats{}, false
	}
	i := (bd.historyIdx - 1 + bd.historySize) % bd.historySize
	return bd.history[i], true
}

// checkHand fires when the hand goes from mostly absent to mostly present,
// or the reverse, across consecutive windows.
func (bd *BookmarkDetector) checkHand(prev, stats WindowStats) *Bookmark {
	switch {
	case prev.DetectedFrac < 0.5 && stats.DetectedFrac >= 0.5:
		return &Bookmark{
			Type:        BookmarkHandAcquired,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Hand present %.0f%% of window, mean openness %.2f", stats.DetectedFrac*100, stats.OpennessMean),
		}
	case prev.DetectedFrac >= 0.5 && stats.DetectedFrac < 0.5:
		return &Bookmark{
			Type:        BookmarkHandLost,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Hand present %.0f%% of window, down from %.0f%%", stats.DetectedFrac*100, prev.DetectedFrac*100),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkShape(prev, stats WindowStats) *Bookmark {
	if stats.Shape == prev.Shape {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkShapeChanged,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%s -> %s", prev.Shape, stats.Shape),
	}
}

// checkSettled fires once each time the field comes to rest on its target.
func (bd *BookmarkDetector) checkSettled(stats WindowStats) *Bookmark {
	now := stats.TargetDistance < bd.settleEpsilon
	was := bd.settled
	bd.settled = now
	if !now || was {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkSettled,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("%s settled, mean target distance %.4f", stats.Shape, stats.TargetDistance),
	}
}

// History returns the retained windows, oldest first.
func (bd *BookmarkDetector) History() []WindowStats {
	if !bd.historyFull {
		out := make([]WindowStats, bd.historyIdx)
		copy(out, bd.history[:bd.historyIdx])
		return out
	}
	out := make([]WindowStats, 0, bd.historySize)
	out = append(out, bd.history[bd.historyIdx:]...)
	return append(out, bd.history[:bd.historyIdx]...)
}
