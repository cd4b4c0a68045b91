package telemetry

import (
	"testing"
)

func hasBookmark(bms []Bookmark, typ BookmarkType) bool {
	for _, bm := range bms {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_HandTransitions(t *testing.T) {
	bd := NewBookmarkDetector(10, 0.05)

	bd.Check(WindowStats{WindowEndTick: 300, Shape: "Heart", DetectedFrac: 0, TargetDistance: 1})

	bms := bd.Check(WindowStats{WindowEndTick: 600, Shape: "Heart", DetectedFrac: 0.9, TargetDistance: 1})
	if !hasBookmark(bms, BookmarkHandAcquired) {
		t.Errorf("expected hand_acquired, got %+v", bms)
	}

	bms = bd.Check(WindowStats{WindowEndTick: 900, Shape: "Heart", DetectedFrac: 0.8, TargetDistance: 1})
	if len(bms) != 0 {
		t.Errorf("steady hand produced %+v", bms)
	}

	bms = bd.Check(WindowStats{WindowEndTick: 1200, Shape: "Heart", DetectedFrac: 0.1, TargetDistance: 1})
	if !hasBookmark(bms, BookmarkHandLost) {
		t.Errorf("expected hand_lost, got %+v", bms)
	}
}

func TestBookmarkDetector_ShapeChanged(t *testing.T) {
	bd := NewBookmarkDetector(10, 0.05)

	if bms := bd.Check(WindowStats{Shape: "Heart", TargetDistance: 1}); hasBookmark(bms, BookmarkShapeChanged) {
		t.Error("first window cannot be a shape change")
	}
	bms := bd.Check(WindowStats{WindowEndTick: 600, Shape: "Saturn", TargetDistance: 1})
	if !hasBookmark(bms, BookmarkShapeChanged) {
		t.Fatalf("expected shape_changed, got %+v", bms)
	}
	for _, bm := range bms {
		if bm.Type == BookmarkShapeChanged && bm.Description != "Heart -> Saturn" {
			t.Errorf("description = %q", bm.Description)
		}
	}
}

func TestBookmarkDetector_SettledFiresOnce(t *testing.T) {
	bd := NewBookmarkDetector(10, 0.05)

	distances := []float64{2, 0.5, 0.01, 0.01, 0.02, 1.5, 0.03}
	var fired []int32
	for i, d := range distances {
		tick := int32((i + 1) * 300)
		for _, bm := range bd.Check(WindowStats{WindowEndTick: tick, Shape: "Zen", TargetDistance: d}) {
			if bm.Type == BookmarkSettled {
				fired = append(fired, bm.Tick)
			}
		}
	}

	want := []int32{900, 2100}
	if len(fired) != len(want) {
		t.Fatalf("settled fired at %v, want %v", fired, want)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Errorf("settled fired at %v, want %v", fired, want)
		}
	}
}

func TestBookmarkDetector_History(t *testing.T) {
	bd := NewBookmarkDetector(3, 0.05)
	for i := 1; i <= 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i), TargetDistance: 1})
	}

	h := bd.History()
	if len(h) != 3 {
		t.Fatalf("history len = %d, want 3", len(h))
	}
	for i, want := range []int32{3, 4, 5} {
		if h[i].WindowEndTick != want {
			t.Errorf("history[%d] = %d, want %d", i, h[i].WindowEndTick, want)
		}
	}
}
