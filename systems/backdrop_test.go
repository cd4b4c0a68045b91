package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/morphfield/components"
	"github.com/pthm-cable/morphfield/config"
)

func TestBackdrop(t *testing.T) {
	cfg := config.BackdropConfig{
		Enabled:      true,
		Count:        500,
		Radius:       100,
		Depth:        50,
		TwinkleSpeed: 1,
		Seed:         7,
	}
	b := NewBackdrop(cfg)
	if b.Count() != 500 {
		t.Fatalf("Count = %d, want 500", b.Count())
	}

	for _, elapsed := range []float64{0, 1.5, 30} {
		b.Update(elapsed)
		var seen int
		var sum float64
		b.Each(func(pos components.Position, size, brightness float32) {
			seen++
			r := math.Sqrt(float64(pos.X*pos.X + pos.Y*pos.Y + pos.Z*pos.Z))
			if r < 100-1e-3 || r > 150+1e-3 {
				t.Fatalf("star at radius %v outside shell", r)
			}
			if size < starSizeMin || size > starSizeMin+starSizeRange {
				t.Fatalf("star size %v out of range", size)
			}
			if brightness < 0 || brightness > 1 {
				t.Fatalf("brightness %v outside [0, 1]", brightness)
			}
			sum += float64(brightness)
		})
		if seen != 500 {
			t.Fatalf("Each visited %d stars, want 500", seen)
		}
		if mean := sum / 500; mean < 0.2 || mean > 0.8 {
			t.Errorf("mean brightness at %v = %v, want mid-range", elapsed, mean)
		}
	}
}
