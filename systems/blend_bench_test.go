package systems

import (
	"testing"

	"github.com/pthm-cable/morphfield/gesture"
	"github.com/pthm-cable/morphfield/shapes"
)

const benchParticles = 8000

func benchBuffers() (a, b, dst []float32) {
	n := benchParticles * 3
	a = make([]float32, n)
	b = make([]float32, n)
	dst = make([]float32, n)
	for i := range a {
		a[i] = float32(i) * 0.001
		b[i] = float32(i) * 0.002
	}
	return a, b, dst
}

// Benchmark the blend as a plain loop
func BenchmarkBlendScalar(bm *testing.B) {
	a, b, dst := benchBuffers()
	t := float32(0.5)

	bm.ResetTimer()
	for n := 0; n < bm.N; n++ {
		for i := range dst {
			dst[i] = a[i] + (b[i]-a[i])*t
		}
	}
}

// Benchmark the blas32 blend used by the field
func BenchmarkBlendBLAS(bm *testing.B) {
	a, b, dst := benchBuffers()

	bm.ResetTimer()
	for n := 0; n < bm.N; n++ {
		Blend(dst, a, b, 0.5)
	}
}

func BenchmarkLerp(bm *testing.B) {
	cur, target, _ := benchBuffers()

	bm.ResetTimer()
	for n := 0; n < bm.N; n++ {
		Lerp(cur, target, 0.15)
	}
}

func BenchmarkFieldTick(bm *testing.B) {
	f := newTestField(bm, benchParticles, shapes.Shape{Name: "Ligugu", Kind: shapes.TextForm, Text: "Ligugu", MorphText: "miss u"}, 1)
	sig := gesture.NewSignal(0.5, true)

	bm.ResetTimer()
	for n := 0; n < bm.N; n++ {
		f.Tick(1.0/60, sig)
	}
}
