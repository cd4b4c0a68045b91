package systems

import (
	"gonum.org/v1/gonum/blas/blas32"
)

func vec(data []float32) blas32.Vector {
	return blas32.Vector{N: len(data), Inc: 1, Data: data}
}

// Blend writes (1-t)*a + t*b into dst. All three slices must have equal length.
// t = 0 and t = 1 reproduce a and b exactly.
func Blend(dst, a, b []float32, t float32) {
	switch t {
	case 0:
		copy(dst, a)
		return
	case 1:
		copy(dst, b)
		return
	}
	vd := vec(dst)
	blas32.Copy(vec(a), vd)    // dst = a
	blas32.Scal(1-t, vd)       // dst = (1-t)*a
	blas32.Axpy(t, vec(b), vd) // dst = (1-t)*a + t*b
}

// Lerp moves cur toward target by factor l in place: cur = (1-l)*cur + l*target.
func Lerp(cur, target []float32, l float32) {
	vc := vec(cur)
	blas32.Scal(1-l, vc)
	blas32.Axpy(l, vec(target), vc)
}
