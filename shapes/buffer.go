package shapes

// Buffer is a flat xyz position array: particle i occupies [3i, 3i+3).
type Buffer []float32

// NewBuffer allocates a zeroed buffer for n particles.
func NewBuffer(n int) Buffer {
	return make(Buffer, n*3)
}

// Len returns the number of particles.
func (b Buffer) Len() int {
	return len(b) / 3
}

// At returns the position of particle i.
func (b Buffer) At(i int) (x, y, z float32) {
	j := i * 3
	return b[j], b[j+1], b[j+2]
}

// Set stores the position of particle i.
func (b Buffer) Set(i int, x, y, z float64) {
	j := i * 3
	b[j] = float32(x)
	b[j+1] = float32(y)
	b[j+2] = float32(z)
}

// Clone returns an independent copy.
func (b Buffer) Clone() Buffer {
	c := make(Buffer, len(b))
	copy(c, b)
	return c
}
