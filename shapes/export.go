package shapes

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
)

// Point is one particle row in an exported buffer.
type Point struct {
	Index int     `csv:"index"`
	X     float32 `csv:"x"`
	Y     float32 `csv:"y"`
	Z     float32 `csv:"z"`
}

// Points unpacks a buffer into rows.
func (b Buffer) Points() []Point {
	pts := make([]Point, b.Len())
	for i := range pts {
		x, y, z := b.At(i)
		pts[i] = Point{Index: i, X: x, Y: y, Z: z}
	}
	return pts
}

// WriteCSV writes the buffer as index,x,y,z rows with a header.
func WriteCSV(w io.Writer, b Buffer) error {
	if err := gocsv.Marshal(b.Points(), w); err != nil {
		return fmt.Errorf("writing points: %w", err)
	}
	return nil
}

// ReadCSV reads a buffer written by WriteCSV. Rows are placed by index.
func ReadCSV(r io.Reader) (Buffer, error) {
	var pts []Point
	if err := gocsv.Unmarshal(r, &pts); err != nil {
		return nil, fmt.Errorf("reading points: %w", err)
	}
	b := NewBuffer(len(pts))
	for _, p := range pts {
		if p.Index < 0 || p.Index >= len(pts) {
			return nil, fmt.Errorf("reading points: index %d out of range", p.Index)
		}
		b.Set(p.Index, float64(p.X), float64(p.Y), float64(p.Z))
	}
	return b, nil
}
