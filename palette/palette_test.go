package palette

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#4da6ff", Color{Hex: "#4da6ff", R: 0x4d, G: 0xa6, B: 0xff}, false},
		{"#4DA6FF", Color{Hex: "#4da6ff", R: 0x4d, G: 0xa6, B: 0xff}, false},
		{"ff4d4d", Color{Hex: "#ff4d4d", R: 0xff, G: 0x4d, B: 0x4d}, false},
		{"#fff", Color{Hex: "#ffffff", R: 0xff, G: 0xff, B: 0xff}, false},
		{"  #000000 ", Color{Hex: "#000000"}, false},
		{"", Color{}, true},
		{"#12345", Color{}, true},
		{"#gggggg", Color{}, true},
		{"blue", Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidColor) {
					t.Fatalf("err = %v, want ErrInvalidColor", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSwatches(t *testing.T) {
	sw := Swatches()
	if len(sw) != 7 {
		t.Fatalf("got %d swatches, want 7", len(sw))
	}
	for i, c := range sw {
		if c.Hex != DefaultSwatches[i] {
			t.Errorf("swatch %d = %s, want %s", i, c.Hex, DefaultSwatches[i])
		}
	}
}

func TestBlendEndpoints(t *testing.T) {
	a := MustParse("#ff0000")
	b := MustParse("#0000ff")
	if got := a.Blend(b, 0); got != a {
		t.Errorf("Blend(0) = %v, want %v", got, a)
	}
	if got := a.Blend(b, 1); got != b {
		t.Errorf("Blend(1) = %v, want %v", got, b)
	}
}

func TestRGBA(t *testing.T) {
	c := MustParse("#4da6ff")
	if _, _, _, a := c.RGBA(0.8); a != 204 {
		t.Errorf("alpha = %d, want 204", a)
	}
	if _, _, _, a := c.RGBA(2); a != 255 {
		t.Errorf("alpha = %d, want 255", a)
	}
}
