package shapes

import (
	"testing"

	"github.com/pthm-cable/morphfield/config"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"heart", Heart},
		{"Flower", Flower},
		{" SATURN ", Saturn},
		{"zen", Zen},
		{"fireworks", Fireworks},
		{"sphere", Sphere},
		{"text", TextForm},
		{"dodecahedron", Sphere},
		{"", Sphere},
	}
	for _, tt := range tests {
		if got := ParseKind(tt.in); got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCatalogLookup(t *testing.T) {
	cat := DefaultCatalog()

	if got := cat.Lookup("ligugu"); !got.Morphable() || got.MorphText != "miss u" {
		t.Errorf("Lookup(ligugu) = %+v, want morphable with companion", got)
	}
	if got := cat.Lookup("Heart"); got.Kind != Heart || got.Morphable() {
		t.Errorf("Lookup(Heart) = %+v", got)
	}
	if got := cat.Lookup("nonsense"); got.Kind != Sphere {
		t.Errorf("unknown name resolved to %v, want sphere", got.Kind)
	}
	if got := (Catalog{}).Lookup("Heart"); got.Kind != Sphere {
		t.Errorf("empty catalog resolved to %v, want sphere", got.Kind)
	}
}

func TestCatalogFromConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	cat := CatalogFromConfig(cfg.Shapes)
	want := DefaultCatalog()
	if len(cat) != len(want) {
		t.Fatalf("catalog has %d entries, want %d", len(cat), len(want))
	}
	for i := range want {
		if cat[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, cat[i], want[i])
		}
	}

	if got := CatalogFromConfig(nil); len(got) != len(want) {
		t.Errorf("empty config produced %d entries", len(got))
	}
}

func TestTextWithoutCompanionIsNotMorphable(t *testing.T) {
	s := Shape{Name: "Hello", Kind: TextForm, Text: "Hello"}
	if s.Morphable() {
		t.Error("text shape without companion reported morphable")
	}
}
