// Package shapes generates target layouts for the particle field: procedural
// geometric forms and text glyphs sampled from a rasterized mask.
package shapes

import (
	"strings"

	"github.com/pthm-cable/morphfield/config"
)

// Kind identifies a family of target layouts.
type Kind uint8

const (
	Heart Kind = iota
	Flower
	Saturn
	Zen
	Fireworks
	Sphere
	TextForm
)

var kindNames = [...]string{
	Heart:     "heart",
	Flower:    "flower",
	Saturn:    "saturn",
	Zen:       "zen",
	Fireworks: "fireworks",
	Sphere:    "sphere",
	TextForm:  "text",
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind resolves a kind name case-insensitively. Unknown names resolve to Sphere.
func ParseKind(name string) Kind {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return Kind(k)
		}
	}
	return Sphere
}

// Shape is a selectable target form. Text forms carry the string they spell and,
// optionally, a companion string the field morphs toward as the hand opens.
type Shape struct {
	Name      string
	Kind      Kind
	Text      string
	MorphText string
}

// Morphable reports whether the shape owns a second target buffer.
func (s Shape) Morphable() bool {
	return s.Kind == TextForm && s.MorphText != ""
}

// Catalog is the ordered list of shapes offered to the user.
type Catalog []Shape

// DefaultCatalog mirrors the embedded configuration defaults.
func DefaultCatalog() Catalog {
	return Catalog{
		{Name: "Heart", Kind: Heart},
		{Name: "Flower", Kind: Flower},
		{Name: "Saturn", Kind: Saturn},
		{Name: "Zen", Kind: Zen},
		{Name: "Fireworks", Kind: Fireworks},
		{Name: "Sphere", Kind: Sphere},
		{Name: "Ligugu", Kind: TextForm, Text: "Ligugu", MorphText: "miss u"},
	}
}

// CatalogFromConfig builds a catalog from configuration entries.
// An empty list yields the default catalog.
func CatalogFromConfig(entries []config.ShapeConfig) Catalog {
	if len(entries) == 0 {
		return DefaultCatalog()
	}
	c := make(Catalog, 0, len(entries))
	for _, e := range entries {
		c = append(c, Shape{
			Name:      e.Name,
			Kind:      ParseKind(e.Kind),
			Text:      e.Text,
			MorphText: e.MorphText,
		})
	}
	return c
}

// Lookup finds a shape by name, ignoring case.
// Unknown names resolve to the catalog's Sphere entry, or a bare Sphere.
func (c Catalog) Lookup(name string) Shape {
	for _, s := range c {
		if strings.EqualFold(s.Name, name) {
			return s
		}
	}
	for _, s := range c {
		if s.Kind == Sphere {
			return s
		}
	}
	return Shape{Name: "Sphere", Kind: Sphere}
}

// Names returns the shape names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, len(c))
	for i, s := range c {
		names[i] = s.Name
	}
	return names
}
