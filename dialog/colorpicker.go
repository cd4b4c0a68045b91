// Package dialog runs native dialogs off the render loop.
package dialog

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/ncruces/zenity"

	"github.com/pthm-cable/morphfield/palette"
)

// ErrBusy is returned when a picker dialog is already open.
var ErrBusy = errors.New("color picker already open")

// PickFunc shows a colour dialog starting at initial.
type PickFunc func(initial color.Color) (color.Color, error)

// ZenityPick opens the platform colour chooser.
func ZenityPick(initial color.Color) (color.Color, error) {
	return zenity.SelectColor(
		zenity.Title("Particle colour"),
		zenity.Color(initial),
		zenity.ShowPalette(),
	)
}

// Result is the outcome of one picker dialog.
type Result struct {
	Color    palette.Color
	Canceled bool
	Err      error
}

// ColorPicker opens a dialog in a goroutine and hands the choice back
// through Poll, so the render loop never blocks on the dialog.
type ColorPicker struct {
	pick PickFunc

	mu      sync.Mutex
	open    bool
	results chan Result
}

// NewColorPicker creates a picker using pick, or ZenityPick if nil.
func NewColorPicker(pick PickFunc) *ColorPicker {
	if pick == nil {
		pick = ZenityPick
	}
	return &ColorPicker{
		pick:    pick,
		results: make(chan Result, 1),
	}
}

// Open starts a dialog seeded with the current colour.
func (p *ColorPicker) Open(current palette.Color) error {
	p.mu.Lock()
	if p.open {
		p.mu.Unlock()
		return ErrBusy
	}
	p.open = true
	p.mu.Unlock()

	go func() {
		res := p.run(current)
		p.mu.Lock()
		p.open = false
		p.mu.Unlock()
		p.results <- res
	}()
	return nil
}

func (p *ColorPicker) run(current palette.Color) Result {
	c, err := p.pick(current.Colorful())
	if errors.Is(err, zenity.ErrCanceled) {
		return Result{Canceled: true}
	}
	if err != nil {
		return Result{Err: fmt.Errorf("color dialog: %w", err)}
	}
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return Result{Err: fmt.Errorf("color dialog: %w: transparent selection", palette.ErrInvalidColor)}
	}
	chosen, err := palette.Parse(cf.Clamped().Hex())
	if err != nil {
		return Result{Err: err}
	}
	return Result{Color: chosen}
}

// Poll returns a finished dialog's result without blocking.
func (p *ColorPicker) Poll() (Result, bool) {
	select {
	case res := <-p.results:
		if res.Err != nil {
			slog.Warn("color picker failed", "error", res.Err)
		}
		return res, true
	default:
		return Result{}, false
	}
}

// Wait blocks until the open dialog finishes.
func (p *ColorPicker) Wait() Result {
	return <-p.results
}

// IsOpen reports whether a dialog is showing.
func (p *ColorPicker) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.open
}
