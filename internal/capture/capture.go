// Package capture obtains pixel images of on-screen windows through a
// priority-ordered cascade of capture strategies. Strategies differ in
// reliability and platform support; the cascade tries each in turn and stops
// at the first validated non-blank frame.
package capture

import (
	"image"
	"time"

	"github.com/anas-gulzar-dev/grace-capture/internal/window"
)

// Mode selects whether the target window may be brought to the foreground.
type Mode string

const (
	// ModeBackground captures without activating the window.
	ModeBackground Mode = "background"
	// ModeForeground activates the window before capturing.
	ModeForeground Mode = "foreground"
)

// Capture-mode filename prefixes.
const (
	PrefixAuto       = "auto"
	PrefixManual     = "manual"
	PrefixBackground = "background"
	PrefixSilent     = "silent"
)

// Options are passed to each strategy attempt.
type Options struct {
	// Padding crops this many pixels off each edge of the window region.
	Padding int
	// PreActivated tells activation-dependent strategies that the window
	// has already been raised.
	PreActivated bool
}

// Attempt is one strategy's outcome. Failures are values, never panics, so
// the cascade can continue past them.
type Attempt struct {
	StrategyID string
	Image      *image.RGBA
	IsBlank    bool
	Err        error
	Duration   time.Duration
}

// OK reports whether the attempt produced a usable frame.
func (a Attempt) OK() bool {
	return a.Err == nil && !a.IsBlank && a.Image != nil
}

// Strategy is one method of obtaining pixels for a window region.
type Strategy interface {
	ID() string
	// NeedsActivation reports whether the strategy only works when the
	// window is in the foreground.
	NeedsActivation() bool
	Capture(h window.Handle, opts Options) Attempt
}

// Result is the terminal outcome of a cascade run.
type Result struct {
	Success      bool
	ImagePath    string
	StrategyUsed string
	Attempts     []Attempt
	Timestamp    time.Time
}

// Errors returns the per-strategy failure reasons for diagnostics.
func (r Result) Errors() []string {
	var msgs []string
	for _, a := range r.Attempts {
		switch {
		case a.Err != nil:
			msgs = append(msgs, a.StrategyID+": "+a.Err.Error())
		case a.IsBlank:
			msgs = append(msgs, a.StrategyID+": blank frame")
		}
	}
	return msgs
}

// cropRegion applies padding to window bounds and clamps to a valid region.
func cropRegion(b window.Rect, padding int) window.Rect {
	r := window.Rect{
		Left:   b.Left + padding,
		Top:    b.Top + padding,
		Width:  b.Width - 2*padding,
		Height: b.Height - 2*padding,
	}
	if r.Width <= 0 || r.Height <= 0 {
		return b
	}
	return r
}
