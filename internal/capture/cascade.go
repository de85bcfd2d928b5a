package capture

import (
	"fmt"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/anas-gulzar-dev/grace-capture/internal/window"
)

// Activator raises a window to the foreground ahead of activation-dependent
// strategies.
type Activator interface {
	Activate(window.Handle) bool
}

// BoundsRefresher re-reads a window's current bounds. Coordinates can shift
// after activation, so refreshed bounds must be used for any post-activation
// grab.
type BoundsRefresher interface {
	Refresh(window.Handle) window.Handle
}

// Cascade orchestrates the strategy set: strategies run strictly in priority
// order and the first validated success wins. Successes are never ranked by
// quality.
type Cascade struct {
	strategies []Strategy
	activator  Activator
	refresher  BoundsRefresher
	dir        string

	// Now is replaceable in tests.
	Now func() time.Time
}

// NewCascade builds a cascade over the given strategies. activator and
// refresher may be nil, in which case activation-dependent strategies are
// never attempted.
func NewCascade(dir string, strategies []Strategy, activator Activator, refresher BoundsRefresher) *Cascade {
	return &Cascade{
		strategies: strategies,
		activator:  activator,
		refresher:  refresher,
		dir:        dir,
		Now:        time.Now,
	}
}

// Run attempts to capture the window and write the frame to disk. In
// background mode activation-dependent strategies are skipped; the
// foreground fallback is attempted only after every background-capable
// strategy has failed, and only when an activator is configured. In
// foreground mode the window is activated once up front and bounds are
// refreshed before any strategy runs.
//
// All-strategies-failed is a reported, non-fatal outcome: Success is false
// and Attempts carries per-strategy diagnostics.
func (c *Cascade) Run(h window.Handle, mode Mode, padding int, prefix string) Result {
	result := Result{Timestamp: c.Now()}
	opts := Options{Padding: padding}

	if mode == ModeForeground && c.activator != nil {
		c.activator.Activate(h)
		if c.refresher != nil {
			h = c.refresher.Refresh(h)
		}
		opts.PreActivated = true
	}

	for _, s := range c.strategies {
		if s.NeedsActivation() && !opts.PreActivated {
			continue
		}
		attempt := c.attempt(s, h, opts)
		result.Attempts = append(result.Attempts, attempt)
		if attempt.OK() {
			var saved bool
			if result, saved = c.finish(result, attempt, prefix); saved {
				return result
			}
		}
	}

	// Background last resort: activate and retry the activation-dependent
	// strategies with refreshed bounds.
	if mode == ModeBackground && !opts.PreActivated && c.activator != nil {
		c.activator.Activate(h)
		if c.refresher != nil {
			h = c.refresher.Refresh(h)
		}
		opts.PreActivated = true

		for _, s := range c.strategies {
			if !s.NeedsActivation() {
				continue
			}
			attempt := c.attempt(s, h, opts)
			result.Attempts = append(result.Attempts, attempt)
			if attempt.OK() {
				var saved bool
				if result, saved = c.finish(result, attempt, prefix); saved {
					return result
				}
			}
		}
	}

	return result
}

// attempt invokes one strategy, converting any panic into a failed attempt
// so a misbehaving OS call can never abort the cascade.
func (c *Cascade) attempt(s Strategy, h window.Handle, opts Options) (a Attempt) {
	defer func() {
		if r := recover(); r != nil {
			a = Attempt{StrategyID: s.ID(), Err: fmt.Errorf("strategy panic: %v", r)}
		}
	}()
	return s.Capture(h, opts)
}

// finish writes the winning frame to disk. A save failure degrades the
// attempt and reports false so the cascade keeps trying later strategies;
// the disk error stays visible in the attempt diagnostics either way.
func (c *Cascade) finish(result Result, attempt Attempt, prefix string) (Result, bool) {
	path, err := c.save(attempt, prefix, result.Timestamp)
	if err != nil {
		attempt.Err = err
		result.Attempts[len(result.Attempts)-1] = attempt
		return result, false
	}
	result.Success = true
	result.ImagePath = path
	result.StrategyUsed = attempt.StrategyID
	return result, true
}

func (c *Cascade) save(attempt Attempt, prefix string, ts time.Time) (string, error) {
	dir := c.dir
	// Manual captures live in their own subdirectory so user-initiated shots
	// don't mix with the auto-capture churn; cleanup walks one level down.
	if prefix == PrefixManual {
		dir = filepath.Join(c.dir, "manual_captures")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create screenshots directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s_%04d.png", prefix, ts.Format("20060102_150405"), 1000+rand.Intn(9000))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create screenshot file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, attempt.Image); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to encode screenshot: %w", err)
	}
	return path, nil
}
