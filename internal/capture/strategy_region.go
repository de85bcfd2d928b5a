package capture

import (
	"errors"
	"image"
	"time"

	"github.com/kbinani/screenshot"

	"github.com/anas-gulzar-dev/grace-capture/internal/window"
)

// RegionGrab captures the screen pixels within the window's current bounds.
// Works on every OS but only yields the window's content when the window is
// actually the visible content at those coordinates.
type RegionGrab struct{}

func (RegionGrab) ID() string            { return "generic_region_grab" }
func (RegionGrab) NeedsActivation() bool { return false }

func (RegionGrab) Capture(h window.Handle, opts Options) Attempt {
	return grabRegion("generic_region_grab", h, opts)
}

// ForegroundGrab is the lowest-priority fallback: a screen-region grab that
// requires the window to have been activated first. Bounds must be the
// refreshed, post-activation bounds; the cascade handles that.
type ForegroundGrab struct{}

func (ForegroundGrab) ID() string            { return "foreground_grab" }
func (ForegroundGrab) NeedsActivation() bool { return true }

func (ForegroundGrab) Capture(h window.Handle, opts Options) Attempt {
	if !opts.PreActivated {
		return Attempt{StrategyID: "foreground_grab", Err: errors.New("window not activated")}
	}
	return grabRegion("foreground_grab", h, opts)
}

func grabRegion(id string, h window.Handle, opts Options) Attempt {
	start := time.Now()

	if !h.HasBounds && (h.Bounds.Width <= 0 || h.Bounds.Height <= 0) {
		return Attempt{StrategyID: id, Err: errors.New("window has no usable bounds"), Duration: time.Since(start)}
	}

	region := cropRegion(h.Bounds, opts.Padding)
	rect := image.Rect(region.Left, region.Top, region.Left+region.Width, region.Top+region.Height)

	img, err := screenshot.CaptureRect(rect)
	if err != nil {
		return Attempt{StrategyID: id, Err: err, Duration: time.Since(start)}
	}
	if !validFrame(img) {
		return Attempt{StrategyID: id, Err: errors.New("empty frame"), Duration: time.Since(start)}
	}

	return Attempt{
		StrategyID: id,
		Image:      img,
		IsBlank:    IsBlank(img),
		Duration:   time.Since(start),
	}
}
