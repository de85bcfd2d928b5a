//go:build windows
// +build windows

package capture

import (
	"errors"
	"image"
	"image/draw"
	"time"

	"github.com/cretz/go-scrap"

	"github.com/anas-gulzar-dev/grace-capture/internal/window"
)

// frameTimeout bounds the would-block retry loop; the duplication API only
// delivers a frame when the desktop has changed since the last one.
const frameTimeout = time.Second

// DuplicationGrab captures the physical screen region covering the window's
// bounds through the DXGI desktop duplication interface. Fastest method, but
// returns empty frames for occluded or minimized windows.
type DuplicationGrab struct{}

func (DuplicationGrab) ID() string            { return "duplication_api" }
func (DuplicationGrab) NeedsActivation() bool { return false }

func (DuplicationGrab) Capture(h window.Handle, opts Options) Attempt {
	const id = "duplication_api"
	start := time.Now()

	if h.Bounds.Width <= 0 || h.Bounds.Height <= 0 {
		return Attempt{StrategyID: id, Err: errors.New("window has no usable bounds"), Duration: time.Since(start)}
	}

	if err := scrap.MakeDPIAware(); err != nil {
		return Attempt{StrategyID: id, Err: err, Duration: time.Since(start)}
	}
	display, err := scrap.PrimaryDisplay()
	if err != nil {
		return Attempt{StrategyID: id, Err: err, Duration: time.Since(start)}
	}
	capturer, err := scrap.NewCapturer(display)
	if err != nil {
		return Attempt{StrategyID: id, Err: err, Duration: time.Since(start)}
	}

	frame, err := nextFrame(capturer)
	if err != nil {
		return Attempt{StrategyID: id, Err: err, Duration: time.Since(start)}
	}

	region := cropRegion(h.Bounds, opts.Padding)
	img := image.NewRGBA(image.Rect(0, 0, region.Width, region.Height))
	draw.Draw(img, img.Bounds(), frame, image.Pt(region.Left, region.Top), draw.Src)

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

// nextFrame polls until the duplication API has a frame available, sleeping
// ~1/60th of a second between tries.
func nextFrame(c *scrap.Capturer) (*scrap.FrameImage, error) {
	deadline := time.Now().Add(frameTimeout)
	for {
		img, _, err := c.FrameImage()
		if err != nil {
			return nil, err
		}
		if img != nil {
			img.Detach()
			return img, nil
		}
		if time.Now().After(deadline) {
			return nil, errors.New("no frame available before timeout")
		}
		time.Sleep(17 * time.Millisecond)
	}
}
