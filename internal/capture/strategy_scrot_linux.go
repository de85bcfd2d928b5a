//go:build linux
// +build linux

package capture

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/anas-gulzar-dev/grace-capture/internal/window"
)

// ScrotGrab shells out to the scrot utility. When the handle carries a
// native X11 id, fresh geometry is resolved through xdotool first so the
// area passed to scrot matches the window's current position.
type ScrotGrab struct{}

func (ScrotGrab) ID() string            { return "scrot_cli" }
func (ScrotGrab) NeedsActivation() bool { return false }

func (ScrotGrab) Capture(h window.Handle, opts Options) Attempt {
	const id = "scrot_cli"
	start := time.Now()

	bounds := h.Bounds
	if h.NativeID != "" {
		if fresh, err := resolveGeometry(h.NativeID); err == nil {
			bounds = fresh
		}
	}
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return Attempt{StrategyID: id, Err: errors.New("window has no usable bounds"), Duration: time.Since(start)}
	}
	region := cropRegion(bounds, opts.Padding)

	tmp := filepath.Join(os.TempDir(), fmt.Sprintf("grace_scrot_%d.png", time.Now().UnixNano()))
	defer os.Remove(tmp)

	area := fmt.Sprintf("%d,%d,%d,%d", region.Left, region.Top, region.Width, region.Height)
	out, err := exec.Command("scrot", "-a", area, tmp).CombinedOutput()
	if err != nil {
		return Attempt{StrategyID: id, Err: fmt.Errorf("scrot failed: %v: %s", err, strings.TrimSpace(string(out))), Duration: time.Since(start)}
	}

	info, err := os.Stat(tmp)
	if err != nil || info.Size() == 0 {
		return Attempt{StrategyID: id, Err: errors.New("scrot produced no output file"), Duration: time.Since(start)}
	}

	img, err := decodePNG(tmp)
	if err != nil {
		return Attempt{StrategyID: id, Err: err, Duration: time.Since(start)}
	}

	return Attempt{
		StrategyID: id,
		Image:      img,
		IsBlank:    IsBlank(img),
		Duration:   time.Since(start),
	}
}

// resolveGeometry reads current window geometry from xdotool's shell-style
// output (X=, Y=, WIDTH=, HEIGHT= lines).
func resolveGeometry(nativeID string) (window.Rect, error) {
	out, err := exec.Command("xdotool", "getwindowgeometry", "--shell", nativeID).Output()
	if err != nil {
		return window.Rect{}, err
	}

	var r window.Rect
	for _, line := range strings.Split(string(out), "\n") {
		parts := strings.SplitN(strings.TrimSpace(line), "=", 2)
		if len(parts) != 2 {
			continue
		}
		v, err := strconv.Atoi(parts[1])
		if err != nil {
			continue
		}
		switch parts[0] {
		case "X":
			r.Left = v
		case "Y":
			r.Top = v
		case "WIDTH":
			r.Width = v
		case "HEIGHT":
			r.Height = v
		}
	}
	if r.Width <= 0 || r.Height <= 0 {
		return window.Rect{}, errors.New("xdotool reported no geometry")
	}
	return r, nil
}

func decodePNG(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decoded, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode scrot output: %w", err)
	}
	if rgba, ok := decoded.(*image.RGBA); ok {
		return rgba, nil
	}
	rgba := image.NewRGBA(decoded.Bounds())
	draw.Draw(rgba, rgba.Bounds(), decoded, decoded.Bounds().Min, draw.Src)
	return rgba, nil
}
