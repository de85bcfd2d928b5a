//go:build windows
// +build windows

package capture

import (
	"errors"
	"fmt"
	"image"
	"syscall"
	"time"
	"unsafe"

	"github.com/anas-gulzar-dev/grace-capture/internal/window"
)

var (
	user32                     = syscall.NewLazyDLL("user32.dll")
	gdi32                      = syscall.NewLazyDLL("gdi32.dll")
	procGetWindowDC            = user32.NewProc("GetWindowDC")
	procReleaseDC              = user32.NewProc("ReleaseDC")
	procGetWindowRect          = user32.NewProc("GetWindowRect")
	procPrintWindow            = user32.NewProc("PrintWindow")
	procCreateCompatibleDC     = gdi32.NewProc("CreateCompatibleDC")
	procCreateCompatibleBitmap = gdi32.NewProc("CreateCompatibleBitmap")
	procSelectObject           = gdi32.NewProc("SelectObject")
	procDeleteDC               = gdi32.NewProc("DeleteDC")
	procDeleteObject           = gdi32.NewProc("DeleteObject")
	procGetDIBits              = gdi32.NewProc("GetDIBits")
)

const (
	pwRenderFullContent = 0x00000002
	biRGB               = 0
	dibRGBColors        = 0
)

type rect struct {
	Left, Top, Right, Bottom int32
}

type bitmapInfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

type bitmapInfo struct {
	BmiHeader bitmapInfoHeader
	BmiColors [1]uint32
}

// PrintWindowGrab renders the target window's content into an off-screen
// bitmap via PrintWindow, without requiring the window to be topmost or even
// on screen. Some applications only respond to one rendering flag, so the
// full-content variant is tried first and the basic variant second; both
// count as a single cascade slot.
type PrintWindowGrab struct{}

func (PrintWindowGrab) ID() string            { return "print_window" }
func (PrintWindowGrab) NeedsActivation() bool { return false }

func (PrintWindowGrab) Capture(h window.Handle, opts Options) Attempt {
	const id = "print_window"
	start := time.Now()

	if h.HWND == 0 {
		return Attempt{StrategyID: id, Err: errors.New("no native window handle"), Duration: time.Since(start)}
	}

	var r rect
	ret, _, _ := procGetWindowRect.Call(h.HWND, uintptr(unsafe.Pointer(&r)))
	if ret == 0 {
		return Attempt{StrategyID: id, Err: errors.New("GetWindowRect failed"), Duration: time.Since(start)}
	}
	width := int(r.Right - r.Left)
	height := int(r.Bottom - r.Top)
	if width <= 0 || height <= 0 {
		return Attempt{StrategyID: id, Err: fmt.Errorf("invalid window dimensions: %dx%d", width, height), Duration: time.Since(start)}
	}

	var lastErr error
	for _, flag := range []uintptr{pwRenderFullContent, 0} {
		img, err := printWindowToImage(h.HWND, width, height, flag)
		if err != nil {
			lastErr = err
			continue
		}
		if !validFrame(img) {
			lastErr = errors.New("empty frame")
			continue
		}
		if IsBlank(img) {
			lastErr = errors.New("blank frame")
			continue
		}
		return Attempt{StrategyID: id, Image: img, Duration: time.Since(start)}
	}

	return Attempt{StrategyID: id, Err: lastErr, IsBlank: lastErr != nil && lastErr.Error() == "blank frame", Duration: time.Since(start)}
}

func printWindowToImage(hwnd uintptr, width, height int, flag uintptr) (*image.RGBA, error) {
	hdcWindow, _, _ := procGetWindowDC.Call(hwnd)
	if hdcWindow == 0 {
		return nil, errors.New("failed to get window DC")
	}
	defer procReleaseDC.Call(hwnd, hdcWindow)

	hdcMem, _, _ := procCreateCompatibleDC.Call(hdcWindow)
	if hdcMem == 0 {
		return nil, errors.New("failed to create compatible DC")
	}
	defer procDeleteDC.Call(hdcMem)

	hBitmap, _, _ := procCreateCompatibleBitmap.Call(hdcWindow, uintptr(width), uintptr(height))
	if hBitmap == 0 {
		return nil, errors.New("failed to create compatible bitmap")
	}
	defer procDeleteObject.Call(hBitmap)

	procSelectObject.Call(hdcMem, hBitmap)

	ret, _, _ := procPrintWindow.Call(hwnd, hdcMem, flag)
	if ret == 0 {
		return nil, fmt.Errorf("PrintWindow failed (flag=%#x)", flag)
	}

	var bi bitmapInfo
	bi.BmiHeader.Size = uint32(unsafe.Sizeof(bi.BmiHeader))
	bi.BmiHeader.Width = int32(width)
	bi.BmiHeader.Height = -int32(height) // negative for top-down bitmap
	bi.BmiHeader.Planes = 1
	bi.BmiHeader.BitCount = 32
	bi.BmiHeader.Compression = biRGB

	buffer := make([]byte, width*height*4)
	ret, _, _ = procGetDIBits.Call(
		hdcMem,
		hBitmap,
		0,
		uintptr(height),
		uintptr(unsafe.Pointer(&buffer[0])),
		uintptr(unsafe.Pointer(&bi)),
		dibRGBColors,
	)
	if ret == 0 {
		return nil, errors.New("GetDIBits failed")
	}

	// Windows returns BGRA; convert to RGBA.
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(buffer); i += 4 {
		img.Pix[i] = buffer[i+2]
		img.Pix[i+1] = buffer[i+1]
		img.Pix[i+2] = buffer[i]
		img.Pix[i+3] = 255
	}

	return img, nil
}
