//go:build windows
// +build windows

package window

import (
	"syscall"
	"unsafe"
)

var (
	user32                  = syscall.NewLazyDLL("user32.dll")
	procEnumWindows         = user32.NewProc("EnumWindows")
	procGetWindowTextW      = user32.NewProc("GetWindowTextW")
	procGetWindowTextLength = user32.NewProc("GetWindowTextLengthW")
	procGetWindowRect       = user32.NewProc("GetWindowRect")
	procIsWindowVisible     = user32.NewProc("IsWindowVisible")
	procIsIconic            = user32.NewProc("IsIconic")
	procShowWindow          = user32.NewProc("ShowWindow")
	procSetForegroundWindow = user32.NewProc("SetForegroundWindow")
	procGetForegroundWindow = user32.NewProc("GetForegroundWindow")
)

const (
	swRestore = 9
	swShow    = 5
)

type winRect struct {
	Left, Top, Right, Bottom int32
}

func systemWindowTitles() []string {
	return []string{"Program Manager", "Desktop Window Manager", "Windows Input Experience", "Settings"}
}

func enumerateWindows() ([]Handle, error) {
	var windows []Handle

	callback := syscall.NewCallback(func(hwnd uintptr, lparam uintptr) uintptr {
		length, _, _ := procGetWindowTextLength.Call(hwnd)
		if length == 0 {
			return 1 // continue enumeration
		}

		buf := make([]uint16, length+1)
		procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), length+1)
		title := syscall.UTF16ToString(buf)

		visible, _, _ := procIsWindowVisible.Call(hwnd)
		if visible == 0 {
			return 1
		}

		var rect winRect
		procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&rect)))

		windows = append(windows, Handle{
			Title: title,
			Bounds: Rect{
				Left:   int(rect.Left),
				Top:    int(rect.Top),
				Width:  int(rect.Right - rect.Left),
				Height: int(rect.Bottom - rect.Top),
			},
			Visible: true,
			HWND:    hwnd,
		})
		return 1
	})

	ret, _, err := procEnumWindows.Call(callback, 0)
	if ret == 0 {
		return nil, err
	}
	return windows, nil
}

func isMinimized(hwnd uintptr) bool {
	ret, _, _ := procIsIconic.Call(hwnd)
	return ret != 0
}
