//go:build windows
// +build windows

package window

import "time"

func activateWindow(h Handle, sleep func(time.Duration)) {
	if h.HWND == 0 {
		return
	}

	if isMinimized(h.HWND) {
		procShowWindow.Call(h.HWND, swRestore)
		sleep(200 * time.Millisecond)
	}

	procSetForegroundWindow.Call(h.HWND)
	sleep(300 * time.Millisecond)

	// SetForegroundWindow can be refused for cross-process callers; a show
	// still raises the window enough for a screen grab.
	if !isForeground(h) {
		procShowWindow.Call(h.HWND, swShow)
		sleep(200 * time.Millisecond)
	}
}

// isForeground reports whether the window currently has foreground focus.
func isForeground(h Handle) bool {
	fg, _, _ := procGetForegroundWindow.Call()
	return fg == h.HWND
}
