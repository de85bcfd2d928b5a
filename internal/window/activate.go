package window

import "time"

// Activator brings windows to the foreground ahead of capture strategies
// that can only read the visible screen. Activation is advisory: Activate
// always returns true so callers proceed with capture even when the window
// manager only partially cooperates.
type Activator struct {
	// Sleep is replaceable in tests; defaults to time.Sleep.
	Sleep func(time.Duration)
}

// NewActivator creates an activator with real settle delays.
func NewActivator() *Activator {
	return &Activator{Sleep: time.Sleep}
}

// Activate restores the window if minimized, raises it to the foreground and
// waits for the window manager to settle. Capturing immediately after
// activation returns stale or black frames on some window managers, hence
// the fixed restore -> wait -> raise -> wait sequence.
func (a *Activator) Activate(h Handle) bool {
	sleep := a.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	activateWindow(h, sleep)
	return true
}
