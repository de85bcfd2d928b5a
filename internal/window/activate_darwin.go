//go:build darwin
// +build darwin

package window

import (
	"time"

	"github.com/go-vgo/robotgo"
)

func activateWindow(h Handle, sleep func(time.Duration)) {
	// robotgo activates by owning application name; window titles usually
	// start with or contain it, so try the full title first.
	if err := robotgo.ActiveName(h.Title); err != nil {
		robotgo.ActiveName(firstWord(h.Title))
	}
	sleep(300 * time.Millisecond)
}

func firstWord(s string) string {
	for i, r := range s {
		if r == ' ' {
			return s[:i]
		}
	}
	return s
}
