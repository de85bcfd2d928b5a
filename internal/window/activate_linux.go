//go:build linux
// +build linux

package window

import (
	"os/exec"
	"strings"
	"time"
)

func activateWindow(h Handle, sleep func(time.Duration)) {
	id := h.NativeID
	if id == "" {
		// Resolve by title when the handle predates geometry lookup.
		out, err := exec.Command("xdotool", "search", "--name", h.Title).Output()
		if err != nil {
			return
		}
		lines := strings.Fields(string(out))
		if len(lines) == 0 {
			return
		}
		id = lines[0]
	}

	exec.Command("xdotool", "windowactivate", id).Run()
	sleep(300 * time.Millisecond)
	exec.Command("xdotool", "windowraise", id).Run()
	sleep(200 * time.Millisecond)
}
