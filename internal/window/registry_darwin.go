//go:build darwin
// +build darwin

package window

import (
	"os/exec"
	"strings"
)

func systemWindowTitles() []string {
	return []string{"Dock", "Menu Bar", "Spotlight", "SystemUIServer"}
}

// enumerateWindows asks System Events for every process window. Geometry is
// not available through this path, so handles carry titles only and the
// region strategies rely on a post-activation refresh.
func enumerateWindows() ([]Handle, error) {
	script := `tell application "System Events" to get the name of every window of (every process whose visible is true)`
	out, err := exec.Command("osascript", "-e", script).Output()
	if err != nil {
		return nil, err
	}

	var windows []Handle
	for _, title := range strings.Split(string(out), ",") {
		title = strings.TrimSpace(title)
		if title == "" || title == "missing value" {
			continue
		}
		windows = append(windows, Handle{
			Title:   title,
			Visible: true,
		})
	}
	return windows, nil
}
