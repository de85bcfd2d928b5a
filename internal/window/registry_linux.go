//go:build linux
// +build linux

package window

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

func systemWindowTitles() []string {
	return []string{
		"Desktop", "Panel", "Taskbar", "Unity Panel", "gnome-panel",
		"Plasma", "plasmashell", "kwin", "compiz",
	}
}

// enumerateWindows shells out to wmctrl, which lists every managed window
// with geometry in one call. xdotool resolves ids when wmctrl is absent.
func enumerateWindows() ([]Handle, error) {
	out, err := exec.Command("wmctrl", "-lG").Output()
	if err == nil {
		return parseWmctrl(string(out)), nil
	}

	// wmctrl missing or failed; fall back to xdotool without geometry.
	ids, xerr := exec.Command("xdotool", "search", "--onlyvisible", "--name", ".").Output()
	if xerr != nil {
		return nil, fmt.Errorf("wmctrl failed (%v) and xdotool failed (%v)", err, xerr)
	}

	var windows []Handle
	for _, id := range strings.Fields(string(ids)) {
		name, nerr := exec.Command("xdotool", "getwindowname", id).Output()
		if nerr != nil {
			continue
		}
		windows = append(windows, Handle{
			Title:    strings.TrimSpace(string(name)),
			Visible:  true,
			NativeID: id,
		})
	}
	return windows, nil
}

// parseWmctrl parses `wmctrl -lG` output:
//
//	0x03a00003 0 73 81 1207 830 host Title words...
func parseWmctrl(out string) []Handle {
	var windows []Handle
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 8 {
			continue
		}
		left, _ := strconv.Atoi(fields[2])
		top, _ := strconv.Atoi(fields[3])
		width, _ := strconv.Atoi(fields[4])
		height, _ := strconv.Atoi(fields[5])

		windows = append(windows, Handle{
			Title: strings.Join(fields[7:], " "),
			Bounds: Rect{
				Left:   left,
				Top:    top,
				Width:  width,
				Height: height,
			},
			Visible:  true,
			NativeID: fields[0],
		})
	}
	return windows
}
