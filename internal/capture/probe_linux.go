//go:build linux
// +build linux

package capture

import "os/exec"

func platformStrategies() []Strategy {
	strategies := []Strategy{RegionGrab{}}
	if _, err := exec.LookPath("scrot"); err == nil {
		strategies = append(strategies, ScrotGrab{})
	}
	return append(strategies, ForegroundGrab{})
}
