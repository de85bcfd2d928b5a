//go:build !windows && !linux
// +build !windows,!linux

package capture

func platformStrategies() []Strategy {
	return []Strategy{
		RegionGrab{},
		ForegroundGrab{},
	}
}
