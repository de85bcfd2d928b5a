//go:build windows
// +build windows

package capture

func platformStrategies() []Strategy {
	return []Strategy{
		DuplicationGrab{},
		PrintWindowGrab{},
		RegionGrab{},
		ForegroundGrab{},
	}
}
