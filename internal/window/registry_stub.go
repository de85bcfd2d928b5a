//go:build !windows && !linux && !darwin
// +build !windows,!linux,!darwin

package window

import "errors"

func systemWindowTitles() []string { return nil }

func enumerateWindows() ([]Handle, error) {
	return nil, errors.New("window enumeration is not supported on this platform")
}
