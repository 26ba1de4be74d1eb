//go:build !linux && !darwin && !windows

package platform

// Supported reports whether Notify reaches the user on this platform.
const Supported = false

// Notify does nothing here.
func Notify(string, string, Options) error { return nil }
