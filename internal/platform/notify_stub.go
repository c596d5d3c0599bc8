//go:build !linux && !darwin && !windows

package platform

// Notify does nothing where no notification backend exists.
func Notify(title, body string, opts Options) error { return nil }
