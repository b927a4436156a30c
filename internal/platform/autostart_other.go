//go:build !linux

package platform

// AutostartSupported reports whether Enable can succeed on this platform.
const AutostartSupported = false

// Enable is not supported on this platform.
func (autostart *Autostart) Enable(execPath string) error {
	return ErrAutostartUnsupported
}

// Disable is not supported on this platform.
func (autostart *Autostart) Disable() error {
	return ErrAutostartUnsupported
}
