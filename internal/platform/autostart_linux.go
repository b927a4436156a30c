//go:build linux

package platform

import (
	"fmt"
	"os"
	"strings"
)

// AutostartSupported reports whether Enable can succeed on this platform.
const AutostartSupported = true

// Enable writes a desktop entry starting execPath at login.
func (autostart *Autostart) Enable(execPath string) error {
	if autostart.dir == "" {
		return fmt.Errorf("enable autostart: no autostart directory")
	}
	if execPath == "" {
		return fmt.Errorf("enable autostart: exec path is empty")
	}
	if err := os.MkdirAll(autostart.dir, 0o755); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	if err := os.WriteFile(autostart.entryPath(), []byte(desktopEntry(autostart.appName, execPath)), 0o644); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	return nil
}

// Disable removes the desktop entry. A missing entry is not an error.
func (autostart *Autostart) Disable() error {
	if autostart.dir == "" {
		return nil
	}
	if err := os.Remove(autostart.entryPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("disable autostart: %w", err)
	}
	return nil
}

func desktopEntry(appName, execPath string) string {
	if strings.Contains(execPath, " ") && !strings.HasPrefix(execPath, `"`) {
		execPath = `"` + execPath + `"`
	}
	var b strings.Builder
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	fmt.Fprintf(&b, "Name=%s\n", appName)
	fmt.Fprintf(&b, "Exec=%s\n", execPath)
	b.WriteString("X-GNOME-Autostart-enabled=true\n")
	b.WriteString("Terminal=false\n")
	return b.String()
}
