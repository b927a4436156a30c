package platform

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ErrAutostartUnsupported is returned on platforms without XDG autostart.
var ErrAutostartUnsupported = errors.New("autostart unsupported on this platform")

// Autostart manages the login autostart entry of the dashboard.
type Autostart struct {
	appName string
	dir     string
}

// NewAutostart returns an Autostart writing entries into dir.
func NewAutostart(appName, dir string) *Autostart {
	return &Autostart{appName: appName, dir: dir}
}

// Enabled reports whether the autostart entry exists.
func (autostart *Autostart) Enabled() bool {
	if autostart.dir == "" {
		return false
	}
	_, err := os.Stat(autostart.entryPath())
	return err == nil
}

func (autostart *Autostart) entryPath() string {
	name := strings.ToLower(strings.TrimSpace(autostart.appName))
	if name == "" {
		name = "kotidash"
	}
	name = strings.ReplaceAll(name, " ", "-")
	return filepath.Join(autostart.dir, name+".desktop")
}
