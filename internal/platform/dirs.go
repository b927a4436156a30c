package platform

import (
	"fmt"
	"os"
	"path/filepath"

	xappdirs "github.com/chasinglogic/appdirs"
)

const logFolderName = "log"

// Dirs are the per-user directories of the app.
type Dirs struct {
	Config string
	Log    string
	// Autostart is the XDG autostart directory shared by all apps.
	Autostart string
}

// NewDirs resolves the directories for appName without creating them.
func NewDirs(appName string) Dirs {
	ad := xappdirs.New(appName)
	dirs := Dirs{
		Config: ad.UserConfig(),
		Log:    filepath.Join(ad.UserData(), logFolderName),
	}
	if configHome, err := os.UserConfigDir(); err == nil {
		dirs.Autostart = filepath.Join(configHome, "autostart")
	}
	return dirs
}

// LogFile creates the log directory and returns the log file path.
func (dirs Dirs) LogFile(fileName string) (string, error) {
	if err := os.MkdirAll(dirs.Log, 0o755); err != nil {
		return "", fmt.Errorf("create log directory: %w", err)
	}
	return filepath.Join(dirs.Log, fileName), nil
}
