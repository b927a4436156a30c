package resources

import (
	_ "embed"

	"fyne.io/fyne/v2"
)

//go:embed icon.svg
var iconData []byte

//go:embed config.template.json
var configTemplate []byte

var icon = fyne.NewStaticResource("icon.svg", iconData)

// Icon returns the app icon.
func Icon() fyne.Resource {
	return icon
}

// ConfigTemplate returns the config file written on first run.
func ConfigTemplate() []byte {
	return append([]byte(nil), configTemplate...)
}
