package preferences

import (
	"strconv"
	"strings"

	"kotidash/internal/core/model"
)

// formValues are the raw texts and toggles of the settings form.
type formValues struct {
	Location           string
	WeatherMinutes     string
	ScreensaverSeconds string
	Fullscreen         bool
	Debug              bool
	Autostart          bool
}

func valuesFromConfig(config model.Config) formValues {
	return formValues{
		Location:           config.Location,
		WeatherMinutes:     strconv.Itoa(config.WeatherUpdateMinutes),
		ScreensaverSeconds: strconv.FormatFloat(config.ScreensaverSeconds, 'f', -1, 64),
		Fullscreen:         config.Fullscreen,
		Debug:              config.Debug,
		Autostart:          config.Autostart,
	}
}

// applyValues returns base updated with the form values.
// Blank or invalid numbers keep the previous value.
func applyValues(base model.Config, values formValues) model.Config {
	config := base
	if location := strings.TrimSpace(values.Location); location != "" {
		config.Location = location
	}
	if minutes, ok := parsePositiveInt(values.WeatherMinutes); ok {
		config.WeatherUpdateMinutes = minutes
	}
	if seconds, ok := parsePositiveFloat(values.ScreensaverSeconds); ok {
		config.ScreensaverSeconds = seconds
	}
	config.Fullscreen = values.Fullscreen
	config.Debug = values.Debug
	config.Autostart = values.Autostart
	return config
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}

func parsePositiveFloat(value string) (float64, bool) {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(value, ",", ".")), 64)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
