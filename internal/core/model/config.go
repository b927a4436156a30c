package model

import "time"

// Defaults applied when a key is absent from the config file.
const (
	DefaultLocation             = "Helsinki"
	DefaultWeatherUpdateMinutes = 30
	DefaultScreensaverSeconds   = 30.0
	DefaultLanguage             = "fi"
	DefaultTimezone             = "Europe/Helsinki"
)

// Config contains the dashboard settings loaded once at startup.
type Config struct {
	Location             string
	WeatherUpdateMinutes int
	ScreensaverSeconds   float64
	Fullscreen           bool
	Debug                bool
	Language             string
	Timezone             string
	Autostart            bool
}

// DefaultConfig returns the configuration used for missing keys.
func DefaultConfig() Config {
	return Config{
		Location:             DefaultLocation,
		WeatherUpdateMinutes: DefaultWeatherUpdateMinutes,
		ScreensaverSeconds:   DefaultScreensaverSeconds,
		Language:             DefaultLanguage,
		Timezone:             DefaultTimezone,
	}
}

// WeatherInterval is the period of the weather refresh trigger.
func (config Config) WeatherInterval() time.Duration {
	minutes := config.WeatherUpdateMinutes
	if minutes <= 0 {
		minutes = DefaultWeatherUpdateMinutes
	}
	return time.Duration(minutes) * time.Minute
}

// ScreensaverTimeout is the idle period after which the screensaver activates.
func (config Config) ScreensaverTimeout() time.Duration {
	seconds := config.ScreensaverSeconds
	if seconds <= 0 {
		seconds = DefaultScreensaverSeconds
	}
	return time.Duration(seconds * float64(time.Second))
}
