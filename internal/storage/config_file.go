package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"kotidash/internal/core/model"
	"kotidash/resources"
)

const (
	configFileName = "config.json"

	// ConfigPathEnv overrides the config file location.
	ConfigPathEnv = "KOTIDASH_CONFIG"
)

// fileConfig mirrors the config file. Pointers tell absent keys apart from zero values.
// The file is JSON, which the YAML decoder reads as a subset, so YAML files work too.
// weather_update_minutes is read as a number and truncated to whole minutes.
type fileConfig struct {
	LocationName         *string  `yaml:"location_name" json:"location_name,omitempty"`
	City                 *string  `yaml:"city" json:"city,omitempty"`
	WeatherUpdateMinutes *float64 `yaml:"weather_update_minutes" json:"weather_update_minutes,omitempty"`
	ScreensaverSeconds   *float64 `yaml:"screensaver_seconds" json:"screensaver_seconds,omitempty"`
	Fullscreen           *bool    `yaml:"fullscreen" json:"fullscreen,omitempty"`
	Debug                *bool    `yaml:"debug" json:"debug,omitempty"`
	Language             *string  `yaml:"language" json:"language,omitempty"`
	Timezone             *string  `yaml:"timezone" json:"timezone,omitempty"`
	Autostart            *bool    `yaml:"autostart" json:"autostart,omitempty"`
}

// ResolveConfigPath returns the config file location: the path in
// KOTIDASH_CONFIG when set, else config.json in the app's config directory.
func ResolveConfigPath(configDir string) string {
	if path := strings.TrimSpace(os.Getenv(ConfigPathEnv)); path != "" {
		return path
	}
	return filepath.Join(configDir, configFileName)
}

// LoadConfig reads the config file at path.
// When the file does not exist it is created from the built-in template first.
// Absent keys fall back to defaults.
func LoadConfig(path string) (model.Config, error) {
	config := model.DefaultConfig()

	rawData, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		rawData, err = createFromTemplate(path)
	}
	if err != nil {
		return config, fmt.Errorf("read config file: %w", err)
	}

	var fileData fileConfig
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return config, fmt.Errorf("parse config file %s: %w", path, err)
	}

	applyFileConfig(&config, fileData)
	return config, nil
}

// SaveConfig writes config to path as JSON.
func SaveConfig(path string, config model.Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	minutes := float64(config.WeatherUpdateMinutes)
	fileData := fileConfig{
		LocationName:         &config.Location,
		WeatherUpdateMinutes: &minutes,
		ScreensaverSeconds:   &config.ScreensaverSeconds,
		Fullscreen:           &config.Fullscreen,
		Debug:                &config.Debug,
		Language:             &config.Language,
		Timezone:             &config.Timezone,
		Autostart:            &config.Autostart,
	}

	serialized, err := json.MarshalIndent(fileData, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, append(serialized, '\n'), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

func createFromTemplate(path string) ([]byte, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}
	template := resources.ConfigTemplate()
	if err := os.WriteFile(path, template, 0o644); err != nil {
		return nil, fmt.Errorf("write config template: %w", err)
	}
	slog.Info("created config file from template", "path", path)
	return template, nil
}

func applyFileConfig(config *model.Config, fileData fileConfig) {
	if fileData.City != nil && strings.TrimSpace(*fileData.City) != "" {
		config.Location = strings.TrimSpace(*fileData.City)
	}
	if fileData.LocationName != nil && strings.TrimSpace(*fileData.LocationName) != "" {
		config.Location = strings.TrimSpace(*fileData.LocationName)
	}
	if fileData.WeatherUpdateMinutes != nil {
		// Below one minute this is 0, which the model treats as the default.
		config.WeatherUpdateMinutes = int(*fileData.WeatherUpdateMinutes)
	}
	if fileData.ScreensaverSeconds != nil {
		config.ScreensaverSeconds = *fileData.ScreensaverSeconds
	}
	if fileData.Fullscreen != nil {
		config.Fullscreen = *fileData.Fullscreen
	}
	if fileData.Debug != nil {
		config.Debug = *fileData.Debug
	}
	if fileData.Language != nil {
		config.Language = *fileData.Language
	}
	if fileData.Timezone != nil {
		config.Timezone = *fileData.Timezone
	}
	if fileData.Autostart != nil {
		config.Autostart = *fileData.Autostart
	}
}
