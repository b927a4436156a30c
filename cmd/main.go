package main

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"gopkg.in/natefinch/lumberjack.v2"

	"kotidash/internal/core/dashboard"
	"kotidash/internal/core/dispatch"
	"kotidash/internal/core/idle"
	"kotidash/internal/core/model"
	"kotidash/internal/core/refresh"
	"kotidash/internal/httptransport"
	"kotidash/internal/platform"
	"kotidash/internal/storage"
	"kotidash/internal/ui/kiosk"
	"kotidash/internal/ui/preferences"
	"kotidash/internal/ui/screensaver"
	"kotidash/internal/ui/tray"
	"kotidash/internal/weather"
	"kotidash/resources"
)

const (
	appName     = "kotidash"
	appID       = "com.kotidash.app"
	logFileName = "kotidash.log"

	httpTimeout          = 10 * time.Second
	trayStatusInterval   = 30 * time.Second
	windowedWidth        = 1024
	windowedHeight       = 600
	logMaxSizeMegabytes  = 50
	logMaxBackups        = 3
	screensaverEventsBuf = 5
)

func main() {
	if err := run(); err != nil {
		slog.Error("kotidash stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	lock, err := platform.AcquireInstanceLock(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			log.Printf("single instance: %v", err)
			return nil
		}
		return err
	}
	defer func() {
		_ = lock.Release()
	}()

	dirs := platform.NewDirs(appName)
	setupLogging(dirs)

	configPath := storage.ResolveConfigPath(dirs.Config)
	config, err := storage.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config %s: %w", configPath, err)
	}
	if config.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	slog.Info("starting", "config", configPath, "location", config.Location,
		"weather_update_minutes", config.WeatherUpdateMinutes, "screensaver_seconds", config.ScreensaverSeconds)

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.Icon())

	window := fyneApp.NewWindow(appName)
	window.SetMaster()
	window.SetPadded(false)

	scheduler := dispatch.NewRealtime(fyne.Do)
	state := dashboard.New()
	client := weather.New(&http.Client{
		Timeout:   httpTimeout,
		Transport: httptransport.LoggedTransport{},
	}, weather.Config{
		Location: config.Location,
		Language: config.Language,
		Timezone: config.Timezone,
	})

	overlay := screensaver.New(screensaver.DefaultDriftConfig(), nil)
	controller := idle.New(scheduler, config.ScreensaverTimeout(), state, overlay)
	input := kiosk.NewInputSource(controller.HandleInput)
	overlay.SetOnInput(input.PointerDown)

	refresher := refresh.New(scheduler, refresh.Config{
		WeatherInterval: config.WeatherInterval(),
	}, client, state, overlay)

	toggleFullscreen := func() {
		window.SetFullScreen(!window.FullScreen())
	}
	view := kiosk.NewView(state, input, overlay, toggleFullscreen)
	window.SetContent(view.Content())
	window.Resize(fyne.NewSize(windowedWidth, windowedHeight))
	window.SetFullScreen(config.Fullscreen)

	autostart := platform.NewAutostart(appName, dirs.Autostart)
	var trayManager *tray.Manager
	setAutostart := func(enabled bool) {
		if err := applyAutostart(autostart, enabled); err != nil {
			slog.Warn("autostart change failed", "enabled", enabled, "error", err)
		}
		if trayManager != nil {
			trayManager.SetAutostart(autostart.Enabled())
		}
	}

	prefsWindow := preferences.New(fyneApp, config, func(updated model.Config) {
		if err := storage.SaveConfig(configPath, updated); err != nil {
			slog.Error("saving config failed", "path", configPath, "error", err)
			return
		}
		slog.Info("config saved", "path", configPath)
		setAutostart(updated.Autostart)
	})

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		desktopApp.SetSystemTrayIcon(resources.Icon())
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnRefreshWeather:   refresher.RefreshNow,
			OnShowScreensaver:  controller.ActivateNow,
			OnToggleFullscreen: toggleFullscreen,
			OnSettings:         prefsWindow.Show,
			OnToggleAutostart: func() {
				enabled := !autostart.Enabled()
				setAutostart(enabled)
				saveAutostart(configPath, prefsWindow, autostart.Enabled())
			},
			OnQuit: fyneApp.Quit,
		})
		trayManager.SetAutostart(autostart.Enabled())
		trayManager.SetAutostartSupported(platform.AutostartSupported)
	} else {
		slog.Info("system tray unsupported on this platform")
	}

	if platform.AutostartSupported && config.Autostart != autostart.Enabled() {
		setAutostart(config.Autostart)
	}

	go logScreensaverEvents(controller.Subscribe(screensaverEventsBuf))

	var statusHandle dispatch.Handle
	fyneApp.Lifecycle().SetOnStarted(func() {
		refresher.Start()
		controller.Start()
		if trayManager != nil {
			trayManager.SetStatus(refresher.Status())
			statusHandle = scheduler.Every(trayStatusInterval, func() {
				trayManager.SetStatus(refresher.Status())
			})
		}
	})
	fyneApp.Lifecycle().SetOnStopped(func() {
		if statusHandle != nil {
			statusHandle.Cancel()
		}
		refresher.Stop()
		controller.Stop()
		slog.Info("stopped")
	})

	window.ShowAndRun()
	return nil
}

func setupLogging(dirs platform.Dirs) {
	logPath, err := dirs.LogFile(logFileName)
	if err != nil {
		log.Printf("logging to stderr: %v", err)
		return
	}
	log.SetOutput(&lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSizeMegabytes,
		MaxBackups: logMaxBackups,
	})
}

func applyAutostart(autostart *platform.Autostart, enabled bool) error {
	if !enabled {
		return autostart.Disable()
	}
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}
	return autostart.Enable(execPath)
}

func saveAutostart(configPath string, prefsWindow *preferences.Window, enabled bool) {
	updated := prefsWindow.Config()
	updated.Autostart = enabled
	if err := storage.SaveConfig(configPath, updated); err != nil {
		slog.Error("saving config failed", "path", configPath, "error", err)
		return
	}
	prefsWindow.UpdateConfig(updated)
}

func logScreensaverEvents(events <-chan idle.Event) {
	for event := range events {
		slog.Debug("screensaver state changed", "state", event.State, "at", event.At)
	}
}
