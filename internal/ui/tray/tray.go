// Package tray manages the system tray menu.
package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
)

const menuTitle = "kotidash"

// MenuHost displays the tray menu. desktop.App satisfies it.
type MenuHost interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnRefreshWeather   func()
	OnShowScreensaver  func()
	OnToggleFullscreen func()
	OnSettings         func()
	OnToggleAutostart  func()
	OnQuit             func()
}

// Manager handles system tray state.
type Manager struct {
	host      MenuHost
	callbacks Callbacks

	statusItem    *fyne.MenuItem
	autostartItem *fyne.MenuItem
	menu          *fyne.Menu
}

// New creates a tray manager and installs its menu.
func New(host MenuHost, callbacks Callbacks) *Manager {
	manager := &Manager{
		host:      host,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true
	manager.autostartItem = fyne.NewMenuItem("Start at login", callbacks.OnToggleAutostart)

	manager.menu = fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Refresh weather", callbacks.OnRefreshWeather),
		fyne.NewMenuItem("Show screensaver", callbacks.OnShowScreensaver),
		fyne.NewMenuItem("Toggle fullscreen", callbacks.OnToggleFullscreen),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings", callbacks.OnSettings),
		manager.autostartItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", callbacks.OnQuit),
	)
	manager.refreshMenu()
	return manager
}

// Menu returns the installed menu.
func (manager *Manager) Menu() *fyne.Menu {
	return manager.menu
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	label := fmt.Sprintf("Status: %s", status)
	if manager.statusItem.Label == label {
		return
	}
	manager.statusItem.Label = label
	manager.refreshMenu()
}

// SetAutostart updates the autostart check mark.
func (manager *Manager) SetAutostart(enabled bool) {
	manager.autostartItem.Checked = enabled
	manager.refreshMenu()
}

// SetAutostartSupported disables the autostart item where it cannot work.
func (manager *Manager) SetAutostartSupported(supported bool) {
	manager.autostartItem.Disabled = !supported
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.host != nil {
		manager.host.SetSystemTrayMenu(manager.menu)
	}
}
