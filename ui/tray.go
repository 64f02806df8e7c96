package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/sirupsen/logrus"
)

// SetupSystemTray adds a tray icon that brings the main window back.
// It reports false on platforms without a system tray.
func SetupSystemTray(a fyne.App, win fyne.Window, icon fyne.Resource, log *logrus.Entry) bool {
	desk, ok := a.(desktop.App)
	if !ok {
		log.Debug("System tray not supported on this platform.")
		return false
	}

	showMenuItem := fyne.NewMenuItem("Show", func() {
		win.Show()
		win.RequestFocus()
	})
	desk.SetSystemTrayMenu(fyne.NewMenu(appTitle, showMenuItem))
	if icon != nil {
		desk.SetSystemTrayIcon(icon)
	}
	win.SetCloseIntercept(func() {
		win.Hide()
	})
	return true
}
