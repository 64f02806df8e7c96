package main

import (
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/pborman/getopt"
	"github.com/sirupsen/logrus"

	"github.com/nomad-coffee/client/assets"
	"github.com/nomad-coffee/client/core"
	"github.com/nomad-coffee/client/internal/config"
	"github.com/nomad-coffee/client/internal/logging"
	"github.com/nomad-coffee/client/services"
	"github.com/nomad-coffee/client/ui"
)

const appName = "nomad-coffee"

func main() {
	optConfig := getopt.StringLong("config", 'c', "", "Path to a config file")
	optHelp := getopt.BoolLong("help", 0, "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	cfg, err := config.Load(*optConfig)
	if err != nil {
		logging.New(config.LogConfig{}, appName).WithError(err).Fatal("Failed to load configuration")
	}
	log := logging.New(cfg.Log, appName)

	db, err := core.NewDatabase(cfg.Session.DBPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to prepare session database")
	}
	if err := db.Connect(); err != nil {
		log.WithError(err).Fatal("Failed to open session database")
	}
	defer db.Close()

	session := core.NewSession(db, log)
	if err := session.Restore(); err != nil {
		// A broken session store only costs the user a new login.
		log.WithError(err).Warn("Failed to restore session")
	}

	apiClient := services.NewApiClient(cfg.API.URL, nil, session, log)
	authSvc := services.NewAuthService(apiClient)

	// Initialize the Fyne application
	myApp := app.NewWithID("coffee.nomad.client")
	iconResource := assets.GetIconResource()
	if iconResource == nil {
		log.Warn("Failed to load icon from embedded resources")
	} else {
		myApp.SetIcon(iconResource)
	}

	win := myApp.NewWindow(appName)
	win.Resize(fyne.NewSize(400, 600))
	win.CenterOnScreen()

	nav := ui.NewWindowNavigator(win, log)
	validator := core.NewValidator()
	nav.Register(core.ScreenAuth, func(params core.Params) fyne.CanvasObject {
		return ui.NewAuthScreen(win, ui.AuthScreenDeps{
			Service:   authSvc,
			Session:   session,
			Navigator: nav,
			Validator: validator,
			Log:       log,
			Timeout:   cfg.API.Timeout,
		}, params).Content()
	})
	nav.Register(core.ScreenHome, func(core.Params) fyne.CanvasObject {
		return ui.NewHomeScreen(win, session, nav, log).Content()
	})

	win.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			nav.Back()
		}
	})
	ui.SetupSystemTray(myApp, win, iconResource, log)

	if session.LoggedIn() {
		log.Info("Session found, launching home screen.")
		nav.Start(core.ScreenHome, core.Params{})
	} else {
		log.Info("No session, launching login screen.")
		nav.Start(core.ScreenAuth, core.Params{Mode: core.ModeLogin})
	}

	win.Show()
	myApp.Run()
	log.WithFields(logrus.Fields{"logged_in": session.LoggedIn()}).Info("Application has exited.")
}
