package ui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/nomad-coffee/client/core"
)

// SessionState is the part of the session the home screen needs
type SessionState interface {
	LoggedIn() bool
	ExpiresAt() *time.Time
	Logout() error
}

// HomeScreen is the destination after a successful login
type HomeScreen struct {
	Win fyne.Window

	session SessionState
	nav     core.Navigator
	log     *logrus.Entry

	statusLabel  *widget.Label
	logoutButton *widget.Button
	content      fyne.CanvasObject
}

func NewHomeScreen(win fyne.Window, session SessionState, nav core.Navigator, log *logrus.Entry) *HomeScreen {
	h := &HomeScreen{
		Win:     win,
		session: session,
		nav:     nav,
		log:     log.WithField("screen", "home"),
	}
	h.setupUI()
	return h
}

func (h *HomeScreen) Content() fyne.CanvasObject { return h.content }

func (h *HomeScreen) setupUI() {
	title := widget.NewLabel(appTitle)
	title.Alignment = fyne.TextAlignCenter
	title.TextStyle = fyne.TextStyle{Bold: true}

	h.statusLabel = widget.NewLabel(h.statusText())
	h.statusLabel.Alignment = fyne.TextAlignCenter
	statusCard := widget.NewCard("Welcome", "", container.NewCenter(h.statusLabel))

	h.logoutButton = widget.NewButton("Log out", h.logout)

	h.content = container.NewPadded(container.NewVBox(
		layout.NewSpacer(),
		title,
		statusCard,
		h.logoutButton,
		layout.NewSpacer(),
	))
}

func (h *HomeScreen) statusText() string {
	if !h.session.LoggedIn() {
		return "Your session has ended."
	}
	if exp := h.session.ExpiresAt(); exp != nil {
		return fmt.Sprintf("Logged in until %s", exp.Local().Format("Jan 02, 2006 03:04 PM"))
	}
	return "Logged in"
}

func (h *HomeScreen) logout() {
	if err := h.session.Logout(); err != nil {
		h.log.WithError(err).Error("Failed to log out")
		dialog.ShowError(fmt.Errorf("failed to log out: %w", err), h.Win)
		return
	}
	h.nav.Replace(core.ScreenAuth)
}
