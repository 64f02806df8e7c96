package ui

import (
	"context"
	"errors"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/nomad-coffee/client/core"
	"github.com/nomad-coffee/client/internal/auth"
)

const appTitle = "Nomad Coffee"

var placeholders = map[core.Field]string{
	core.FieldEmail:     "Email address",
	core.FieldUsername:  "Username",
	core.FieldPassword:  "Password",
	core.FieldPassword2: "Confirm password",
}

// fieldEntry is a single line entry that reports when it loses focus
type fieldEntry struct {
	widget.Entry
	onBlur func()
}

func newFieldEntry(password bool) *fieldEntry {
	e := &fieldEntry{}
	e.Password = password
	e.ExtendBaseWidget(e)
	return e
}

func (e *fieldEntry) FocusLost() {
	e.Entry.FocusLost()
	if e.onBlur != nil {
		e.onBlur()
	}
}

type AuthScreenDeps struct {
	Service   auth.Service
	Session   auth.SessionStore
	Navigator core.Navigator
	Validator *core.Validator
	Log       *logrus.Entry
	Timeout   time.Duration
}

// AuthScreen is the log in / sign up form.
type AuthScreen struct {
	win  fyne.Window
	flow *core.AuthFlow
	log  *logrus.Entry

	entries      map[core.Field]*fieldEntry
	fieldErrors  map[core.Field]*widget.Label
	errorLabel   *widget.Label
	submitButton *widget.Button
	activity     *widget.Activity
	toggleButton *widget.Button
	content      fyne.CanvasObject
}

// NewAuthScreen mounts a fresh auth screen; every mount starts with an empty form.
func NewAuthScreen(win fyne.Window, deps AuthScreenDeps, params core.Params) *AuthScreen {
	s := &AuthScreen{
		win:         win,
		log:         deps.Log.WithField("screen", "auth"),
		entries:     make(map[core.Field]*fieldEntry),
		fieldErrors: make(map[core.Field]*widget.Label),
	}
	s.flow = core.NewAuthFlow(params.Mode, core.AuthFlowDeps{
		Service:   deps.Service,
		Session:   deps.Session,
		Navigator: deps.Navigator,
		Validator: deps.Validator,
		Log:       deps.Log,
		Timeout:   deps.Timeout,
		OnNotice: func(msg string) {
			fyne.Do(func() {
				dialog.ShowInformation(params.Mode.Title(), msg, s.win)
			})
		},
	})
	s.setupUI()
	s.flow.Reset()
	s.render(s.flow.Snapshot())

	s.flow.OnChange(func(snap core.Snapshot) {
		fyne.Do(func() { s.render(snap) })
	})
	return s
}

func (s *AuthScreen) Content() fyne.CanvasObject { return s.content }

func (s *AuthScreen) setupUI() {
	mode := s.flow.Mode()

	bigTitle := widget.NewLabel(appTitle)
	bigTitle.Alignment = fyne.TextAlignCenter
	bigTitle.TextStyle = fyne.TextStyle{Bold: true}

	title := widget.NewLabel(mode.Title())
	title.Alignment = fyne.TextAlignCenter
	title.TextStyle = fyne.TextStyle{Bold: true}

	form := container.NewVBox()
	for _, field := range mode.Fields() {
		entry, errLabel := s.setupField(field)
		form.Add(entry)
		form.Add(errLabel)
	}

	s.errorLabel = widget.NewLabel("")
	s.errorLabel.Importance = widget.DangerImportance
	s.errorLabel.TextStyle = fyne.TextStyle{Italic: true}
	s.errorLabel.Wrapping = fyne.TextWrapWord
	s.errorLabel.Hide()

	s.submitButton = widget.NewButton(mode.SubmitLabel(), s.submit)
	s.submitButton.Importance = widget.HighImportance
	s.activity = widget.NewActivity()
	s.activity.Hide()
	buttonRow := container.NewStack(s.submitButton, container.NewCenter(s.activity))

	s.toggleButton = widget.NewButton(mode.ToggleLabel(), s.flow.ToggleMode)
	s.toggleButton.Importance = widget.LowImportance

	s.content = container.NewPadded(container.NewVBox(
		layout.NewSpacer(),
		bigTitle,
		title,
		form,
		s.errorLabel,
		buttonRow,
		s.toggleButton,
		layout.NewSpacer(),
	))
}

func (s *AuthScreen) setupField(field core.Field) (*fieldEntry, *widget.Label) {
	form := s.flow.Form()
	entry := newFieldEntry(field == core.FieldPassword || field == core.FieldPassword2)
	entry.SetPlaceHolder(placeholders[field])

	errLabel := widget.NewLabel("")
	errLabel.Importance = widget.DangerImportance
	errLabel.Hide()

	entry.OnChanged = func(text string) {
		for _, changed := range form.SetValue(field, text) {
			if _, shown := s.fieldErrors[changed]; shown {
				s.showFieldError(changed)
			}
		}
		s.updateSubmit()
	}
	entry.onBlur = func() {
		form.Blur(field)
		s.showFieldError(field)
		s.updateSubmit()
	}
	entry.OnSubmitted = func(string) { s.advance(field) }

	s.entries[field] = entry
	s.fieldErrors[field] = errLabel
	return entry, errLabel
}

// advance moves focus on a keyboard "return" in field
func (s *AuthScreen) advance(field core.Field) {
	next, ok := s.flow.NextField(field)
	if target, shown := s.entries[next]; ok && shown {
		s.win.Canvas().Focus(target)
		return
	}
	s.win.Canvas().Unfocus()
}

func (s *AuthScreen) showFieldError(field core.Field) {
	label := s.fieldErrors[field]
	msg := s.flow.Form().FieldError(field)
	label.SetText(msg)
	if msg == "" {
		label.Hide()
	} else {
		label.Show()
	}
}

func (s *AuthScreen) updateSubmit() {
	if s.flow.CanSubmit() {
		s.submitButton.Enable()
	} else {
		s.submitButton.Disable()
	}
}

func (s *AuthScreen) submit() {
	if !s.flow.CanSubmit() {
		return
	}
	s.win.Canvas().Unfocus()
	go func() {
		err := s.flow.Submit(context.Background())
		if errors.Is(err, core.ErrInvalidForm) {
			fyne.Do(func() {
				for field := range s.entries {
					s.showFieldError(field)
				}
			})
			return
		}
		if err != nil && !errors.Is(err, core.ErrSubmitInFlight) {
			s.log.WithError(err).Debug("Submit finished with error")
		}
	}()
}

func (s *AuthScreen) render(snap core.Snapshot) {
	s.errorLabel.SetText(snap.Error)
	if snap.Error == "" {
		s.errorLabel.Hide()
	} else {
		s.errorLabel.Show()
	}

	if snap.Loading {
		s.activity.Show()
		s.activity.Start()
	} else {
		s.activity.Stop()
		s.activity.Hide()
	}
	for _, entry := range s.entries {
		if snap.Loading {
			entry.Disable()
		} else {
			entry.Enable()
		}
	}
	s.updateSubmit()
}
