package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nomad-coffee/client/internal/auth"
)

var (
	ErrInvalidForm    = errors.New("form is invalid")
	ErrSubmitInFlight = errors.New("a submission is already in flight")
)

// AccountCreatedNotice is shown once the server accepted a sign up.
const AccountCreatedNotice = "Your account has been created."

const defaultRequestTimeout = 15 * time.Second

// Destination names a screen the navigator can show
type Destination string

const (
	ScreenAuth Destination = "Auth"
	ScreenHome Destination = "Home"
)

// Params are the navigation parameters of a screen
type Params struct {
	Mode Mode
}

// Navigator moves between screens.
// Replace drops the current screen; Navigate pushes a new entry.
type Navigator interface {
	Replace(dest Destination)
	Navigate(dest Destination, params Params)
}

type State int

const (
	StateIdle State = iota
	StateCreatingAccount
	StateLoggingIn
	StateSucceeded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCreatingAccount:
		return "creating-account"
	case StateLoggingIn:
		return "logging-in"
	case StateSucceeded:
		return "succeeded"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Snapshot is what the screen renders besides the field values
type Snapshot struct {
	State   State
	Loading bool
	Error   string
}

type AuthFlowDeps struct {
	Service   auth.Service
	Session   auth.SessionStore
	Navigator Navigator
	Validator *Validator
	Log       *logrus.Entry
	// Timeout bounds each remote call. Zero means 15s.
	Timeout time.Duration
	// OnNotice receives informational messages such as AccountCreatedNotice.
	OnNotice func(msg string)
}

// AuthFlow drives one auth screen: it owns the form, submits it to the
// right remote operation and reacts to the answer.
type AuthFlow struct {
	mode     Mode
	form     *Form
	service  auth.Service
	session  auth.SessionStore
	nav      Navigator
	log      *logrus.Entry
	timeout  time.Duration
	onNotice func(string)

	mu        sync.Mutex
	state     State
	loading   bool
	errMsg    string
	observers []func(Snapshot)
}

func NewAuthFlow(mode Mode, deps AuthFlowDeps) *AuthFlow {
	log := deps.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	timeout := deps.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &AuthFlow{
		mode:     mode,
		form:     NewForm(mode, deps.Validator),
		service:  deps.Service,
		session:  deps.Session,
		nav:      deps.Navigator,
		log:      log.WithFields(logrus.Fields{"component": "auth", "mode": mode.String()}),
		timeout:  timeout,
		onNotice: deps.OnNotice,
	}
}

func (a *AuthFlow) Mode() Mode { return a.mode }

func (a *AuthFlow) Form() *Form { return a.form }

// OnChange registers fn to be called with a fresh snapshot after every transition.
// fn runs on the goroutine that caused the transition.
func (a *AuthFlow) OnChange(fn func(Snapshot)) {
	a.mu.Lock()
	a.observers = append(a.observers, fn)
	a.mu.Unlock()
}

func (a *AuthFlow) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

func (a *AuthFlow) snapshotLocked() Snapshot {
	return Snapshot{State: a.state, Loading: a.loading, Error: a.errMsg}
}

// Reset clears the form and the screen message. Called whenever the screen is mounted.
func (a *AuthFlow) Reset() {
	a.form.Reset()
	a.update(func() {
		a.state = StateIdle
		a.loading = false
		a.errMsg = ""
	})
}

// CanSubmit reports whether the submit control should be enabled.
func (a *AuthFlow) CanSubmit() bool {
	a.mu.Lock()
	loading := a.loading
	a.mu.Unlock()
	return !loading && a.form.Valid()
}

// NextField returns the field to focus after field is submitted from the keyboard.
func (a *AuthFlow) NextField(field Field) (Field, bool) {
	return a.mode.Next(field)
}

// ToggleMode re-enters the auth screen in the other mode as a new navigation entry.
func (a *AuthFlow) ToggleMode() {
	next := a.mode.Toggle()
	a.log.WithField("to", next.String()).Debug("Switching auth mode")
	a.nav.Navigate(ScreenAuth, Params{Mode: next})
}

// Submit validates the form and issues the login or create-account call.
// A server side rejection is not an error: it is reported through the snapshot.
func (a *AuthFlow) Submit(ctx context.Context) error {
	if !a.form.ValidateAll() {
		a.log.Debug("Submit blocked by field validation")
		return ErrInvalidForm
	}

	a.mu.Lock()
	if a.loading {
		a.mu.Unlock()
		return ErrSubmitInFlight
	}
	a.loading = true
	a.mu.Unlock()

	if a.mode == ModeSignup {
		return a.createAccount(ctx, a.form.NewAccount())
	}
	return a.login(ctx, a.form.Credentials())
}

func (a *AuthFlow) createAccount(ctx context.Context, account auth.NewAccount) error {
	a.update(func() {
		a.state = StateCreatingAccount
		a.loading = true
	})
	log := a.log.WithField("username", account.Username)
	log.Info("Creating account")

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	res, err := a.service.CreateAccount(callCtx, account)
	cancel()
	if err != nil {
		log.WithError(err).Warn("Create account request failed")
		a.fail("Sign up failed: " + describe(err))
		return fmt.Errorf("create account: %w", err)
	}
	if !res.OK {
		log.WithField("error", res.Error).Info("Create account rejected")
		a.fail("Sign up failed: " + res.Error)
		return nil
	}

	log.Info("Account created, logging in")
	a.notice(AccountCreatedNotice)
	return a.login(ctx, auth.Credentials{Email: account.Email, Password: account.Password})
}

func (a *AuthFlow) login(ctx context.Context, creds auth.Credentials) error {
	a.update(func() {
		a.state = StateLoggingIn
		a.loading = true
	})
	a.log.Info("Logging in")

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	res, err := a.service.Login(callCtx, creds)
	cancel()
	if err != nil {
		a.log.WithError(err).Warn("Login request failed")
		a.fail("Login failed: " + describe(err))
		return fmt.Errorf("login: %w", err)
	}
	if !res.OK || res.Token == "" {
		reason := res.Error
		if res.OK {
			reason = "no session token returned"
		}
		a.log.WithField("error", reason).Info("Login rejected")
		a.fail("Login failed: " + reason)
		return nil
	}

	if err := a.session.SetToken(res.Token); err != nil {
		a.log.WithError(err).Error("Failed to store session token")
		a.fail("Login failed: " + err.Error())
		return fmt.Errorf("store session token: %w", err)
	}

	a.update(func() {
		a.state = StateSucceeded
		a.loading = false
		a.errMsg = ""
	})
	a.log.Info("Login successful")
	a.nav.Replace(ScreenHome)
	return nil
}

func (a *AuthFlow) fail(msg string) {
	a.update(func() {
		a.state = StateIdle
		a.loading = false
		a.errMsg = msg
	})
}

func (a *AuthFlow) notice(msg string) {
	if a.onNotice != nil {
		a.onNotice(msg)
	}
}

func (a *AuthFlow) update(mutate func()) {
	a.mu.Lock()
	mutate()
	snap := a.snapshotLocked()
	observers := make([]func(Snapshot), len(a.observers))
	copy(observers, a.observers)
	a.mu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}
}

func describe(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "request timed out"
	}
	return err.Error()
}
