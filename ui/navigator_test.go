package ui

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomad-coffee/client/core"
	"github.com/nomad-coffee/client/internal/logging"
)

func newTestNavigator(t *testing.T) (*WindowNavigator, fyne.Window, map[core.Destination]int) {
	t.Helper()
	test.NewTempApp(t)
	w := test.NewWindow(nil)
	t.Cleanup(w.Close)

	builds := make(map[core.Destination]int)
	nav := NewWindowNavigator(w, logging.Discard())
	for _, dest := range []core.Destination{core.ScreenAuth, core.ScreenHome} {
		dest := dest
		nav.Register(dest, func(params core.Params) fyne.CanvasObject {
			builds[dest]++
			return widget.NewLabel(string(dest) + ":" + params.Mode.String())
		})
	}
	return nav, w, builds
}

func contentText(w fyne.Window) string {
	if label, ok := w.Content().(*widget.Label); ok {
		return label.Text
	}
	return ""
}

func TestNavigatorStartMountsImmediately(t *testing.T) {
	nav, w, _ := newTestNavigator(t)

	nav.Start(core.ScreenAuth, core.Params{Mode: core.ModeLogin})
	assert.Equal(t, "Auth:login", contentText(w))
	assert.Equal(t, 1, nav.Depth())
}

func TestNavigatorNavigateAndBack(t *testing.T) {
	nav, w, builds := newTestNavigator(t)
	nav.Start(core.ScreenAuth, core.Params{Mode: core.ModeLogin})

	nav.Navigate(core.ScreenAuth, core.Params{Mode: core.ModeSignup})
	assert.Eventually(t, func() bool { return nav.Depth() == 2 }, time.Second, 10*time.Millisecond)
	dest, params, ok := nav.Current()
	require.True(t, ok)
	assert.Equal(t, core.ScreenAuth, dest)
	assert.Equal(t, core.ModeSignup, params.Mode)

	assert.True(t, nav.Back())
	assert.Eventually(t, func() bool { return contentText(w) == "Auth:login" }, time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, nav.Depth())
	// The previous screen is rebuilt rather than reused.
	assert.Equal(t, 3, builds[core.ScreenAuth])

	assert.False(t, nav.Back())
}

func TestNavigatorReplaceClearsHistory(t *testing.T) {
	nav, w, _ := newTestNavigator(t)
	nav.Start(core.ScreenAuth, core.Params{Mode: core.ModeLogin})
	nav.Navigate(core.ScreenAuth, core.Params{Mode: core.ModeSignup})

	nav.Replace(core.ScreenHome)
	assert.Eventually(t, func() bool { return contentText(w) == "Home:login" }, time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, nav.Depth())
	assert.False(t, nav.Back())
}

func TestNavigatorUnknownDestination(t *testing.T) {
	nav, _, _ := newTestNavigator(t)
	nav.Start(core.ScreenAuth, core.Params{})

	nav.Navigate(core.Destination("Nowhere"), core.Params{})
	nav.Start(core.Destination("Nowhere"), core.Params{})
	dest, _, ok := nav.Current()
	require.True(t, ok)
	assert.Equal(t, core.ScreenAuth, dest)
}

func TestNavigatorToggleRemountsEmptyForm(t *testing.T) {
	test.NewTempApp(t)
	w := test.NewWindow(nil)
	t.Cleanup(w.Close)

	var screens []*AuthScreen
	nav := NewWindowNavigator(w, logging.Discard())
	nav.Register(core.ScreenAuth, func(params core.Params) fyne.CanvasObject {
		s := NewAuthScreen(w, AuthScreenDeps{
			Service:   &stubService{},
			Session:   core.NewSession(nil, logging.Discard()),
			Navigator: nav,
			Log:       logging.Discard(),
		}, params)
		screens = append(screens, s)
		return s.Content()
	})
	nav.Start(core.ScreenAuth, core.Params{Mode: core.ModeLogin})
	require.Len(t, screens, 1)

	test.Type(screens[0].entries[core.FieldEmail], "a@b.com")
	test.Tap(screens[0].toggleButton)
	assert.Eventually(t, func() bool { return nav.Depth() == 2 }, time.Second, 10*time.Millisecond)

	require.Len(t, screens, 2)
	signup := screens[1]
	assert.Equal(t, core.ModeSignup, signup.flow.Mode())
	assert.Empty(t, signup.entries[core.FieldEmail].Text)
	assert.Empty(t, signup.flow.Form().Value(core.FieldEmail))
	assert.True(t, signup.submitButton.Disabled())

	assert.True(t, nav.Back())
	assert.Eventually(t, func() bool { return len(screens) == 3 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, core.ModeLogin, screens[2].flow.Mode())
	assert.Empty(t, screens[2].entries[core.FieldEmail].Text)
}
