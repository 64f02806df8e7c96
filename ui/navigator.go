package ui

import (
	"sync"

	"fyne.io/fyne/v2"
	"github.com/sirupsen/logrus"

	"github.com/nomad-coffee/client/core"
)

// ScreenFactory builds the content of a screen for the given parameters
type ScreenFactory func(params core.Params) fyne.CanvasObject

type navEntry struct {
	dest   core.Destination
	params core.Params
}

// WindowNavigator is a stack of screens shown one at a time in a single window.
// It implements core.Navigator.
type WindowNavigator struct {
	win fyne.Window
	log *logrus.Entry

	mu        sync.Mutex
	factories map[core.Destination]ScreenFactory
	stack     []navEntry
}

func NewWindowNavigator(win fyne.Window, log *logrus.Entry) *WindowNavigator {
	return &WindowNavigator{
		win:       win,
		log:       log.WithField("component", "navigator"),
		factories: make(map[core.Destination]ScreenFactory),
	}
}

func (n *WindowNavigator) Register(dest core.Destination, factory ScreenFactory) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.factories[dest] = factory
}

// Replace drops every screen and shows dest, so back navigation cannot return.
func (n *WindowNavigator) Replace(dest core.Destination) {
	n.show(dest, core.Params{}, true)
}

// Navigate pushes a fresh entry for dest on top of the current one.
func (n *WindowNavigator) Navigate(dest core.Destination, params core.Params) {
	n.show(dest, params, false)
}

// Start mounts the first screen synchronously. It must be called before the
// event loop runs; use Replace afterwards.
func (n *WindowNavigator) Start(dest core.Destination, params core.Params) {
	n.mu.Lock()
	factory, ok := n.factories[dest]
	if ok {
		n.stack = append(n.stack[:0], navEntry{dest: dest, params: params})
	}
	n.mu.Unlock()
	if !ok {
		n.log.WithField("dest", dest).Error("No screen registered for destination")
		return
	}
	n.win.SetContent(factory(params))
}

// Back pops the current screen and mounts the previous one again.
// It reports false when there is nothing to go back to.
func (n *WindowNavigator) Back() bool {
	n.mu.Lock()
	if len(n.stack) < 2 {
		n.mu.Unlock()
		return false
	}
	n.stack = n.stack[:len(n.stack)-1]
	top := n.stack[len(n.stack)-1]
	factory := n.factories[top.dest]
	n.mu.Unlock()

	n.log.WithField("dest", top.dest).Debug("Navigating back")
	fyne.Do(func() {
		n.win.SetContent(factory(top.params))
	})
	return true
}

// Current returns the destination on top of the stack.
func (n *WindowNavigator) Current() (core.Destination, core.Params, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.stack) == 0 {
		return "", core.Params{}, false
	}
	top := n.stack[len(n.stack)-1]
	return top.dest, top.params, true
}

func (n *WindowNavigator) Depth() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.stack)
}

func (n *WindowNavigator) show(dest core.Destination, params core.Params, replace bool) {
	n.mu.Lock()
	factory, ok := n.factories[dest]
	n.mu.Unlock()
	if !ok {
		n.log.WithField("dest", dest).Error("No screen registered for destination")
		return
	}

	n.log.WithFields(logrus.Fields{
		"dest":    dest,
		"mode":    params.Mode.String(),
		"replace": replace,
	}).Debug("Navigating")

	fyne.Do(func() {
		content := factory(params)
		n.mu.Lock()
		if replace {
			n.stack = n.stack[:0]
		}
		n.stack = append(n.stack, navEntry{dest: dest, params: params})
		n.mu.Unlock()
		n.win.SetContent(content)
	})
}
