// Package tray shows the microphone state in the system tray and forwards
// menu clicks to registered callbacks.
package tray

import (
	"sync"
	"time"
)

var (
	mu sync.Mutex

	binding       string
	muted         = true
	capturing     bool
	notifications bool
	loginOn       bool
	errMsg        string
	errSeq        int

	captureFn func()
	notifyFn  func(bool)
	quitFn    func()
	loginFn   func(bool) error
)

func OnCapture(fn func())           { mu.Lock(); captureFn = fn; mu.Unlock() }
func OnNotifications(fn func(bool)) { mu.Lock(); notifyFn = fn; mu.Unlock() }
func OnQuit(fn func())              { mu.Lock(); quitFn = fn; mu.Unlock() }
func OnLogin(fn func(bool) error)   { mu.Lock(); loginFn = fn; mu.Unlock() }

func SetLogin(on bool) {
	mu.Lock()
	loginOn = on
	mu.Unlock()
	refresh()
}

func SetBinding(name string) {
	mu.Lock()
	binding = name
	mu.Unlock()
	refresh()
}

func SetMuted(m bool) {
	mu.Lock()
	muted = m
	mu.Unlock()
	refresh()
}

func SetCapturing(c bool) {
	mu.Lock()
	capturing = c
	mu.Unlock()
	refresh()
}

func SetNotifications(on bool) {
	mu.Lock()
	notifications = on
	mu.Unlock()
	refresh()
}

// SetError shows msg in the tooltip for ten seconds.
func SetError(msg string) {
	mu.Lock()
	errMsg = msg
	errSeq++
	seq := errSeq
	mu.Unlock()
	refresh()
	go func() {
		time.Sleep(10 * time.Second)
		mu.Lock()
		if errSeq == seq {
			errMsg = ""
		}
		mu.Unlock()
		refresh()
	}()
}

type state struct {
	binding       string
	muted         bool
	capturing     bool
	notifications bool
	loginOn       bool
	errMsg        string
}

func snapshot() state {
	mu.Lock()
	defer mu.Unlock()
	return state{binding, muted, capturing, notifications, loginOn, errMsg}
}

// toggleLogin flips launch-at-login through the registered callback and
// keeps the old state when it fails.
func toggleLogin() {
	mu.Lock()
	fn := loginFn
	want := !loginOn
	mu.Unlock()
	if fn == nil {
		return
	}
	if err := fn(want); err != nil {
		SetError(err.Error())
		return
	}
	SetLogin(want)
}

func (s state) tooltip() string {
	switch {
	case s.errMsg != "":
		return "pushmic – " + s.errMsg
	case s.capturing:
		return "pushmic – press a key or mouse button"
	case s.muted:
		return "pushmic – muted (hold " + s.bindingLabel() + " to talk)"
	default:
		return "pushmic – live"
	}
}

func (s state) bindingLabel() string {
	if s.binding == "" {
		return "trigger"
	}
	return s.binding
}

func (s state) captureTitle() string {
	if s.capturing {
		return "Waiting for input…"
	}
	return "Capture new trigger (" + s.bindingLabel() + ")"
}

func fire(fn *func()) {
	mu.Lock()
	f := *fn
	mu.Unlock()
	if f != nil {
		f()
	}
}
