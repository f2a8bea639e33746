//go:build gui

// Package gui is the optional fyne settings window. Build with -tags gui.
package gui

import (
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"

	"pushmic/config"
	"pushmic/tray"
	"pushmic/trigger"
)

type App struct {
	fyneApp fyne.App
	window  fyne.Window
	view    *view
	cfg     config.Config
	cb      Callbacks
	onReady func()
	muted   bool
	stopped atomic.Bool
	loginOn bool
}

func NewApp(cfg config.Config, cb Callbacks, onReady func()) *App {
	return &App{cfg: cfg, cb: cb, onReady: onReady, muted: true}
}

// Run builds the window and blocks in the fyne event loop. It must be called
// from the main goroutine.
func Run(a *App) error {
	a.fyneApp = app.NewWithID("io.pushmic.gui")
	a.fyneApp.Settings().SetTheme(newStatusTheme())

	a.view = newView(a.cfg, a.cb)
	a.view.setLogin(a.loginOn)
	a.window = a.fyneApp.NewWindow("pushmic")
	a.window.SetContent(a.view.content())
	a.window.SetFixedSize(true)

	if desk, ok := a.fyneApp.(desktop.App); ok {
		menu := fyne.NewMenu("pushmic",
			fyne.NewMenuItem("Settings", func() { a.window.Show() }),
			fyne.NewMenuItem("Capture new trigger", func() {
				if a.cb.Capture != nil {
					a.cb.Capture()
				}
			}),
		)
		desk.SetSystemTrayMenu(menu)
		a.setTrayIcon(true)
		// Closing the window hides it; the tray keeps the app reachable.
		a.window.SetCloseIntercept(func() { a.window.Hide() })
	}

	a.fyneApp.Lifecycle().SetOnStopped(func() {
		a.stopped.Store(true)
		if a.cb.Quit != nil {
			a.cb.Quit()
		}
	})

	if !a.cfg.StartMinimized {
		a.window.Show()
	}

	go a.onReady()

	a.fyneApp.Run()
	return nil
}

// SetLogin sets the initial launch-at-login state. Call before Run.
func (a *App) SetLogin(on bool) { a.loginOn = on }

func (a *App) Quit() {
	if a.fyneApp != nil && !a.stopped.Load() {
		fyne.Do(a.fyneApp.Quit)
	}
}

func (a *App) setTrayIcon(muted bool) {
	desk, ok := a.fyneApp.(desktop.App)
	if !ok {
		return
	}
	name := "live.png"
	if muted {
		name = "muted.png"
	}
	desk.SetSystemTrayIcon(fyne.NewStaticResource(name, tray.Icon(muted)))
}

// Sink implementation. Called from the engine goroutine.

func (a *App) BindingChanged(id trigger.Identity) {
	name := id.String()
	fyne.Do(func() { a.view.setBinding(name) })
}

func (a *App) MuteChanged(muted bool) {
	fyne.Do(func() {
		a.view.setMuted(muted)
		if muted != a.muted {
			a.muted = muted
			a.setTrayIcon(muted)
		}
	})
}

func (a *App) CaptureChanged(capturing bool) {
	fyne.Do(func() { a.view.setCapturing(capturing) })
}

func (a *App) AudioError(err error) {
	msg := err.Error()
	fyne.Do(func() { a.view.setError(msg) })
}
