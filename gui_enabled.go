//go:build gui

package main

import (
	"pushmic/gui"
	"pushmic/login"
)

// runGUI shows the settings window and blocks in its event loop until the
// app has shut down.
func runGUI(a *app) error {
	g := gui.NewApp(a.store.Get(), gui.Callbacks{
		Capture:  a.capture,
		Settings: a.applySettings,
		Quit:     a.quit,
		Login:    setLogin,
	}, func() {
		a.sink.announce(a.engine.Binding(), a.engine.Muted())
		a.serve()
	})
	g.SetLogin(login.Enabled())
	a.sink.setExtra(g)
	a.guard.Defer(g.Quit)

	if err := gui.Run(g); err != nil {
		a.quit()
	}
	<-a.guard.Done()
	return a.crash
}
