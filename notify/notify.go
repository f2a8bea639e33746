// Package notify shows desktop toast notifications. Toasts are off until
// Enable(true).
package notify

import (
	"sync/atomic"

	"github.com/gen2brain/beeep"

	"pushmic/log"
)

const title = "pushmic"

var enabled atomic.Bool

// Enable turns toasts on or off. Safe from any goroutine.
func Enable(on bool) { enabled.Store(on) }

func Enabled() bool { return enabled.Load() }

// send is replaced in tests.
var send = func(title, msg string) error {
	return beeep.Notify(title, msg, "")
}

// Show posts a toast without blocking the caller.
func Show(msg string) {
	if !enabled.Load() {
		return
	}
	go func() {
		if err := send(title, msg); err != nil {
			log.Warnf("notification failed: %v", err)
		}
	}()
}

func BindingUpdated(binding string) { Show("Trigger set to " + binding) }

func Live() { Show("Microphone live") }

func AudioError(err error) { Show("Audio error: " + err.Error()) }

// Restored is shown on exit and reports the state the microphone was left
// in. It blocks until the toast is posted so the process can exit after it.
func Restored(muted bool) {
	if !enabled.Load() {
		return
	}
	msg := "Microphone restored (live)"
	if muted {
		msg = "Microphone restored (muted)"
	}
	if err := send(title, msg); err != nil {
		log.Warnf("notification failed: %v", err)
	}
}
