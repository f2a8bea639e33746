// Package hook installs the system-wide keyboard and mouse hooks that feed
// classified trigger events to a callback.
package hook

import (
	"errors"
	"fmt"

	"pushmic/log"
	"pushmic/trigger"
)

var (
	ErrUnsupportedPlatform = errors.New("low-level input hooks are only available on Windows")
	ErrAlreadyStarted      = errors.New("input hooks already installed")
)

// Callback receives every classified event. It runs on the hook thread and
// must return quickly.
type Callback func(trigger.Event)

// Manager owns one keyboard hook and one mouse hook.
type Manager interface {
	// Start installs both hooks or neither. The returned error is an
	// *InstallError when the OS refused a hook.
	Start(cb Callback) error
	// Stop removes the hooks. It is idempotent and may be called from any
	// goroutine, including from inside cb.
	Stop()
}

// InstallError means a hook could not be installed. The application cannot
// work without it.
type InstallError struct {
	Hook string
	Err  error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("installing %s hook: %v", e.Hook, e.Err)
}

func (e *InstallError) Unwrap() error { return e.Err }

// deliver runs cb for a classified event. A panic in cb must not unwind into
// the OS input pipeline.
func deliver(cb Callback, kind trigger.RawKind, code, msg uint32) {
	ev, ok := trigger.Classify(kind, code, msg)
	if !ok || cb == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("hook callback panic on %s: %v", ev, r)
		}
	}()
	cb(ev)
}
