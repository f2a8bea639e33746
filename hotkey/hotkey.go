// Package hotkey registers the global Ctrl+Shift+F12 shortcut that starts
// trigger capture.
package hotkey

import "context"

// Shortcut is the human-readable combination New registers.
const Shortcut = "Ctrl+Shift+F12"

type Hotkey interface {
	Register() error
	Unregister()
	Keydown() <-chan struct{}
	Keyup() <-chan struct{}
}

// Watch calls fn for every key-down of hk until ctx is done. Key-ups are
// drained so the platform channels never fill.
func Watch(ctx context.Context, hk Hotkey, fn func()) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-hk.Keydown():
				fn()
			case <-hk.Keyup():
			}
		}
	}()
}
