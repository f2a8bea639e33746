//go:build !windows

package hook

import (
	"errors"
	"testing"

	"pushmic/trigger"
)

func TestStartUnsupportedPlatform(t *testing.T) {
	m := New()
	err := m.Start(func(trigger.Event) {})
	var ie *InstallError
	if !errors.As(err, &ie) || !errors.Is(err, ErrUnsupportedPlatform) {
		t.Fatalf("got %v, want InstallError wrapping ErrUnsupportedPlatform", err)
	}
	m.Stop()
}
