package notify

import (
	"errors"
	"testing"
	"time"
)

func capture(t *testing.T) <-chan string {
	t.Helper()
	ch := make(chan string, 4)
	orig := send
	send = func(_, msg string) error {
		ch <- msg
		return nil
	}
	t.Cleanup(func() {
		send = orig
		Enable(false)
	})
	return ch
}

func next(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case m := <-ch:
		return m
	case <-time.After(time.Second):
		t.Fatal("no notification")
		return ""
	}
}

func TestDisabledShowsNothing(t *testing.T) {
	ch := capture(t)
	Enable(false)
	Live()
	select {
	case m := <-ch:
		t.Fatalf("got %q while disabled", m)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestMessages(t *testing.T) {
	ch := capture(t)
	Enable(true)

	tests := []struct {
		fire func()
		want string
	}{
		{func() { BindingUpdated("Mouse X1") }, "Trigger set to Mouse X1"},
		{Live, "Microphone live"},
		{func() { AudioError(errors.New("device gone")) }, "Audio error: device gone"},
		{func() { Restored(true) }, "Microphone restored (muted)"},
		{func() { Restored(false) }, "Microphone restored (live)"},
	}
	for _, tt := range tests {
		tt.fire()
		if got := next(t, ch); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}
