package hook

import (
	"errors"
	"testing"

	"pushmic/trigger"
)

type recorder struct{ events []trigger.Event }

func (r *recorder) cb(ev trigger.Event) { r.events = append(r.events, ev) }

func TestFakeDeliversClassifiedEvents(t *testing.T) {
	f := NewFake()
	var r recorder
	if err := f.Start(r.cb); err != nil {
		t.Fatal(err)
	}

	f.Press(trigger.CapsLock)
	f.Sim(trigger.RawMouse, 0, trigger.WMMButtonDown) // unsupported, dropped
	f.Sim(trigger.RawMouse, 120, trigger.WMMouseWheel)
	f.Release(trigger.CapsLock)
	f.Press(trigger.Mouse(trigger.ButtonX2))

	want := []trigger.Event{
		{Identity: trigger.CapsLock, Edge: trigger.Pressed},
		{Identity: trigger.CapsLock, Edge: trigger.Released},
		{Identity: trigger.Mouse(trigger.ButtonX2), Edge: trigger.Pressed},
	}
	if len(r.events) != len(want) {
		t.Fatalf("got %v, want %v", r.events, want)
	}
	for i := range want {
		if r.events[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, r.events[i], want[i])
		}
	}
}

func TestRawForRoundTrip(t *testing.T) {
	ids := []trigger.Identity{
		trigger.CapsLock,
		trigger.Keyboard(trigger.VKF1),
		trigger.Mouse(trigger.ButtonLeft),
		trigger.Mouse(trigger.ButtonRight),
		trigger.Mouse(trigger.ButtonX1),
		trigger.Mouse(trigger.ButtonX2),
	}
	for _, id := range ids {
		for _, edge := range []trigger.Edge{trigger.Pressed, trigger.Released} {
			ev, ok := trigger.Classify(RawFor(id, edge))
			if !ok || ev.Identity != id || ev.Edge != edge {
				t.Errorf("%v %v: classified as %v, %v", id, edge, ev, ok)
			}
		}
	}
}

func TestFakeStopIdempotent(t *testing.T) {
	f := NewFake()
	var r recorder
	if err := f.Start(r.cb); err != nil {
		t.Fatal(err)
	}
	f.Stop()
	f.Stop()
	if f.Stops() != 1 {
		t.Errorf("stops = %d, want 1", f.Stops())
	}
	f.Press(trigger.CapsLock)
	if len(r.events) != 0 {
		t.Errorf("events delivered after Stop: %v", r.events)
	}
}

func TestFakeStartTwice(t *testing.T) {
	f := NewFake()
	if err := f.Start(func(trigger.Event) {}); err != nil {
		t.Fatal(err)
	}
	if err := f.Start(func(trigger.Event) {}); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("got %v, want ErrAlreadyStarted", err)
	}
}

func TestFakeInstallFailure(t *testing.T) {
	f := NewFake()
	cause := errors.New("access denied")
	f.FailInstall(cause)

	err := f.Start(func(trigger.Event) {})
	var ie *InstallError
	if !errors.As(err, &ie) || !errors.Is(err, cause) {
		t.Fatalf("got %v, want InstallError wrapping cause", err)
	}
	if f.Installed() {
		t.Error("no hook should be installed after a failed Start")
	}
}

func TestCallbackPanicDoesNotEscape(t *testing.T) {
	f := NewFake()
	if err := f.Start(func(trigger.Event) { panic("boom") }); err != nil {
		t.Fatal(err)
	}
	f.Press(trigger.CapsLock) // must not panic
}
