package mute

import (
	"errors"
	"testing"
)

var errBus = errors.New("device busy")

func TestControllerCapturesOriginal(t *testing.T) {
	for _, startMuted := range []bool{false, true} {
		c := NewController(NewFake(startMuted))
		if c.Original() != startMuted || c.Muted() != startMuted {
			t.Errorf("start %v: original=%v muted=%v", startMuted, c.Original(), c.Muted())
		}
	}
}

func TestControllerOriginalDefaultsOnQueryFailure(t *testing.T) {
	f := NewFake(true)
	f.FailGet(errBus)
	c := NewController(f)
	if c.Original() {
		t.Fatal("original should default to unmuted when the query fails")
	}
}

func TestSetMutedIdempotent(t *testing.T) {
	f := NewFake(false)
	c := NewController(f)

	changed, err := c.SetMuted(true)
	if err != nil || !changed {
		t.Fatalf("first SetMuted(true) = %v, %v", changed, err)
	}
	changed, err = c.SetMuted(true)
	if err != nil || changed {
		t.Fatalf("second SetMuted(true) = %v, %v", changed, err)
	}
	if f.Sets() != 1 {
		t.Errorf("hardware calls = %d, want 1", f.Sets())
	}
	if m, _ := f.GetMute(); !m {
		t.Error("device should be muted")
	}
}

func TestSetMutedFailureKeepsState(t *testing.T) {
	f := NewFake(true)
	c := NewController(f)
	f.FailSet(errBus)

	changed, err := c.SetMuted(false)
	if changed {
		t.Error("changed should be false on failure")
	}
	var ce *ControlError
	if !errors.As(err, &ce) || ce.Op != "unmute" || !errors.Is(err, errBus) {
		t.Fatalf("got %v, want ControlError wrapping errBus", err)
	}
	if !c.Muted() {
		t.Error("tracked state must stay muted after a failed unmute")
	}

	// Next edge retries.
	f.FailSet(nil)
	if changed, err := c.SetMuted(false); err != nil || !changed {
		t.Fatalf("retry = %v, %v", changed, err)
	}
}

func TestRestoreOriginal(t *testing.T) {
	tests := []struct {
		name     string
		original bool
		ops      []bool
	}{
		{"unmuted left unmuted", false, []bool{true, false}},
		{"unmuted left muted", false, []bool{true}},
		{"muted left unmuted", true, []bool{false}},
		{"muted untouched", true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFake(tt.original)
			c := NewController(f)
			for _, m := range tt.ops {
				if _, err := c.SetMuted(m); err != nil {
					t.Fatal(err)
				}
			}
			if err := c.RestoreOriginal(); err != nil {
				t.Fatal(err)
			}
			if m, _ := f.GetMute(); m != tt.original {
				t.Errorf("GetMute() = %v, want %v", m, tt.original)
			}
		})
	}
}

func TestRestoreOriginalUsesLiveState(t *testing.T) {
	f := NewFake(false)
	c := NewController(f)
	if _, err := c.SetMuted(true); err != nil {
		t.Fatal(err)
	}
	// Another program unmuted the device already; no call is needed.
	f.Force(false)
	before := f.Sets()
	if err := c.RestoreOriginal(); err != nil {
		t.Fatal(err)
	}
	if f.Sets() != before {
		t.Errorf("restore issued %d redundant calls", f.Sets()-before)
	}
}

func TestRestoreOriginalOnce(t *testing.T) {
	f := NewFake(false)
	c := NewController(f)
	c.SetMuted(true)
	if err := c.RestoreOriginal(); err != nil {
		t.Fatal(err)
	}
	f.Force(true)
	if err := c.RestoreOriginal(); err != nil {
		t.Fatal(err)
	}
	if m, _ := f.GetMute(); !m {
		t.Error("second restore should be a no-op")
	}
}

func TestRestoreOriginalFailureAllowsRetry(t *testing.T) {
	f := NewFake(false)
	c := NewController(f)
	c.SetMuted(true)
	f.FailSet(errBus)
	if err := c.RestoreOriginal(); !errors.Is(err, errBus) {
		t.Fatalf("got %v, want errBus", err)
	}
	f.FailSet(nil)
	if err := c.RestoreOriginal(); err != nil {
		t.Fatal(err)
	}
	if m, _ := f.GetMute(); m {
		t.Error("device should be unmuted after retry")
	}
}
