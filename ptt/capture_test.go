package ptt

import (
	"testing"

	"pushmic/trigger"
)

func TestCaptureSessionIdle(t *testing.T) {
	var s CaptureSession
	if _, ok := s.TryComplete(trigger.CapsLock, trigger.Pressed); ok {
		t.Fatal("idle session must not complete")
	}
	if s.Armed() {
		t.Fatal("idle session must stay idle")
	}
}

func TestCaptureSessionArm(t *testing.T) {
	var s CaptureSession
	if !s.Arm() {
		t.Fatal("first Arm should succeed")
	}
	if s.Arm() {
		t.Fatal("Arm while armed should be a no-op")
	}
	if !s.Armed() {
		t.Fatal("session should be armed")
	}
}

func TestCaptureSessionTryComplete(t *testing.T) {
	tests := []struct {
		name  string
		id    trigger.Identity
		edge  trigger.Edge
		ok    bool
		armed bool
	}{
		{"press completes", trigger.CapsLock, trigger.Pressed, true, false},
		{"mouse press completes", trigger.Mouse(trigger.ButtonX2), trigger.Pressed, true, false},
		{"release swallowed", trigger.CapsLock, trigger.Released, false, true},
		{"sentinel swallowed", trigger.Identity{}, trigger.Pressed, false, true},
		{"bad button swallowed", trigger.Mouse(5), trigger.Pressed, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s CaptureSession
			s.Arm()
			got, ok := s.TryComplete(tt.id, tt.edge)
			if ok != tt.ok || s.Armed() != tt.armed {
				t.Fatalf("ok=%v armed=%v, want ok=%v armed=%v", ok, s.Armed(), tt.ok, tt.armed)
			}
			if ok && got != tt.id {
				t.Errorf("got %v, want %v", got, tt.id)
			}
		})
	}
}

func TestCaptureSessionCancel(t *testing.T) {
	var s CaptureSession
	s.Arm()
	s.Cancel()
	if s.Armed() {
		t.Fatal("Cancel should disarm")
	}
	if !s.Arm() {
		t.Fatal("session should be reusable after Cancel")
	}
}
