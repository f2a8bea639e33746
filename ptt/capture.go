package ptt

import "pushmic/trigger"

// CaptureSession learns a new binding from the next valid press. While armed
// it consumes every event.
type CaptureSession struct {
	armed bool
}

// Arm reports whether the session went from idle to armed.
func (s *CaptureSession) Arm() bool {
	if s.armed {
		return false
	}
	s.armed = true
	return true
}

func (s *CaptureSession) Armed() bool { return s.armed }

func (s *CaptureSession) Cancel() { s.armed = false }

// TryComplete returns the new binding when an armed session sees a press of
// a supported trigger, disarming it. Releases and unsupported inputs are
// swallowed and leave the session armed, so the release of the click that
// started the capture is never taken as the new binding.
func (s *CaptureSession) TryComplete(id trigger.Identity, edge trigger.Edge) (trigger.Identity, bool) {
	if !s.armed || edge != trigger.Pressed {
		return trigger.Identity{}, false
	}
	if err := id.Validate(); err != nil {
		return trigger.Identity{}, false
	}
	s.armed = false
	return id, true
}
