package ptt

import "pushmic/trigger"

// Sink receives engine events on the engine goroutine. Implementations hand
// work off and return immediately.
type Sink interface {
	BindingChanged(id trigger.Identity)
	MuteChanged(muted bool)
	CaptureChanged(capturing bool)
	AudioError(err error)
}

// MultiSink fans every event out to each sink in order.
type MultiSink []Sink

func (m MultiSink) BindingChanged(id trigger.Identity) {
	for _, s := range m {
		s.BindingChanged(id)
	}
}

func (m MultiSink) MuteChanged(muted bool) {
	for _, s := range m {
		s.MuteChanged(muted)
	}
}

func (m MultiSink) CaptureChanged(capturing bool) {
	for _, s := range m {
		s.CaptureChanged(capturing)
	}
}

func (m MultiSink) AudioError(err error) {
	for _, s := range m {
		s.AudioError(err)
	}
}

// NopSink ignores everything.
type NopSink struct{}

func (NopSink) BindingChanged(trigger.Identity) {}
func (NopSink) MuteChanged(bool)                {}
func (NopSink) CaptureChanged(bool)             {}
func (NopSink) AudioError(error)                {}
