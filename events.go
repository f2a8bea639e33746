package main

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"pushmic/beep"
	"pushmic/config"
	"pushmic/log"
	"pushmic/notify"
	"pushmic/ptt"
	"pushmic/tray"
	"pushmic/trigger"
)

// appSink fans engine events out to the front ends, the config store and
// the notification layer. Engine callbacks arrive on the engine goroutine.
type appSink struct {
	store *config.Store

	// binding and started are engine-goroutine state.
	binding trigger.Identity
	started bool

	mu     sync.Mutex
	tui    *tea.Program
	trayOn bool
	extra  ptt.Sink
}

func newAppSink(store *config.Store, binding trigger.Identity) *appSink {
	return &appSink{store: store, binding: binding}
}

func (s *appSink) setTUI(p *tea.Program) {
	s.mu.Lock()
	s.tui = p
	s.mu.Unlock()
}

func (s *appSink) setTray(on bool) {
	s.mu.Lock()
	s.trayOn = on
	s.mu.Unlock()
}

// setExtra attaches one more sink, such as the settings window.
func (s *appSink) setExtra(sink ptt.Sink) {
	s.mu.Lock()
	s.extra = sink
	s.mu.Unlock()
}

func (s *appSink) targets() (*tea.Program, bool, ptt.Sink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tui, s.trayOn, s.extra
}

// announce pushes the current state to front ends attached after Start.
func (s *appSink) announce(binding trigger.Identity, muted bool) {
	p, trayOn, extra := s.targets()
	if p != nil {
		p.Send(BindingMsg{Name: binding.String()})
		p.Send(MuteMsg{Muted: muted})
	}
	if trayOn {
		tray.SetBinding(binding.String())
		tray.SetMuted(muted)
	}
	if extra != nil {
		extra.BindingChanged(binding)
		extra.MuteChanged(muted)
	}
}

func (s *appSink) BindingChanged(id trigger.Identity) {
	if id != s.binding {
		s.binding = id
		s.store.Update(func(c *config.Config) { c.SetBinding(id) })
		notify.BindingUpdated(id.String())
	}
	p, trayOn, extra := s.targets()
	if p != nil {
		p.Send(BindingMsg{Name: id.String()})
	}
	if trayOn {
		tray.SetBinding(id.String())
	}
	if extra != nil {
		extra.BindingChanged(id)
	}
}

func (s *appSink) MuteChanged(muted bool) {
	// The first report is the startup state, not an edge.
	if s.started {
		if muted {
			beep.PlayMuted()
		} else {
			beep.PlayLive()
			notify.Live()
		}
	}
	s.started = true

	p, trayOn, extra := s.targets()
	if p != nil {
		p.Send(MuteMsg{Muted: muted})
	}
	if trayOn {
		tray.SetMuted(muted)
	}
	if extra != nil {
		extra.MuteChanged(muted)
	}
}

func (s *appSink) CaptureChanged(capturing bool) {
	if capturing {
		log.Info("capture armed")
	}
	p, trayOn, extra := s.targets()
	if p != nil {
		p.Send(CaptureMsg{Capturing: capturing})
	}
	if trayOn {
		tray.SetCapturing(capturing)
	}
	if extra != nil {
		extra.CaptureChanged(capturing)
	}
}

func (s *appSink) AudioError(err error) {
	beep.PlayError()
	notify.AudioError(err)

	p, trayOn, extra := s.targets()
	if p != nil {
		p.Send(ErrorMsg{Text: err.Error()})
	}
	if trayOn {
		tray.SetError(err.Error())
	}
	if extra != nil {
		extra.AudioError(err)
	}
}

// restored reports the final microphone state after shutdown.
func (s *appSink) restored(muted bool) {
	notify.Restored(muted)
}
