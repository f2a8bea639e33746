package hook

import (
	"sync"

	"pushmic/trigger"
)

// Fake is a Manager driven by the test instead of the OS. Raw events go
// through the same classifier as the real hooks.
type Fake struct {
	mu         sync.Mutex
	cb         Callback
	installErr error
	starts     int
	stops      int
}

func NewFake() *Fake { return &Fake{} }

// FailInstall makes the next Start fail with an *InstallError wrapping err.
func (f *Fake) FailInstall(err error) {
	f.mu.Lock()
	f.installErr = err
	f.mu.Unlock()
}

func (f *Fake) Start(cb Callback) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cb != nil {
		return ErrAlreadyStarted
	}
	if f.installErr != nil {
		err := &InstallError{Hook: "mouse", Err: f.installErr}
		f.installErr = nil
		return err
	}
	f.cb = cb
	f.starts++
	return nil
}

func (f *Fake) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cb == nil {
		return
	}
	f.cb = nil
	f.stops++
}

func (f *Fake) Installed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cb != nil
}

func (f *Fake) Stops() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stops
}

// Sim feeds one raw hook event. Events arriving while stopped are dropped, as
// the OS would not deliver them.
func (f *Fake) Sim(kind trigger.RawKind, code, msg uint32) {
	f.mu.Lock()
	cb := f.cb
	f.mu.Unlock()
	if cb == nil {
		return
	}
	deliver(cb, kind, code, msg)
}

func (f *Fake) Press(id trigger.Identity)   { f.Sim(RawFor(id, trigger.Pressed)) }
func (f *Fake) Release(id trigger.Identity) { f.Sim(RawFor(id, trigger.Released)) }

// RawFor returns the raw hook codes that classify to id with the given edge.
func RawFor(id trigger.Identity, edge trigger.Edge) (kind trigger.RawKind, code, msg uint32) {
	down := edge == trigger.Pressed
	switch id.Device {
	case trigger.DeviceKeyboard:
		if down {
			return trigger.RawKeyboard, uint32(id.Code), trigger.WMKeyDown
		}
		return trigger.RawKeyboard, uint32(id.Code), trigger.WMKeyUp
	case trigger.DeviceMouse:
		switch id.Code {
		case trigger.ButtonLeft:
			return trigger.RawMouse, 0, pick(down, trigger.WMLButtonDown, trigger.WMLButtonUp)
		case trigger.ButtonRight:
			return trigger.RawMouse, 0, pick(down, trigger.WMRButtonDown, trigger.WMRButtonUp)
		case trigger.ButtonX1:
			return trigger.RawMouse, trigger.XButton1, pick(down, trigger.WMXButtonDown, trigger.WMXButtonUp)
		case trigger.ButtonX2:
			return trigger.RawMouse, trigger.XButton2, pick(down, trigger.WMXButtonDown, trigger.WMXButtonUp)
		}
	}
	return 0, 0, 0
}

func pick(down bool, d, u uint32) uint32 {
	if down {
		return d
	}
	return u
}
