package mute

import "sync"

// Fake is an in-memory Endpoint. It counts SetMute calls and can be told to
// fail.
type Fake struct {
	mu       sync.Mutex
	muted    bool
	sets     int
	setErr   error
	getErr   error
	closed   bool
	DeviceID string
}

func NewFake(muted bool) *Fake {
	return &Fake{muted: muted, DeviceID: "fake microphone"}
}

func (f *Fake) GetMute() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return false, f.getErr
	}
	return f.muted, nil
}

func (f *Fake) SetMute(muted bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.sets++
	f.muted = muted
	return nil
}

func (f *Fake) Name() string { return f.DeviceID }

func (f *Fake) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}

// FailSet makes subsequent SetMute calls return err (nil clears it).
func (f *Fake) FailSet(err error) {
	f.mu.Lock()
	f.setErr = err
	f.mu.Unlock()
}

// FailGet makes subsequent GetMute calls return err (nil clears it).
func (f *Fake) FailGet(err error) {
	f.mu.Lock()
	f.getErr = err
	f.mu.Unlock()
}

// Force changes the hardware state behind the controller's back, as another
// application would.
func (f *Fake) Force(muted bool) {
	f.mu.Lock()
	f.muted = muted
	f.mu.Unlock()
}

func (f *Fake) Sets() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sets
}

func (f *Fake) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
