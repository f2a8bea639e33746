package hotkey

import "sync"

// Fake is a Hotkey driven by the test through SimKeydown and SimKeyup.
type Fake struct {
	keydown chan struct{}
	keyup   chan struct{}

	mu           sync.Mutex
	registered   bool
	unregistered int
	failWith     error
}

func NewFake() *Fake {
	return &Fake{
		keydown: make(chan struct{}, 1),
		keyup:   make(chan struct{}, 1),
	}
}

// FailRegister makes the next Register return err.
func (f *Fake) FailRegister(err error) {
	f.mu.Lock()
	f.failWith = err
	f.mu.Unlock()
}

func (f *Fake) Register() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failWith; err != nil {
		f.failWith = nil
		return err
	}
	f.registered = true
	return nil
}

func (f *Fake) Unregister() {
	f.mu.Lock()
	f.registered = false
	f.unregistered++
	f.mu.Unlock()
}

func (f *Fake) Registered() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.registered
}

func (f *Fake) Unregisters() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unregistered
}

func (f *Fake) Keydown() <-chan struct{} { return f.keydown }
func (f *Fake) Keyup() <-chan struct{}   { return f.keyup }

func (f *Fake) SimKeydown() { f.keydown <- struct{}{} }
func (f *Fake) SimKeyup()   { f.keyup <- struct{}{} }
