// Package shutdown runs cleanup exactly once on whichever exit path fires
// first: a signal, a UI quit, or a normal return.
package shutdown

import (
	"os"
	"os/signal"
	"sync"
)

// Guard holds cleanup functions and runs them in reverse registration order.
type Guard struct {
	mu    sync.Mutex
	fns   []func()
	once  sync.Once
	done  chan struct{}
	quit  chan struct{}
	qOnce sync.Once
}

func NewGuard() *Guard {
	return &Guard{done: make(chan struct{}), quit: make(chan struct{})}
}

// Defer registers fn. Functions registered after Run has started are ignored.
func (g *Guard) Defer(fn func()) {
	g.mu.Lock()
	g.fns = append(g.fns, fn)
	g.mu.Unlock()
}

// Run executes the registered functions once, last registered first. Later
// calls wait for the first one to finish.
func (g *Guard) Run() {
	g.once.Do(func() {
		g.mu.Lock()
		fns := g.fns
		g.fns = nil
		g.mu.Unlock()
		for i := len(fns) - 1; i >= 0; i-- {
			fns[i]()
		}
		close(g.done)
	})
	<-g.done
}

// Quit asks whoever waits on Requested to shut down. Safe to call repeatedly
// from UI callbacks.
func (g *Guard) Quit() {
	g.qOnce.Do(func() { close(g.quit) })
}

func (g *Guard) Requested() <-chan struct{} { return g.quit }

// Done is closed once cleanup has finished.
func (g *Guard) Done() <-chan struct{} { return g.done }

// Watch calls Quit when the process receives an interrupt or termination
// signal.
func (g *Guard) Watch() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, Signals...)
	go func() {
		defer signal.Stop(ch)
		select {
		case <-ch:
			g.Quit()
		case <-g.done:
		}
	}()
}
