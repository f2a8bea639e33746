// Package ptt is the push-to-talk state machine: it turns trigger edges into
// microphone mute changes and learns new bindings on request.
package ptt

import (
	"context"
	"sync"
	"sync/atomic"

	"pushmic/log"
	"pushmic/mute"
	"pushmic/trigger"
)

const defaultQueueSize = 256

type Options struct {
	// AutoMuteOnStart mutes on Start; otherwise the startup state is kept.
	AutoMuteOnStart bool
	QueueSize       int
}

type msgKind int

const (
	msgEvent msgKind = iota
	msgCapture
	msgCancel
	msgBarrier
)

type message struct {
	kind msgKind
	ev   trigger.Event
	done chan struct{}
}

// Engine owns the binding, the capture session and the mute controller.
//
// Dispatch, RequestCapture, CancelCapture, Start and Shutdown mutate state and
// must only be called from one goroutine: the one running Run, or any single
// goroutine while Run is not running. Other goroutines use the Post methods.
type Engine struct {
	ctrl    *mute.Controller
	binding trigger.Identity
	capture CaptureSession
	opts    Options
	sink    Sink

	// held is true between a press and release of the binding.
	held bool

	queue    chan message
	dropped  atomic.Uint64
	overflow atomic.Bool
	// drain counts messages still to be handled that were queued before the
	// last drop. When it reaches zero the microphone is muted.
	drain int

	shutdownOnce sync.Once
	shutdownErr  error
}

func New(ctrl *mute.Controller, binding trigger.Identity, opts Options, sink Sink) *Engine {
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}
	if sink == nil {
		sink = NopSink{}
	}
	return &Engine{
		ctrl:    ctrl,
		binding: binding,
		opts:    opts,
		sink:    sink,
		queue:   make(chan message, opts.QueueSize),
	}
}

// Start applies the initial mute state and announces the binding.
func (e *Engine) Start() error {
	target := e.ctrl.Original()
	if e.opts.AutoMuteOnStart {
		target = true
	}
	e.sink.BindingChanged(e.binding)
	if e.ctrl.Muted() == target {
		e.sink.MuteChanged(target)
		return nil
	}
	return e.setMuted(target)
}

func (e *Engine) Binding() trigger.Identity { return e.binding }
func (e *Engine) Capturing() bool           { return e.capture.Armed() }
func (e *Engine) Muted() bool               { return e.ctrl.Muted() }
func (e *Engine) Dropped() uint64           { return e.dropped.Load() }

// Dispatch handles one classified event.
func (e *Engine) Dispatch(id trigger.Identity, edge trigger.Edge) {
	if e.capture.Armed() {
		next, ok := e.capture.TryComplete(id, edge)
		if !ok {
			return
		}
		e.binding = next
		log.BindingChanged(next.String())
		e.sink.CaptureChanged(false)
		e.sink.BindingChanged(next)
		return
	}

	if e.binding.IsZero() || id != e.binding {
		return
	}
	switch edge {
	case trigger.Pressed:
		e.held = true
		e.setMuted(false)
	case trigger.Released:
		e.held = false
		e.setMuted(true)
	}
}

// RequestCapture arms the capture session. It returns false if a capture is
// already in progress. A held trigger is released first so the microphone
// does not stay live while the old binding is ignored.
func (e *Engine) RequestCapture() bool {
	if !e.capture.Arm() {
		return false
	}
	if e.held {
		e.held = false
		e.setMuted(true)
	}
	e.sink.CaptureChanged(true)
	return true
}

// CancelCapture disarms a pending capture and keeps the current binding.
func (e *Engine) CancelCapture() {
	if !e.capture.Armed() {
		return
	}
	e.capture.Cancel()
	e.sink.CaptureChanged(false)
}

func (e *Engine) setMuted(target bool) error {
	changed, err := e.ctrl.SetMuted(target)
	if err != nil {
		log.AudioError(target, err)
		e.sink.AudioError(err)
		return err
	}
	if changed {
		log.MuteChanged(e.binding.String(), target)
		e.sink.MuteChanged(target)
	}
	return nil
}

// Post queues ev for Run without blocking. It is safe to call from the hook
// thread. When the queue is full the event is dropped and counted.
func (e *Engine) Post(ev trigger.Event) bool {
	return e.post(message{kind: msgEvent, ev: ev})
}

func (e *Engine) PostCapture() bool { return e.post(message{kind: msgCapture}) }
func (e *Engine) PostCancel() bool  { return e.post(message{kind: msgCancel}) }

func (e *Engine) post(m message) bool {
	select {
	case e.queue <- m:
		return true
	default:
		e.dropped.Add(1)
		e.overflow.Store(true)
		return false
	}
}

// Barrier blocks until every message queued before it has been handled by
// Run. Unlike the Post methods it waits for queue space instead of dropping.
func (e *Engine) Barrier(ctx context.Context) error {
	done := make(chan struct{})
	select {
	case e.queue <- message{kind: msgBarrier, done: done}:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes queued messages in order until ctx is done.
func (e *Engine) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m := <-e.queue:
			e.handle(m)
		}
	}
}

func (e *Engine) handle(m message) {
	// Everything queued ahead of a drop still runs before the fallback
	// mute, so a queued press cannot undo it. m and the current backlog are
	// an upper bound on what was queued ahead.
	if e.overflow.Swap(false) {
		e.drain = max(e.drain, len(e.queue)+1)
	}
	e.dispatch(m)
	if e.drain > 0 {
		e.drain--
		if e.drain == 0 {
			// A dropped release would leave the microphone live.
			log.Warnf("event queue overflow (%d dropped), muting", e.dropped.Load())
			e.held = false
			e.setMuted(true)
		}
	}
	if m.kind == msgBarrier {
		close(m.done)
	}
}

func (e *Engine) dispatch(m message) {
	switch m.kind {
	case msgEvent:
		e.Dispatch(m.ev.Identity, m.ev.Edge)
	case msgCapture:
		e.RequestCapture()
	case msgCancel:
		e.CancelCapture()
	}
}

// Shutdown cancels any capture and restores the microphone to its startup
// state. Only the first call does work; Run must have returned.
func (e *Engine) Shutdown() error {
	e.shutdownOnce.Do(func() {
		e.capture.Cancel()
		e.held = false
		e.shutdownErr = e.ctrl.RestoreOriginal()
		if e.shutdownErr != nil {
			log.Errorf("restoring microphone: %v", e.shutdownErr)
		}
	})
	return e.shutdownErr
}
