// Package mute controls the mute flag of the default capture device.
package mute

import (
	"errors"
	"fmt"

	"pushmic/log"
)

var (
	ErrUnsupportedPlatform = errors.New("microphone control is not supported on this platform")
	ErrClosed              = errors.New("audio endpoint closed")
)

// Endpoint is the audio capability for one capture device, resolved once.
type Endpoint interface {
	GetMute() (bool, error)
	SetMute(muted bool) error
	Name() string
	Close() error
}

// Device describes a capture device as listed by the platform backend.
type Device struct {
	Name    string
	Default bool
}

// ControlError is a failed audio call. It is never fatal.
type ControlError struct {
	Op  string
	Err error
}

func (e *ControlError) Error() string {
	return fmt.Sprintf("microphone %s: %v", e.Op, e.Err)
}

func (e *ControlError) Unwrap() error { return e.Err }

// Controller tracks the hardware mute state of an Endpoint and remembers the
// state found at startup. It is not safe for concurrent use; the owner
// serializes access.
type Controller struct {
	ep       Endpoint
	muted    bool
	original bool
	restored bool
}

func NewController(ep Endpoint) *Controller {
	m, err := ep.GetMute()
	if err != nil {
		log.Warnf("reading initial mute state of %s: %v (assuming unmuted)", ep.Name(), err)
		m = false
	}
	return &Controller{ep: ep, muted: m, original: m}
}

func (c *Controller) Muted() bool        { return c.muted }
func (c *Controller) Original() bool     { return c.original }
func (c *Controller) Endpoint() Endpoint { return c.ep }

// SetMuted drives the hardware to target. changed is false when the state
// already matched and no call was issued. On failure the tracked state is
// left as it was.
func (c *Controller) SetMuted(target bool) (changed bool, err error) {
	if target == c.muted {
		return false, nil
	}
	if err := c.ep.SetMute(target); err != nil {
		return false, &ControlError{Op: opName(target), Err: err}
	}
	c.muted = target
	return true, nil
}

// RestoreOriginal puts the device back in the state it was found in. After a
// successful restore further calls do nothing.
func (c *Controller) RestoreOriginal() error {
	if c.restored {
		return nil
	}
	current := c.muted
	if live, err := c.ep.GetMute(); err == nil {
		current = live
	} else {
		log.Warnf("reading mute state before restore: %v", err)
	}
	if current != c.original {
		if err := c.ep.SetMute(c.original); err != nil {
			return &ControlError{Op: "restore", Err: err}
		}
	}
	c.muted = c.original
	c.restored = true
	return nil
}

func opName(muted bool) string {
	if muted {
		return "mute"
	}
	return "unmute"
}
