// Package trigger defines the canonical identity of a push-to-talk trigger and
// maps raw low-level hook codes onto it.
package trigger

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupported reports an input that cannot be used as a trigger.
var ErrUnsupported = errors.New("unsupported trigger")

type Device int

const (
	DeviceNone Device = iota
	DeviceKeyboard
	DeviceMouse
)

func (d Device) String() string {
	switch d {
	case DeviceKeyboard:
		return "Keyboard"
	case DeviceMouse:
		return "Mouse"
	default:
		return "None"
	}
}

func (d Device) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(d.String())), nil
}

func (d *Device) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "keyboard":
		*d = DeviceKeyboard
	case "mouse":
		*d = DeviceMouse
	case "none", "":
		*d = DeviceNone
	default:
		return fmt.Errorf("%w: device %q", ErrUnsupported, string(b))
	}
	return nil
}

type Edge int

const (
	Pressed Edge = iota + 1
	Released
)

func (e Edge) String() string {
	switch e {
	case Pressed:
		return "pressed"
	case Released:
		return "released"
	default:
		return "unknown"
	}
}

// Mouse button codes. Middle button and wheel are never triggers.
const (
	ButtonLeft  = 1
	ButtonRight = 2
	ButtonX1    = 3
	ButtonX2    = 4
)

const maxVirtualKey = 0xFE

// Identity is a device kind plus key or button code. The zero value is the
// "no trigger" sentinel.
type Identity struct {
	Device Device
	Code   int
}

func Keyboard(vk int) Identity  { return Identity{Device: DeviceKeyboard, Code: vk} }
func Mouse(button int) Identity { return Identity{Device: DeviceMouse, Code: button} }

// CapsLock is the default binding.
var CapsLock = Keyboard(VKCapital)

func (id Identity) IsZero() bool { return id == Identity{} }

// Validate returns ErrUnsupported unless id names a key or button that can
// serve as a trigger.
func (id Identity) Validate() error {
	switch id.Device {
	case DeviceKeyboard:
		if id.Code > 0 && id.Code <= maxVirtualKey {
			return nil
		}
	case DeviceMouse:
		if id.Code >= ButtonLeft && id.Code <= ButtonX2 {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnsupported, id)
}

func (id Identity) String() string {
	switch id.Device {
	case DeviceKeyboard:
		return "Keyboard " + KeyName(id.Code)
	case DeviceMouse:
		return "Mouse " + ButtonName(id.Code)
	default:
		return "None"
	}
}

// Event is one classified edge of an input.
type Event struct {
	Identity Identity
	Edge     Edge
}

func (e Event) String() string {
	return e.Identity.String() + " " + e.Edge.String()
}

func ButtonName(code int) string {
	switch code {
	case ButtonLeft:
		return "Left"
	case ButtonRight:
		return "Right"
	case ButtonX1:
		return "XButton1"
	case ButtonX2:
		return "XButton2"
	default:
		return fmt.Sprintf("Button%d", code)
	}
}
