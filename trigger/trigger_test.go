package trigger

import (
	"errors"
	"testing"
)

func TestClassifyKeyboard(t *testing.T) {
	tests := []struct {
		name string
		vk   uint32
		msg  uint32
		want Event
		ok   bool
	}{
		{"keydown", VKCapital, WMKeyDown, Event{CapsLock, Pressed}, true},
		{"keyup", VKCapital, WMKeyUp, Event{CapsLock, Released}, true},
		{"syskeydown", VKLMenu, WMSysKeyDown, Event{Keyboard(VKLMenu), Pressed}, true},
		{"syskeyup", VKLMenu, WMSysKeyUp, Event{Keyboard(VKLMenu), Released}, true},
		{"other message", VKCapital, 0x0102, Event{}, false},
		{"zero code", 0, WMKeyDown, Event{}, false},
		{"out of range", 0xFF, WMKeyDown, Event{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(RawKeyboard, tt.vk, tt.msg)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Classify = %v, %v; want %v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestClassifyMouse(t *testing.T) {
	tests := []struct {
		name string
		data uint32
		msg  uint32
		want Event
		ok   bool
	}{
		{"left down", 0, WMLButtonDown, Event{Mouse(ButtonLeft), Pressed}, true},
		{"left up", 0, WMLButtonUp, Event{Mouse(ButtonLeft), Released}, true},
		{"right down", 0, WMRButtonDown, Event{Mouse(ButtonRight), Pressed}, true},
		{"right up", 0, WMRButtonUp, Event{Mouse(ButtonRight), Released}, true},
		{"x1 down", XButton1, WMXButtonDown, Event{Mouse(ButtonX1), Pressed}, true},
		{"x2 up", XButton2, WMXButtonUp, Event{Mouse(ButtonX2), Released}, true},
		{"x unknown", 3, WMXButtonDown, Event{}, false},
		{"middle down", 0, WMMButtonDown, Event{}, false},
		{"middle up", 0, WMMButtonUp, Event{}, false},
		{"wheel", 120, WMMouseWheel, Event{}, false},
		{"hwheel", 120, WMMouseHWheel, Event{}, false},
		{"move", 0, WMMouseMove, Event{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(RawMouse, tt.data, tt.msg)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Classify = %v, %v; want %v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestClassifyUnknownKind(t *testing.T) {
	if _, ok := Classify(RawKind(9), VKCapital, WMKeyDown); ok {
		t.Fatal("unknown raw kind should not classify")
	}
}

func TestClassifyDeterministic(t *testing.T) {
	for vk := uint32(1); vk <= maxVirtualKey; vk++ {
		down1, _ := Classify(RawKeyboard, vk, WMKeyDown)
		down2, _ := Classify(RawKeyboard, vk, WMKeyDown)
		up, _ := Classify(RawKeyboard, vk, WMKeyUp)
		if down1 != down2 {
			t.Fatalf("vk 0x%02X: classification not deterministic", vk)
		}
		if down1.Identity != up.Identity || down1.Edge != Pressed || up.Edge != Released {
			t.Fatalf("vk 0x%02X: down/up do not pair: %v / %v", vk, down1, up)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := []Identity{CapsLock, Keyboard(VKF1), Mouse(ButtonLeft), Mouse(ButtonX2)}
	for _, id := range valid {
		if err := id.Validate(); err != nil {
			t.Errorf("%v: unexpected error %v", id, err)
		}
	}
	invalid := []Identity{{}, Keyboard(0), Keyboard(0x100), Mouse(0), Mouse(5), {Device: Device(7), Code: 1}}
	for _, id := range invalid {
		if err := id.Validate(); !errors.Is(err, ErrUnsupported) {
			t.Errorf("%v: got %v, want ErrUnsupported", id, err)
		}
	}
}

func TestIdentityString(t *testing.T) {
	tests := []struct {
		id   Identity
		want string
	}{
		{CapsLock, "Keyboard CapsLock"},
		{Keyboard('A'), "Keyboard A"},
		{Keyboard('7'), "Keyboard D7"},
		{Keyboard(VKF1 + 11), "Keyboard F12"},
		{Keyboard(VKNumpad0 + 3), "Keyboard NumPad3"},
		{Keyboard(0x97), "Keyboard 0x97"},
		{Mouse(ButtonRight), "Mouse Right"},
		{Mouse(ButtonX1), "Mouse XButton1"},
		{Identity{}, "None"},
	}
	for _, tt := range tests {
		if got := tt.id.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestDeviceText(t *testing.T) {
	for _, d := range []Device{DeviceNone, DeviceKeyboard, DeviceMouse} {
		b, err := d.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Device
		if err := back.UnmarshalText(b); err != nil {
			t.Fatal(err)
		}
		if back != d {
			t.Errorf("got %v, want %v", back, d)
		}
	}
	var d Device
	if err := d.UnmarshalText([]byte("joystick")); !errors.Is(err, ErrUnsupported) {
		t.Errorf("got %v, want ErrUnsupported", err)
	}
}
