package trigger

// RawKind tells Classify which hook produced the raw event.
type RawKind int

const (
	RawKeyboard RawKind = iota + 1
	RawMouse
)

// Window messages delivered to WH_KEYBOARD_LL and WH_MOUSE_LL procedures.
const (
	WMKeyDown     = 0x0100
	WMKeyUp       = 0x0101
	WMSysKeyDown  = 0x0104
	WMSysKeyUp    = 0x0105
	WMMouseMove   = 0x0200
	WMLButtonDown = 0x0201
	WMLButtonUp   = 0x0202
	WMRButtonDown = 0x0204
	WMRButtonUp   = 0x0205
	WMMButtonDown = 0x0207
	WMMButtonUp   = 0x0208
	WMMouseWheel  = 0x020A
	WMXButtonDown = 0x020B
	WMXButtonUp   = 0x020C
	WMMouseHWheel = 0x020E
	XButton1      = 0x0001
	XButton2      = 0x0002
)

// Classify maps a raw hook event to an Event. For keyboard events code is the
// virtual-key code; for mouse events it is the high word of mouseData, which
// only matters for X buttons. ok is false for anything that is not a
// supported trigger edge.
func Classify(kind RawKind, code uint32, msg uint32) (ev Event, ok bool) {
	switch kind {
	case RawKeyboard:
		return classifyKey(code, msg)
	case RawMouse:
		return classifyMouse(code, msg)
	}
	return Event{}, false
}

func classifyKey(vk uint32, msg uint32) (Event, bool) {
	if vk == 0 || vk > maxVirtualKey {
		return Event{}, false
	}
	id := Keyboard(int(vk))
	switch msg {
	case WMKeyDown, WMSysKeyDown:
		return Event{Identity: id, Edge: Pressed}, true
	case WMKeyUp, WMSysKeyUp:
		return Event{Identity: id, Edge: Released}, true
	}
	return Event{}, false
}

func classifyMouse(data uint32, msg uint32) (Event, bool) {
	var button int
	var edge Edge
	switch msg {
	case WMLButtonDown:
		button, edge = ButtonLeft, Pressed
	case WMLButtonUp:
		button, edge = ButtonLeft, Released
	case WMRButtonDown:
		button, edge = ButtonRight, Pressed
	case WMRButtonUp:
		button, edge = ButtonRight, Released
	case WMXButtonDown, WMXButtonUp:
		switch data {
		case XButton1:
			button = ButtonX1
		case XButton2:
			button = ButtonX2
		default:
			return Event{}, false
		}
		edge = Pressed
		if msg == WMXButtonUp {
			edge = Released
		}
	default:
		return Event{}, false
	}
	return Event{Identity: Mouse(button), Edge: edge}, true
}
