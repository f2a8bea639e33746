package hotkey

// Linux input-event-codes for the capture shortcut.
const (
	codeLCtrl  = 29
	codeRCtrl  = 97
	codeLShift = 42
	codeRShift = 54
	codeF12    = 88
)

// chord tracks modifier state across key events and reports the edges of
// Ctrl+Shift+F12. A released modifier does not end a chord already down;
// only releasing F12 does.
type chord struct {
	ctrl, shift, down bool
}

// feed applies one key event (value 1 press, 0 release, 2 repeat) and
// reports whether it started or ended the chord.
func (c *chord) feed(code uint16, value int32) (start, end bool) {
	pressed := value == 1
	released := value == 0
	switch code {
	case codeLCtrl, codeRCtrl:
		c.ctrl = pressed || (!released && c.ctrl)
	case codeLShift, codeRShift:
		c.shift = pressed || (!released && c.shift)
	case codeF12:
		if pressed && !c.down && c.ctrl && c.shift {
			c.down = true
			return true, false
		}
		if released && c.down {
			c.down = false
			return false, true
		}
	}
	return false, false
}
