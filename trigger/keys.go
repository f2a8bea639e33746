package trigger

import "fmt"

// Windows virtual-key codes with a readable name. Letters and digits share
// their ASCII code and are handled in KeyName.
const (
	VKBack     = 0x08
	VKTab      = 0x09
	VKReturn   = 0x0D
	VKShift    = 0x10
	VKControl  = 0x11
	VKMenu     = 0x12
	VKPause    = 0x13
	VKCapital  = 0x14
	VKEscape   = 0x1B
	VKSpace    = 0x20
	VKPrior    = 0x21
	VKNext     = 0x22
	VKEnd      = 0x23
	VKHome     = 0x24
	VKLeft     = 0x25
	VKUp       = 0x26
	VKRight    = 0x27
	VKDown     = 0x28
	VKSnapshot = 0x2C
	VKInsert   = 0x2D
	VKDelete   = 0x2E
	VKLWin     = 0x5B
	VKRWin     = 0x5C
	VKApps     = 0x5D
	VKNumpad0  = 0x60
	VKF1       = 0x70
	VKF24      = 0x87
	VKNumLock  = 0x90
	VKScroll   = 0x91
	VKLShift   = 0xA0
	VKRShift   = 0xA1
	VKLControl = 0xA2
	VKRControl = 0xA3
	VKLMenu    = 0xA4
	VKRMenu    = 0xA5
	VKOEM3     = 0xC0
)

var keyNames = map[int]string{
	VKBack:     "Back",
	VKTab:      "Tab",
	VKReturn:   "Enter",
	VKShift:    "Shift",
	VKControl:  "Control",
	VKMenu:     "Alt",
	VKPause:    "Pause",
	VKCapital:  "CapsLock",
	VKEscape:   "Escape",
	VKSpace:    "Space",
	VKPrior:    "PageUp",
	VKNext:     "PageDown",
	VKEnd:      "End",
	VKHome:     "Home",
	VKLeft:     "Left",
	VKUp:       "Up",
	VKRight:    "Right",
	VKDown:     "Down",
	VKSnapshot: "PrintScreen",
	VKInsert:   "Insert",
	VKDelete:   "Delete",
	VKLWin:     "LWin",
	VKRWin:     "RWin",
	VKApps:     "Apps",
	VKNumLock:  "NumLock",
	VKScroll:   "ScrollLock",
	VKLShift:   "LShift",
	VKRShift:   "RShift",
	VKLControl: "LControl",
	VKRControl: "RControl",
	VKLMenu:    "LAlt",
	VKRMenu:    "RAlt",
	VKOEM3:     "Backtick",
}

// KeyName renders a virtual-key code the way Windows Forms names Keys values.
func KeyName(vk int) string {
	if name, ok := keyNames[vk]; ok {
		return name
	}
	switch {
	case vk >= '0' && vk <= '9':
		return "D" + string(rune(vk))
	case vk >= 'A' && vk <= 'Z':
		return string(rune(vk))
	case vk >= VKNumpad0 && vk <= VKNumpad0+9:
		return fmt.Sprintf("NumPad%d", vk-VKNumpad0)
	case vk >= VKF1 && vk <= VKF24:
		return fmt.Sprintf("F%d", vk-VKF1+1)
	}
	return fmt.Sprintf("0x%02X", vk)
}
