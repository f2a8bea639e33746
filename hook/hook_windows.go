//go:build windows

package hook

import (
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/windows"

	"pushmic/trigger"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procGetMessageW         = user32.NewProc("GetMessageW")
	procPeekMessageW        = user32.NewProc("PeekMessageW")
	procPostThreadMessageW  = user32.NewProc("PostThreadMessageW")
)

const (
	whKeyboardLL = 13
	whMouseLL    = 14
	hcAction     = 0
	wmQuit       = 0x0012
	wmUser       = 0x0400
	pmNoRemove   = 0x0000
)

type kbdllHookStruct struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type msllHookStruct struct {
	Pt          struct{ X, Y int32 }
	MouseData   uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type winMSG struct {
	Hwnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

// Hook procedures carry no context, so the installed manager is global.
// NewCallback slots are never freed; create them once.
var (
	active        atomic.Pointer[winManager]
	keyboardThunk = windows.NewCallback(keyboardProc)
	mouseThunk    = windows.NewCallback(mouseProc)
)

type winManager struct {
	cb       Callback
	threadID uint32

	// done is the running pump's exit signal; nil while stopped. Stop takes
	// it, so each Start is matched by at most one Stop.
	mu   sync.Mutex
	done chan struct{}
}

// New returns a Manager backed by WH_KEYBOARD_LL and WH_MOUSE_LL. Only one
// may be started at a time.
func New() Manager {
	return &winManager{}
}

func (m *winManager) Start(cb Callback) error {
	if !active.CompareAndSwap(nil, m) {
		return ErrAlreadyStarted
	}
	m.cb = cb
	done := make(chan struct{})
	ready := make(chan error, 1)
	go m.pump(ready, done)
	if err := <-ready; err != nil {
		<-done
		return err
	}
	m.mu.Lock()
	m.done = done
	m.mu.Unlock()
	return nil
}

// pump installs the hooks and runs the message loop that the OS uses to call
// them. Both hooks are removed on the same thread before it exits.
func (m *winManager) pump(ready chan<- error, done chan<- struct{}) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(done)
	defer active.CompareAndSwap(m, nil)

	m.threadID = windows.GetCurrentThreadId()

	// Force creation of the thread message queue so Stop can post WM_QUIT.
	var msg winMSG
	procPeekMessageW.Call(uintptr(unsafe.Pointer(&msg)), 0, wmUser, wmUser, pmNoRemove)

	var mod windows.Handle
	if err := windows.GetModuleHandleEx(0, nil, &mod); err != nil {
		ready <- &InstallError{Hook: "keyboard", Err: err}
		return
	}

	kbd, _, err := procSetWindowsHookExW.Call(whKeyboardLL, keyboardThunk, uintptr(mod), 0)
	if kbd == 0 {
		ready <- &InstallError{Hook: "keyboard", Err: err}
		return
	}
	mouse, _, err := procSetWindowsHookExW.Call(whMouseLL, mouseThunk, uintptr(mod), 0)
	if mouse == 0 {
		procUnhookWindowsHookEx.Call(kbd)
		ready <- &InstallError{Hook: "mouse", Err: err}
		return
	}
	ready <- nil

	for {
		r, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0)
		if int32(r) <= 0 {
			break
		}
	}

	procUnhookWindowsHookEx.Call(mouse)
	procUnhookWindowsHookEx.Call(kbd)
}

func (m *winManager) Stop() {
	m.mu.Lock()
	done := m.done
	m.done = nil
	m.mu.Unlock()
	if done == nil {
		return
	}
	procPostThreadMessageW.Call(uintptr(m.threadID), wmQuit, 0, 0)
	// From inside a callback the loop exits once the callback returns.
	if windows.GetCurrentThreadId() != m.threadID {
		<-done
	}
}

func keyboardProc(nCode, wParam, lParam uintptr) uintptr {
	if int32(nCode) == hcAction {
		if m := active.Load(); m != nil {
			kb := (*kbdllHookStruct)(unsafe.Pointer(lParam))
			deliver(m.cb, trigger.RawKeyboard, kb.VkCode, uint32(wParam))
		}
	}
	r, _, _ := procCallNextHookEx.Call(0, nCode, wParam, lParam)
	return r
}

func mouseProc(nCode, wParam, lParam uintptr) uintptr {
	if int32(nCode) == hcAction {
		if m := active.Load(); m != nil {
			ms := (*msllHookStruct)(unsafe.Pointer(lParam))
			deliver(m.cb, trigger.RawMouse, ms.MouseData>>16, uint32(wParam))
		}
	}
	r, _, _ := procCallNextHookEx.Call(0, nCode, wParam, lParam)
	return r
}
