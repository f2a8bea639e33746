package tray

import (
	"fyne.io/systray"
)

var (
	ready    = make(chan struct{})
	mCapture *systray.MenuItem
	mNotify  *systray.MenuItem
	mLogin   *systray.MenuItem
	mQuit    *systray.MenuItem
)

// Run shows the tray icon and blocks until Quit. On macOS it must be called
// from the main goroutine.
func Run() {
	systray.Run(onReady, nil)
}

// Quit removes the icon and makes Run return.
func Quit() {
	systray.Quit()
}

func onReady() {
	s := snapshot()
	mCapture = systray.AddMenuItem(s.captureTitle(), "Press the key or mouse button to use for push-to-talk")
	mNotify = systray.AddMenuItemCheckbox("Notifications", "Show desktop notifications", s.notifications)
	mLogin = systray.AddMenuItemCheckbox("Launch at login", "Start pushmic when you log in", s.loginOn)
	systray.AddSeparator()
	mQuit = systray.AddMenuItem("Quit", "Restore the microphone and exit")
	close(ready)
	refresh()

	go func() {
		for {
			select {
			case <-mCapture.ClickedCh:
				fire(&captureFn)
			case <-mNotify.ClickedCh:
				on := !mNotify.Checked()
				SetNotifications(on)
				mu.Lock()
				fn := notifyFn
				mu.Unlock()
				if fn != nil {
					fn(on)
				}
			case <-mLogin.ClickedCh:
				toggleLogin()
			case <-mQuit.ClickedCh:
				fire(&quitFn)
				return
			}
		}
	}()
}

func refresh() {
	select {
	case <-ready:
	default:
		return
	}
	s := snapshot()
	if s.muted {
		systray.SetIcon(iconMuted)
	} else {
		systray.SetIcon(iconLive)
	}
	systray.SetTooltip(s.tooltip())
	mCapture.SetTitle(s.captureTitle())
	if s.capturing {
		mCapture.Disable()
	} else {
		mCapture.Enable()
	}
	setChecked(mNotify, s.notifications)
	setChecked(mLogin, s.loginOn)
}

func setChecked(item *systray.MenuItem, on bool) {
	if on {
		item.Check()
	} else {
		item.Uncheck()
	}
}
