//go:build gui

package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"pushmic/config"
	"pushmic/tray"
)

// Callbacks are invoked on the fyne goroutine.
type Callbacks struct {
	Capture  func()
	Settings func(config.Config)
	Quit     func()
	Login    func(bool) error
}

// view is the settings form: trigger, mic state, capture button, options.
type view struct {
	cfg config.Config
	cb  Callbacks

	dot       *canvas.Circle
	micLabel  *widget.Label
	trigLabel *widget.Label
	errLabel  *widget.Label
	capture   *widget.Button

	minimized     *widget.Check
	notifications *widget.Check
	autoMute      *widget.Check
	soundCues     *widget.Check
	login         *widget.Check

	binding   string
	capturing bool
}

func newView(cfg config.Config, cb Callbacks) *view {
	v := &view{cfg: cfg, cb: cb, binding: cfg.Binding().String()}

	v.dot = canvas.NewCircle(tray.MutedColor)
	v.dot.Resize(fyne.NewSize(14, 14))
	v.micLabel = widget.NewLabel("Muted")
	v.trigLabel = widget.NewLabel("")
	v.errLabel = widget.NewLabel("")
	v.errLabel.Wrapping = fyne.TextWrapWord
	v.errLabel.Importance = widget.DangerImportance

	v.capture = widget.NewButton("Capture new trigger", func() {
		if v.cb.Capture != nil {
			v.cb.Capture()
		}
	})

	v.minimized = widget.NewCheck("Start minimized", func(on bool) {
		v.update(func(c *config.Config) { c.StartMinimized = on })
	})
	v.notifications = widget.NewCheck("Show notifications", func(on bool) {
		v.update(func(c *config.Config) { c.ShowNotifications = on })
	})
	v.autoMute = widget.NewCheck("Mute on start", func(on bool) {
		v.update(func(c *config.Config) { c.AutoMuteOnStart = on })
	})
	v.soundCues = widget.NewCheck("Sound cues", func(on bool) {
		v.update(func(c *config.Config) { c.SoundCues = on })
	})
	v.login = widget.NewCheck("Launch at login", nil)
	v.minimized.SetChecked(cfg.StartMinimized)
	v.notifications.SetChecked(cfg.ShowNotifications)
	v.autoMute.SetChecked(cfg.AutoMuteOnStart)
	v.soundCues.SetChecked(cfg.SoundCues)

	v.login.OnChanged = v.toggleLogin

	v.refreshTrigger()
	return v
}

// setLogin reflects the OS state without calling back.
func (v *view) setLogin(on bool) {
	fn := v.login.OnChanged
	v.login.OnChanged = nil
	v.login.SetChecked(on)
	v.login.OnChanged = fn
}

func (v *view) toggleLogin(on bool) {
	if v.cb.Login == nil {
		return
	}
	if err := v.cb.Login(on); err != nil {
		v.setError(err.Error())
		v.setLogin(!on)
	}
}

func (v *view) content() fyne.CanvasObject {
	dot := container.NewGridWrap(fyne.NewSize(14, 14), v.dot)
	return container.NewVBox(
		container.NewHBox(widget.NewLabel("Trigger:"), v.trigLabel),
		container.NewHBox(widget.NewLabel("Microphone:"), dot, v.micLabel),
		v.capture,
		widget.NewSeparator(),
		v.minimized,
		v.notifications,
		v.autoMute,
		v.soundCues,
		v.login,
		v.errLabel,
	)
}

// update applies fn and reports the new settings unless nothing changed.
func (v *view) update(fn func(*config.Config)) {
	before := v.cfg
	fn(&v.cfg)
	if v.cfg == before || v.cb.Settings == nil {
		return
	}
	v.cb.Settings(v.cfg)
}

func (v *view) setBinding(name string) {
	v.binding = name
	v.errLabel.SetText("")
	v.refreshTrigger()
}

func (v *view) setCapturing(c bool) {
	v.capturing = c
	v.refreshTrigger()
}

func (v *view) refreshTrigger() {
	if v.capturing {
		v.trigLabel.SetText("press a key or mouse button…")
		v.capture.Disable()
		return
	}
	v.trigLabel.SetText(v.binding)
	v.capture.Enable()
}

func (v *view) setMuted(m bool) {
	if m {
		v.dot.FillColor = tray.MutedColor
		v.micLabel.SetText("Muted")
	} else {
		v.dot.FillColor = tray.LiveColor
		v.micLabel.SetText("Live")
	}
	v.dot.Refresh()
}

func (v *view) setError(msg string) {
	v.errLabel.SetText(msg)
}
