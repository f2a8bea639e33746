//go:build gui

package gui

import (
	"errors"
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"

	"pushmic/config"
	"pushmic/tray"
	"pushmic/trigger"
)

func TestViewInitialState(t *testing.T) {
	test.NewTempApp(t)
	cfg := config.Default()
	cfg.SoundCues = true
	v := newView(cfg, Callbacks{})

	if got := v.trigLabel.Text; got != "Keyboard CapsLock" {
		t.Errorf("trigger label = %q", got)
	}
	if !v.notifications.Checked || !v.autoMute.Checked || !v.soundCues.Checked || v.minimized.Checked {
		t.Error("checkboxes do not match config")
	}
}

func TestViewCaptureButton(t *testing.T) {
	test.NewTempApp(t)
	calls := 0
	v := newView(config.Default(), Callbacks{Capture: func() { calls++ }})
	test.Tap(v.capture)
	if calls != 1 {
		t.Fatalf("capture called %d times", calls)
	}

	v.setCapturing(true)
	if !v.capture.Disabled() {
		t.Error("capture button enabled while capturing")
	}
	v.setBinding(trigger.Mouse(trigger.ButtonX1).String())
	v.setCapturing(false)
	if v.capture.Disabled() {
		t.Error("capture button disabled after capture")
	}
	if got := v.trigLabel.Text; got != "Mouse X1" {
		t.Errorf("trigger label = %q", got)
	}
}

func TestViewSettingsCallback(t *testing.T) {
	test.NewTempApp(t)
	var got []config.Config
	v := newView(config.Default(), Callbacks{Settings: func(c config.Config) { got = append(got, c) }})

	test.Tap(v.soundCues)
	if len(got) != 1 || !got[0].SoundCues {
		t.Fatalf("settings = %+v", got)
	}
	test.Tap(v.notifications)
	if len(got) != 2 || got[1].ShowNotifications || !got[1].SoundCues {
		t.Fatalf("settings = %+v", got)
	}
}

func TestViewMuted(t *testing.T) {
	test.NewTempApp(t)
	v := newView(config.Default(), Callbacks{})
	v.setMuted(false)
	if v.micLabel.Text != "Live" || v.dot.FillColor != tray.LiveColor {
		t.Errorf("live: label %q color %v", v.micLabel.Text, v.dot.FillColor)
	}
	v.setMuted(true)
	if v.micLabel.Text != "Muted" || v.dot.FillColor != tray.MutedColor {
		t.Errorf("muted: label %q color %v", v.micLabel.Text, v.dot.FillColor)
	}
}

func TestViewLoginFailureReverts(t *testing.T) {
	test.NewTempApp(t)
	var calls []bool
	v := newView(config.Default(), Callbacks{Login: func(on bool) error {
		calls = append(calls, on)
		return errors.New("denied")
	}})
	v.setLogin(false)
	if len(calls) != 0 {
		t.Fatal("setLogin called back")
	}

	test.Tap(v.login)
	if len(calls) != 1 || !calls[0] {
		t.Fatalf("calls = %v", calls)
	}
	if v.login.Checked {
		t.Error("checkbox not reverted after failure")
	}
	if v.errLabel.Text != "denied" {
		t.Errorf("error label = %q", v.errLabel.Text)
	}
}

func TestStatusThemeMatchesTray(t *testing.T) {
	th := newStatusTheme()
	if got := th.Color(theme.ColorNameSuccess, theme.VariantLight); got != tray.LiveColor {
		t.Errorf("success = %v, want %v", got, tray.LiveColor)
	}
	if got := th.Color(theme.ColorNameError, theme.VariantLight); got != tray.MutedColor {
		t.Errorf("error = %v, want %v", got, tray.MutedColor)
	}
	if th.Size(theme.SizeNamePadding) <= 0 {
		t.Error("embedded default sizes missing")
	}
}
