//go:build gui

package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"pushmic/tray"
)

// statusTheme is fyne's dark theme with the tray's live and muted colors as
// success and error, so the window dot and the tray icon agree.
type statusTheme struct {
	fyne.Theme
}

func newStatusTheme() fyne.Theme {
	return statusTheme{Theme: theme.DefaultTheme()}
}

func (t statusTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return color.RGBA{18, 18, 18, 255}
	case theme.ColorNameForeground:
		return color.RGBA{200, 200, 200, 255}
	case theme.ColorNameSuccess:
		return tray.LiveColor
	case theme.ColorNameError:
		return tray.MutedColor
	}
	return t.Theme.Color(name, theme.VariantDark)
}
