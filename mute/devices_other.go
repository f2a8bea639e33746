//go:build !linux

package mute

import (
	"fmt"

	"github.com/gen2brain/malgo"
)

// Devices lists capture devices through miniaudio, marking the system default.
func Devices() ([]Device, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("malgo init: %w", err)
	}
	defer func() {
		_ = ctx.Uninit()
		ctx.Free()
	}()

	infos, err := ctx.Devices(malgo.Capture)
	if err != nil {
		return nil, fmt.Errorf("malgo devices: %w", err)
	}
	devices := make([]Device, 0, len(infos))
	for _, d := range infos {
		devices = append(devices, Device{Name: d.Name(), Default: d.IsDefault != 0})
	}
	return devices, nil
}
