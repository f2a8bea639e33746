//go:build !linux

package main

import (
	"os"
	"runtime"

	"golang.design/x/hotkey/mainthread"

	"pushmic/tray"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	// The settings window needs the main thread for itself.
	for _, arg := range os.Args[1:] {
		if arg == "-gui" || arg == "--gui" {
			run()
			return
		}
	}
	mainthread.Init(run)
}

// startTray runs the tray loop on the main thread, which macOS requires.
func startTray() {
	go mainthread.Call(tray.Run)
}
