//go:build linux

package main

import "pushmic/tray"

func main() {
	run()
}

func startTray() {
	go tray.Run()
}
