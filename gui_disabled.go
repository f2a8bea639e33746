//go:build !gui

package main

import (
	"fmt"
	"os"
)

func runGUI(a *app) error {
	fmt.Fprintln(os.Stderr, "pushmic: built without GUI support (rebuild with -tags gui), using tray")
	return runTray(a)
}
