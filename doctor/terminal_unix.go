//go:build !windows

package doctor

import "os/exec"

// resetTerminal undoes raw mode left behind by a TUI session that crashed.
func resetTerminal() {
	exec.Command("stty", "sane").Run()
}
