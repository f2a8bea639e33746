//go:build windows

package shutdown

import (
	"os"
	"syscall"
)

// Signals are the signals that end a session. Console close and logoff
// arrive as SIGTERM.
var Signals = []os.Signal{os.Interrupt, syscall.SIGTERM}
