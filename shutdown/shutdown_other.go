//go:build !windows

package shutdown

import (
	"os"
	"syscall"
)

// Signals are the signals that end a session. A closed terminal sends SIGHUP.
var Signals = []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGHUP}
