// Package login registers pushmic to start when the user logs in.
package login

// Args are passed to the executable when it is started at login. The tray
// front end is the only one that makes sense without a terminal.
var Args = []string{"-tui=false"}
