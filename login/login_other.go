//go:build !windows && !linux && !darwin

package login

import "errors"

var errUnsupported = errors.New("launch at login is not supported on this platform")

func Enabled() bool  { return false }
func Enable() error  { return errUnsupported }
func Disable() error { return errUnsupported }
