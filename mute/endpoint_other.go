//go:build !windows && !linux

package mute

func Open() (Endpoint, error) {
	return nil, ErrUnsupportedPlatform
}
