//go:build !windows

package hook

type unsupported struct{}

// New returns a Manager whose Start always fails: hooks exist only on Windows.
func New() Manager { return unsupported{} }

func (unsupported) Start(Callback) error {
	return &InstallError{Hook: "keyboard", Err: ErrUnsupportedPlatform}
}

func (unsupported) Stop() {}
