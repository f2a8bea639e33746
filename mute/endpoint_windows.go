//go:build windows

package mute

import (
	"fmt"
	"runtime"

	"github.com/go-ole/go-ole"
	"github.com/moutend/go-wca/pkg/wca"
)

const sFalse = 0x00000001

// wcaEndpoint owns the IAudioEndpointVolume of the default capture device.
// COM objects live in a single-threaded apartment, so every call runs on the
// goroutine that created them, locked to its OS thread.
type wcaEndpoint struct {
	calls chan func()
	done  chan struct{}
	name  string
	aev   *wca.IAudioEndpointVolume
}

// Open resolves the default capture endpoint once. The same physical device
// is controlled until Close, even if the system default changes.
func Open() (Endpoint, error) {
	e := &wcaEndpoint{
		calls: make(chan func()),
		done:  make(chan struct{}),
	}
	ready := make(chan error, 1)
	go e.loop(ready)
	if err := <-ready; err != nil {
		return nil, err
	}
	return e, nil
}

func (e *wcaEndpoint) loop(ready chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		if oleErr, ok := err.(*ole.OleError); !ok || oleErr.Code() != sFalse {
			ready <- fmt.Errorf("CoInitializeEx: %w", err)
			return
		}
	}
	defer ole.CoUninitialize()

	aev, name, err := openDefaultCapture()
	if err != nil {
		ready <- err
		return
	}
	defer aev.Release()
	e.aev = aev
	e.name = name
	ready <- nil

	for {
		select {
		case fn := <-e.calls:
			fn()
		case <-e.done:
			return
		}
	}
}

func openDefaultCapture() (*wca.IAudioEndpointVolume, string, error) {
	var mmde *wca.IMMDeviceEnumerator
	if err := wca.CoCreateInstance(wca.CLSID_MMDeviceEnumerator, 0, wca.CLSCTX_ALL, wca.IID_IMMDeviceEnumerator, &mmde); err != nil {
		return nil, "", fmt.Errorf("creating device enumerator: %w", err)
	}
	defer mmde.Release()

	var mmd *wca.IMMDevice
	if err := mmde.GetDefaultAudioEndpoint(wca.ECapture, wca.EMultimedia, &mmd); err != nil {
		return nil, "", fmt.Errorf("no default capture device: %w", err)
	}
	defer mmd.Release()

	var aev *wca.IAudioEndpointVolume
	if err := mmd.Activate(wca.IID_IAudioEndpointVolume, wca.CLSCTX_ALL, nil, &aev); err != nil {
		return nil, "", fmt.Errorf("activating endpoint volume: %w", err)
	}
	return aev, friendlyName(mmd), nil
}

func friendlyName(mmd *wca.IMMDevice) string {
	const fallback = "default capture device"
	var ps *wca.IPropertyStore
	if err := mmd.OpenPropertyStore(wca.STGM_READ, &ps); err != nil {
		return fallback
	}
	defer ps.Release()
	var pv wca.PROPVARIANT
	if err := ps.GetValue(&wca.PKEY_Device_FriendlyName, &pv); err != nil {
		return fallback
	}
	if s := pv.String(); s != "" {
		return s
	}
	return fallback
}

func (e *wcaEndpoint) do(fn func() error) error {
	errc := make(chan error, 1)
	select {
	case e.calls <- func() { errc <- fn() }:
	case <-e.done:
		return ErrClosed
	}
	return <-errc
}

func (e *wcaEndpoint) GetMute() (bool, error) {
	var muted bool
	err := e.do(func() error { return e.aev.GetMute(&muted) })
	return muted, err
}

func (e *wcaEndpoint) SetMute(muted bool) error {
	return e.do(func() error { return e.aev.SetMute(muted, nil) })
}

func (e *wcaEndpoint) Name() string { return e.name }

func (e *wcaEndpoint) Close() error {
	select {
	case <-e.done:
	default:
		close(e.done)
	}
	return nil
}
