package doctor

import (
	"time"

	"github.com/micmonay/keybd_event"
)

// synthesize presses and releases Esc through the OS input pipeline.
func synthesize() error {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return err
	}
	kb.SetKeys(keybd_event.VK_ESC)
	if err := kb.Press(); err != nil {
		return err
	}
	time.Sleep(20 * time.Millisecond)
	return kb.Release()
}
