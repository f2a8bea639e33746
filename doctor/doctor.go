package doctor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"pushmic/config"
	"pushmic/hook"
	"pushmic/hotkey"
	"pushmic/mute"
	"pushmic/shutdown"
	"pushmic/trigger"
)

// Env holds everything the checks touch so tests can swap in fakes.
type Env struct {
	Out        io.Writer
	ConfigPath string
	Open       func() (mute.Endpoint, error)
	Devices    func() ([]mute.Device, error)
	NewHook    func() hook.Manager
	// Synthesize injects one key press and release into the OS input stream.
	Synthesize func() error
	// Timeout bounds each wait for input.
	Timeout time.Duration
	// Shortcut checks the optional capture shortcut; nil skips it.
	Shortcut func() (string, error)
	// Interrupt aborts a wait for input when closed.
	Interrupt <-chan struct{}
}

func DefaultEnv(configPath string) Env {
	return Env{
		Out:        os.Stdout,
		ConfigPath: configPath,
		Open:       mute.Open,
		Devices:    mute.Devices,
		NewHook:    hook.New,
		Synthesize: synthesize,
		Shortcut:   hotkey.Diagnose,
		Timeout:    10 * time.Second,
	}
}

// Run executes interactive diagnostic checks and returns an exit code (0=all pass, 1=any fail).
func Run(configPath string) int {
	resetTerminal()
	ctx, stop := signal.NotifyContext(context.Background(), shutdown.Signals...)
	defer stop()
	env := DefaultEnv(configPath)
	env.Interrupt = ctx.Done()
	return RunEnv(env)
}

func RunEnv(env Env) int {
	out := env.Out
	fmt.Fprintln(out, "pushmic doctor - system diagnostics")
	fmt.Fprintln(out, "===================================")

	allPass := true

	cfg, cfgOK := checkConfig(env)
	if !cfgOK {
		allPass = false
	}
	if !checkAudio(env) {
		allPass = false
	}
	if !checkHook(env, cfg.Binding()) {
		allPass = false
	}

	fmt.Fprintln(out)
	if allPass {
		fmt.Fprintln(out, "All checks passed!")
		return 0
	}
	fmt.Fprintln(out, "Some checks failed. See details above.")
	return 1
}

func checkConfig(env Env) (config.Config, bool) {
	out := env.Out
	fmt.Fprintln(out)
	fmt.Fprintln(out, "[1/3] Configuration")
	fmt.Fprintf(out, "  path: %s\n", env.ConfigPath)

	cfg, err := config.Load(env.ConfigPath)
	switch {
	case errors.Is(err, config.ErrMalformed):
		fmt.Fprintf(out, "  FAIL: %v (defaults will be used)\n", err)
		return cfg, false
	case err != nil:
		fmt.Fprintf(out, "  FAIL: %v\n", err)
		return cfg, false
	}
	fmt.Fprintf(out, "  PASS: trigger %s\n", cfg.Binding())
	return cfg, true
}

// checkAudio opens the default capture endpoint and reads its mute state. It
// never changes the state.
func checkAudio(env Env) bool {
	out := env.Out
	fmt.Fprintln(out)
	fmt.Fprintln(out, "[2/3] Audio endpoint")

	if env.Devices != nil {
		if devs, err := env.Devices(); err != nil {
			fmt.Fprintf(out, "  warning: could not list capture devices: %v\n", err)
		} else {
			for _, d := range devs {
				marker := " "
				if d.Default {
					marker = "*"
				}
				fmt.Fprintf(out, "  %s %s\n", marker, d.Name)
			}
		}
	}

	ep, err := env.Open()
	if err != nil {
		fmt.Fprintf(out, "  FAIL: could not open default capture device: %v\n", err)
		return false
	}
	defer ep.Close()

	muted, err := ep.GetMute()
	if err != nil {
		fmt.Fprintf(out, "  FAIL: could not read mute state of %s: %v\n", ep.Name(), err)
		return false
	}
	state := "live"
	if muted {
		state = "muted"
	}
	fmt.Fprintf(out, "  PASS: %s (%s)\n", ep.Name(), state)
	return true
}

// checkHook installs the input hooks, verifies a synthesized key press is
// observed, then waits for the user to press the trigger.
func checkHook(env Env, binding trigger.Identity) bool {
	out := env.Out
	fmt.Fprintln(out)
	fmt.Fprintln(out, "[3/3] Input hooks")

	events := make(chan trigger.Event, 64)
	mgr := env.NewHook()
	err := mgr.Start(func(ev trigger.Event) {
		select {
		case events <- ev:
		default:
		}
	})
	if err != nil {
		fmt.Fprintf(out, "  FAIL: %v\n", err)
		return false
	}
	defer mgr.Stop()

	if env.Synthesize != nil {
		if err := env.Synthesize(); err != nil {
			fmt.Fprintf(out, "  warning: could not synthesize a key press: %v\n", err)
		} else if err := waitFor(env, events, func(ev trigger.Event) bool {
			return ev.Identity.Device == trigger.DeviceKeyboard && ev.Edge == trigger.Pressed
		}); err != nil {
			fmt.Fprintf(out, "  FAIL: synthesized key press was not observed: %v\n", err)
			return false
		} else {
			fmt.Fprintln(out, "  PASS: keyboard hook delivers events")
		}
	}

	drain(events)
	fmt.Fprintf(out, "  Press and release %s...\n", binding)
	if err := waitFor(env, events, func(ev trigger.Event) bool {
		return ev.Identity == binding && ev.Edge == trigger.Released
	}); err != nil {
		fmt.Fprintf(out, "  FAIL: waiting for trigger: %v\n", err)
		return false
	}
	fmt.Fprintln(out, "  PASS: trigger detected")

	if env.Shortcut != nil {
		// -capturekey is optional, so this never fails the check.
		if info, err := env.Shortcut(); err != nil {
			fmt.Fprintf(out, "  note: capture shortcut unavailable: %v\n", err)
		} else {
			fmt.Fprintf(out, "  note: capture shortcut: %s\n", info)
		}
	}
	return true
}

var (
	errTimeout     = errors.New("timed out")
	errInterrupted = errors.New("interrupted")
)

func waitFor(env Env, ch <-chan trigger.Event, match func(trigger.Event) bool) error {
	deadline := time.After(env.Timeout)
	for {
		select {
		case ev := <-ch:
			if match(ev) {
				return nil
			}
		case <-deadline:
			return errTimeout
		case <-env.Interrupt:
			return errInterrupted
		}
	}
}

func drain(ch <-chan trigger.Event) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}
