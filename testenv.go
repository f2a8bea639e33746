package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"pushmic/beep"
	"pushmic/config"
	"pushmic/hook"
	"pushmic/log"
	"pushmic/mute"
	"pushmic/notify"
	"pushmic/trigger"
)

// testSink prints engine events as lines on stdout.
type testSink struct{ out io.Writer }

func (s testSink) BindingChanged(id trigger.Identity) { fmt.Fprintf(s.out, "BINDING %s\n", id) }
func (s testSink) CaptureChanged(c bool)              { fmt.Fprintf(s.out, "CAPTURE %v\n", c) }
func (s testSink) AudioError(err error)               { fmt.Fprintf(s.out, "ERROR %v\n", err) }
func (s testSink) MuteChanged(muted bool) {
	if muted {
		fmt.Fprintln(s.out, "MUTED")
		return
	}
	fmt.Fprintln(s.out, "LIVE")
}

// parseIdentity reads "<device> <code>", code in decimal or 0x hex.
func parseIdentity(args []string) (trigger.Identity, error) {
	if len(args) != 2 {
		return trigger.Identity{}, fmt.Errorf("want <device> <code>, got %q", strings.Join(args, " "))
	}
	var d trigger.Device
	if err := d.UnmarshalText([]byte(strings.ToLower(args[0]))); err != nil {
		return trigger.Identity{}, err
	}
	code, err := strconv.ParseInt(args[1], 0, 32)
	if err != nil {
		return trigger.Identity{}, fmt.Errorf("bad code %q: %w", args[1], err)
	}
	return trigger.Identity{Device: d, Code: int(code)}, nil
}

// drive executes test-mode commands from r until QUIT or EOF.
func drive(a *app, fk *hook.Fake, r io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch cmd := strings.ToUpper(fields[0]); cmd {
		case "PRESS", "RELEASE":
			id, err := parseIdentity(fields[1:])
			if err != nil {
				fmt.Fprintf(out, "BAD %v\n", err)
				continue
			}
			if cmd == "PRESS" {
				fk.Press(id)
			} else {
				fk.Release(id)
			}
		case "CAPTURE":
			a.capture()
		case "CANCEL":
			a.cancelCapture()
		case "WAIT":
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := a.engine.Barrier(ctx); err != nil {
				fmt.Fprintf(out, "BAD wait: %v\n", err)
			}
			cancel()
		case "SLEEP":
			if len(fields) > 1 {
				if ms, err := strconv.Atoi(fields[1]); err == nil {
					time.Sleep(time.Duration(ms) * time.Millisecond)
				}
			}
		case "QUIT":
			return
		default:
			fmt.Fprintf(out, "BAD unknown command %q\n", fields[0])
		}
	}
}

// runTestMode runs the full engine headless against fake hooks and a fake
// microphone whose initial state comes from PUSHMIC_TEST_MUTED.
func runTestMode(o options, path string, cfg config.Config) {
	ep := mute.NewFake(os.Getenv("PUSHMIC_TEST_MUTED") == "1")
	fk := hook.NewFake()

	a, err := newApp(o, path, cfg, ep, fk)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	notify.Enable(false)
	beep.Enable(false)
	a.sink.setExtra(testSink{out: os.Stdout})
	a.sink.announce(a.engine.Binding(), a.engine.Muted())
	log.Info("test mode")

	go func() {
		drive(a, fk, os.Stdin, os.Stdout)
		a.quit()
	}()
	err = a.serve()

	muted, _ := ep.GetMute()
	fmt.Printf("RESTORED muted=%v\n", muted)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
