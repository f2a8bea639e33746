package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	"golang.org/x/term"

	"pushmic/beep"
	"pushmic/config"
	"pushmic/doctor"
	"pushmic/hook"
	"pushmic/hotkey"
	"pushmic/log"
	"pushmic/login"
	"pushmic/mute"
	"pushmic/notify"
	"pushmic/ptt"
	"pushmic/shutdown"
	"pushmic/tray"
	"pushmic/trigger"
)

var version = "dev"

type options struct {
	configPath string
	logPath    string
	tui        bool
	gui        bool
	captureKey bool
	doctor     bool
	test       bool
	version    bool
	capture    bool
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.configPath, "config", "", "config file path (default: OS config dir, or PUSHMIC_CONFIG)")
	flag.StringVar(&o.logPath, "logpath", "", "log directory path (default: OS-specific location, use ./ for current dir)")
	flag.BoolVar(&o.tui, "tui", true, "Run with terminal UI (falls back to tray when stdout is not a terminal)")
	flag.BoolVar(&o.gui, "gui", false, "Run with settings window (requires -tags gui)")
	flag.BoolVar(&o.captureKey, "capturekey", false, "Register "+hotkey.Shortcut+" to capture a new trigger")
	flag.BoolVar(&o.doctor, "doctor", false, "Run system diagnostics and exit")
	flag.BoolVar(&o.test, "test", false, "Test mode (headless, stdin-driven)")
	flag.BoolVar(&o.version, "version", false, "Print version and exit")
	flag.BoolVar(&o.capture, "capture", false, "Capture a new trigger at startup")
	flag.Parse()
	return o
}

var crashOnce sync.Once

// initCrashLog routes fatal runtime output to crash_log.txt in the log dir.
func initCrashLog() {
	crashOnce.Do(func() {
		if err := log.EnsureDir(); err != nil {
			return
		}
		crashPath := filepath.Join(log.Dir(), "crash_log.txt")
		f, err := os.OpenFile(crashPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return
		}
		fmt.Fprintf(f, "\n=== Session %s [pid=%d] ===\n", time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
		debug.SetCrashOutput(f, debug.CrashOptions{})
	})
}

// app is everything run() sets up. UI front ends drive it through post*
// methods; they never touch the engine directly.
type app struct {
	opts   options
	store  *config.Store
	engine *ptt.Engine
	hooks  hook.Manager
	guard  *shutdown.Guard
	sink   *appSink

	newHotkey func() hotkey.Hotkey
	// crash is set by a recovered engine panic before the engine goroutine
	// exits; guard.Run waits for that exit, so it is safe to read after Done.
	crash error
}

func (a *app) capture()        { a.engine.PostCapture() }
func (a *app) cancelCapture()  { a.engine.PostCancel() }
func (a *app) dropped() uint64 { return a.engine.Dropped() }
func (a *app) quit()           { a.guard.Quit() }
func (a *app) setNotifications(on bool) {
	notify.Enable(on)
	tray.SetNotifications(on)
	a.store.Update(func(c *config.Config) { c.ShowNotifications = on })
}

// applySettings copies the option fields of cfg into the stored config. The
// binding is owned by the engine and left alone.
func (a *app) applySettings(cfg config.Config) {
	notify.Enable(cfg.ShowNotifications)
	beep.Enable(cfg.SoundCues)
	a.store.Update(func(c *config.Config) {
		c.StartMinimized = cfg.StartMinimized
		c.ShowNotifications = cfg.ShowNotifications
		c.AutoMuteOnStart = cfg.AutoMuteOnStart
		c.SoundCues = cfg.SoundCues
	})
}

func setLogin(on bool) error {
	var err error
	if on {
		err = login.Enable()
	} else {
		err = login.Disable()
	}
	if err != nil {
		log.Warnf("launch at login: %v", err)
		return err
	}
	log.Info(fmt.Sprintf("launch at login: %v", on))
	return nil
}

func setupLogging(o options) {
	logPath, err := log.ResolveDir(o.logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve log directory: %v\n", err)
		os.Exit(1)
	}
	log.SetDir(logPath)
	if err := log.EnsureDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
	}
	initCrashLog()
	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	}
}

func loadConfig(o options) (string, config.Config) {
	path, err := config.ResolvePath(o.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve config path: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.Load(path)
	if err != nil {
		// Unusable config falls back to defaults silently.
		log.Warnf("config: %v", err)
	}
	return path, cfg
}

// newApp opens the audio endpoint, builds the engine and installs the hooks.
// Front-end sinks (TUI, GUI) are attached to the returned app's sink.
func newApp(o options, path string, cfg config.Config, ep mute.Endpoint, hooks hook.Manager) (*app, error) {
	a := &app{
		opts:  o,
		store: config.NewStore(path, cfg),
		hooks: hooks,
		guard: shutdown.NewGuard(),

		newHotkey: hotkey.New,
	}
	notify.Enable(cfg.ShowNotifications)
	beep.Enable(cfg.SoundCues)
	tray.SetNotifications(cfg.ShowNotifications)

	ctrl := mute.NewController(ep)
	a.sink = newAppSink(a.store, cfg.Binding())
	a.engine = ptt.New(ctrl, cfg.Binding(), ptt.Options{AutoMuteOnStart: cfg.AutoMuteOnStart}, a.sink)

	// Registered first so it runs last.
	a.guard.Defer(func() {
		a.store.Flush()
		log.SessionEnd(ctrl.Muted(), a.engine.Dropped())
		log.Close()
	})
	a.guard.Defer(func() { ep.Close() })
	a.guard.Defer(func() {
		if err := a.engine.Shutdown(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not restore microphone: %v\n", err)
			return
		}
		a.sink.restored(ctrl.Muted())
	})

	log.SessionStart(cfg.Binding().String(), ep.Name(), cfg.AutoMuteOnStart, ctrl.Original())
	if err := a.engine.Start(); err != nil {
		log.Warnf("initial mute: %v", err)
	}
	if o.capture {
		a.engine.RequestCapture()
	}

	if err := hooks.Start(func(ev trigger.Event) { a.engine.Post(ev) }); err != nil {
		a.guard.Run()
		return nil, err
	}
	return a, nil
}

// serve runs the engine until a quit is requested, then cleans up. A panic
// in the engine or a sink ends the session through the same cleanup and is
// returned as an error.
func (a *app) serve() error {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				a.crash = fmt.Errorf("engine panic: %v", r)
				log.Errorf("%v\n%s", a.crash, debug.Stack())
				a.guard.Quit()
			}
		}()
		a.engine.Run(ctx)
	}()
	a.guard.Defer(func() {
		cancel()
		<-done
	})
	// Hooks stop before Run is cancelled.
	a.guard.Defer(a.hooks.Stop)
	a.guard.Watch()

	if a.opts.captureKey {
		hk := a.newHotkey()
		if err := hk.Register(); err != nil {
			log.Warnf("capture shortcut: %v", err)
			fmt.Fprintf(os.Stderr, "Warning: could not register %s: %v\n", hotkey.Shortcut, err)
		} else {
			hotkey.Watch(ctx, hk, a.capture)
			a.guard.Defer(hk.Unregister)
		}
	}

	<-a.guard.Requested()
	a.guard.Run()
	return a.crash
}

func run() {
	o := parseFlags()

	if o.version {
		fmt.Printf("pushmic %s\n", version)
		os.Exit(0)
	}

	setupLogging(o)
	path, cfg := loadConfig(o)

	if o.doctor {
		code := doctor.Run(path)
		log.Close()
		os.Exit(code)
	}
	if o.test {
		runTestMode(o, path, cfg)
		return
	}

	ep, err := mute.Open()
	if err != nil {
		log.Errorf("audio endpoint: %v", err)
		log.Close()
		fmt.Fprintf(os.Stderr, "Error opening capture device: %v\n", err)
		os.Exit(1)
	}

	a, err := newApp(o, path, cfg, ep, hook.New())
	if err != nil {
		var ie *hook.InstallError
		if errors.As(err, &ie) {
			log.Errorf("hook install: %v", err)
		}
		log.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch {
	case o.gui:
		err = runGUI(a)
	case o.tui && term.IsTerminal(int(os.Stdout.Fd())):
		err = runTUI(a)
	default:
		err = runTray(a)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(a *app) error {
	p := newTUIProgram(a)
	a.sink.setTUI(p)
	a.guard.Defer(p.Quit)
	go func() {
		if _, err := p.Run(); err != nil {
			log.Errorf("TUI error: %v", err)
		}
		a.quit()
	}()
	a.sink.announce(a.engine.Binding(), a.engine.Muted())
	return a.serve()
}

func runTray(a *app) error {
	tray.OnCapture(a.capture)
	tray.OnNotifications(a.setNotifications)
	tray.OnQuit(a.quit)
	tray.SetLogin(login.Enabled())
	tray.OnLogin(setLogin)
	a.sink.setTray(true)
	a.sink.announce(a.engine.Binding(), a.engine.Muted())
	startTray()
	a.guard.Defer(tray.Quit)
	return a.serve()
}
