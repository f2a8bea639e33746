package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
)

const (
	diagFileName     = "diagnostics_log.txt"
	activityFileName = "activity_log.txt"

	// Log lines are handed to a ring buffer and written by a poller, so
	// callers on the engine goroutine never wait on the disk.
	bufferLines  = 1024
	pollInterval = 10 * time.Millisecond
)

var (
	diagLog     zerolog.Logger
	diagFile    *os.File
	diagOut     io.WriteCloser
	activityOut io.WriteCloser
	lostLines   atomic.Uint64
	logMu       sync.Mutex
	logReady    bool
	pid         int
	dir         string
)

func ResolveDir(flagPath string) (string, error) {
	// Priority 1: -logpath flag
	if flagPath != "" {
		return absolute(flagPath)
	}

	// Priority 2: PUSHMIC_LOG_PATH environment variable
	if envPath := os.Getenv("PUSHMIC_LOG_PATH"); envPath != "" {
		return absolute(envPath)
	}

	// Priority 3: Default OS-specific location
	return defaultDir()
}

// defaultDir is %LOCALAPPDATA%\pushmic\logs on Windows, ~/Library/Logs/pushmic
// on macOS and $XDG_STATE_HOME/pushmic elsewhere.
func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	switch runtime.GOOS {
	case "windows":
		base := os.Getenv("LOCALAPPDATA")
		if base == "" {
			base = filepath.Join(home, "AppData", "Local")
		}
		return filepath.Join(base, "pushmic", "logs"), nil
	case "darwin":
		return filepath.Join(home, "Library", "Logs", "pushmic"), nil
	default:
		base := os.Getenv("XDG_STATE_HOME")
		if base == "" {
			base = filepath.Join(home, ".local", "state")
		}
		return filepath.Join(base, "pushmic"), nil
	}
}

func absolute(p string) (string, error) {
	if filepath.IsAbs(p) {
		return p, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, p), nil
}

func SetDir(d string) {
	dir = d
}

func Dir() string {
	return dir
}

func EnsureDir() error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	return nil
}

func Init() error {
	logMu.Lock()
	defer logMu.Unlock()

	if err := EnsureDir(); err != nil {
		return err
	}

	pid = os.Getpid()

	var err error

	diagFile, err = os.OpenFile(filepath.Join(dir, diagFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	activityFile, err := os.OpenFile(filepath.Join(dir, activityFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		diagFile.Close()
		return err
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        diagFile,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}
	lost := func(missed int) { lostLines.Add(uint64(missed)) }
	diagOut = diode.NewWriter(consoleWriter, bufferLines, pollInterval, lost)
	activityOut = diode.NewWriter(activityFile, bufferLines, pollInterval, lost)
	diagLog = zerolog.New(diagOut).With().Timestamp().Int("pid", pid).Logger()

	logReady = true
	return nil
}

// Close flushes buffered lines and closes both files.
func Close() {
	logMu.Lock()
	defer logMu.Unlock()
	logReady = false
	if diagOut != nil {
		diagOut.Close()
		diagOut = nil
	}
	if diagFile != nil {
		diagFile.Close()
		diagFile = nil
	}
	// Closing the diode closes the activity file it wraps.
	if activityOut != nil {
		activityOut.Close()
		activityOut = nil
	}
}

// LostLines counts lines dropped because the buffer was full.
func LostLines() uint64 { return lostLines.Load() }

func Info(msg string) {
	if logReady {
		diagLog.Info().Msg(msg)
	}
}

func Error(msg string) {
	if logReady {
		diagLog.Error().Msg(msg)
	}
}

func Errorf(format string, args ...any) {
	if logReady {
		diagLog.Error().Msg(fmt.Sprintf(format, args...))
	}
}

func Warn(msg string) {
	if logReady {
		diagLog.Warn().Msg(msg)
	}
}

func Warnf(format string, args ...any) {
	if logReady {
		diagLog.Warn().Msg(fmt.Sprintf(format, args...))
	}
}

func SessionStart(binding, device string, autoMute, originalMuted bool) {
	if !logReady {
		return
	}
	diagLog.Info().
		Str("binding", binding).
		Str("device", device).
		Bool("auto_mute", autoMute).
		Bool("original_muted", originalMuted).
		Msg("session_start")
}

func SessionEnd(restoredMuted bool, dropped uint64) {
	if !logReady {
		return
	}
	diagLog.Info().
		Bool("restored_muted", restoredMuted).
		Uint64("dropped_events", dropped).
		Uint64("lost_log_lines", lostLines.Load()).
		Msg("session_end")
}

func BindingChanged(binding string) {
	if !logReady {
		return
	}
	diagLog.Info().Str("binding", binding).Msg("binding_changed")
}

func MuteChanged(binding string, muted bool) {
	if !logReady {
		return
	}
	diagLog.Debug().Str("binding", binding).Bool("muted", muted).Msg("mute_changed")
	state := "live"
	if muted {
		state = "muted"
	}
	Activity(state)
}

// AudioError records a failed mute change. The activity log gets a line too
// since the microphone is now in a state the user did not ask for.
func AudioError(wantMuted bool, err error) {
	if !logReady {
		return
	}
	diagLog.Warn().Bool("want_muted", wantMuted).Err(err).Msg("audio_error")
	Activity("error: " + err.Error())
}

// Activity appends a timestamped line to the activity log.
func Activity(text string) {
	logMu.Lock()
	defer logMu.Unlock()
	if !logReady || activityOut == nil {
		return
	}
	line := fmt.Sprintf("%s\t[%d]\t%s\n", time.Now().Format("2006-01-02 15:04:05.000"), pid, text)
	activityOut.Write([]byte(line))
}
