//go:build integration

package test_test

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var testBinary string

func TestMain(m *testing.M) {
	testBinary = os.Getenv("PUSHMIC_TEST_BIN")
	if testBinary == "" {
		fmt.Fprintln(os.Stderr, "PUSHMIC_TEST_BIN not set; build with: go build -o pushmic . && PUSHMIC_TEST_BIN=$PWD/pushmic go test -tags integration ./test")
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func cmds(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}

type run struct {
	stdout    string
	logDir    string
	configDir string
}

func runPushmic(t *testing.T, configDir, stdin string, env ...string) run {
	t.Helper()
	r := run{logDir: t.TempDir(), configDir: configDir}
	if r.configDir == "" {
		r.configDir = t.TempDir()
	}
	args := []string{
		"-logpath", r.logDir,
		"-config", filepath.Join(r.configDir, "config.json"),
		"-test",
	}
	cmd := exec.Command(testBinary, args...)
	cmd.Stdin = strings.NewReader(stdin)
	cmd.Env = append(os.Environ(), env...)

	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("pushmic exited with error: %v\noutput: %s", err, out)
	}
	r.stdout = string(out)
	return r
}

func readLog(t *testing.T, logDir, filename string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(logDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return ""
		}
		t.Fatalf("failed to read %s: %v", filename, err)
	}
	return string(data)
}

func lines(s string) []string {
	return strings.Split(strings.TrimSpace(s), "\n")
}

func TestPushToTalk(t *testing.T) {
	r := runPushmic(t, "", cmds(
		"PRESS keyboard 20", "WAIT",
		"RELEASE keyboard 20", "WAIT",
		"QUIT"))

	want := []string{"BINDING Keyboard CapsLock", "MUTED", "LIVE", "MUTED", "RESTORED muted=false"}
	if got := lines(r.stdout); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("stdout = %q, want %q", got, want)
	}

	activity := readLog(t, r.logDir, "activity_log.txt")
	if n := strings.Count(activity, "\tlive\n"); n != 1 {
		t.Errorf("live entries = %d, activity:\n%s", n, activity)
	}
	diag := readLog(t, r.logDir, "diagnostics_log.txt")
	for _, want := range []string{"session_start", "session_end"} {
		if !strings.Contains(diag, want) {
			t.Errorf("diagnostics missing %q", want)
		}
	}
}

func TestRestoresMutedMicrophone(t *testing.T) {
	r := runPushmic(t, "", cmds("PRESS keyboard 20", "WAIT", "QUIT"), "PUSHMIC_TEST_MUTED=1")
	if !strings.Contains(r.stdout, "RESTORED muted=true") {
		t.Fatalf("stdout:\n%s", r.stdout)
	}
}

func TestCapturePersists(t *testing.T) {
	r := runPushmic(t, "", cmds(
		"CAPTURE",
		"RELEASE keyboard 65",
		"PRESS mouse 4", "WAIT",
		"RELEASE mouse 4",
		"QUIT"))
	if !strings.Contains(r.stdout, "BINDING Mouse X2") {
		t.Fatalf("stdout:\n%s", r.stdout)
	}

	data, err := os.ReadFile(filepath.Join(r.configDir, "config.json"))
	if err != nil {
		t.Fatal(err)
	}
	var cfg struct {
		Device string `json:"device"`
		Code   int    `json:"code"`
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Device != "mouse" || cfg.Code != 4 {
		t.Errorf("saved = %+v", cfg)
	}

	// A second session starts with the captured binding.
	r2 := runPushmic(t, r.configDir, cmds("PRESS mouse 4", "WAIT", "QUIT"))
	if got := lines(r2.stdout); len(got) < 3 || got[0] != "BINDING Mouse X2" || got[2] != "LIVE" {
		t.Errorf("second session stdout = %q", got)
	}
}

func TestMalformedConfigFallsBack(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"device": "joystick"`), 0o644); err != nil {
		t.Fatal(err)
	}
	r := runPushmic(t, dir, cmds("QUIT"))
	if !strings.HasPrefix(r.stdout, "BINDING Keyboard CapsLock\n") {
		t.Fatalf("stdout:\n%s", r.stdout)
	}
	if !strings.Contains(readLog(t, r.logDir, "diagnostics_log.txt"), "malformed config") {
		t.Error("fallback not logged")
	}
}
