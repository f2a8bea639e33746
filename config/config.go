// Package config persists the trigger binding and user settings.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"pushmic/trigger"
)

const fileName = "config.json"

// ErrMalformed marks a config file that exists but could not be used.
var ErrMalformed = errors.New("malformed config")

type Config struct {
	Device            trigger.Device `json:"device"`
	Code              int            `json:"code"`
	StartMinimized    bool           `json:"start_minimized"`
	ShowNotifications bool           `json:"show_notifications"`
	AutoMuteOnStart   bool           `json:"auto_mute_on_start"`
	SoundCues         bool           `json:"sound_cues"`
}

func Default() Config {
	return Config{
		Device:            trigger.CapsLock.Device,
		Code:              trigger.CapsLock.Code,
		ShowNotifications: true,
		AutoMuteOnStart:   true,
	}
}

func (c Config) Binding() trigger.Identity {
	return trigger.Identity{Device: c.Device, Code: c.Code}
}

func (c *Config) SetBinding(id trigger.Identity) {
	c.Device = id.Device
	c.Code = id.Code
}

// ResolvePath picks the config file: -config flag, then PUSHMIC_CONFIG, then
// the user config directory.
func ResolvePath(flagPath string) (string, error) {
	if flagPath != "" {
		return filepath.Abs(flagPath)
	}
	if envPath := os.Getenv("PUSHMIC_CONFIG"); envPath != "" {
		return filepath.Abs(envPath)
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(dir, "pushmic", fileName), nil
}

// Load reads path. A missing file yields defaults and no error. A malformed
// file, or one with an unusable binding, yields defaults and an error
// wrapping ErrMalformed that callers are expected to log and ignore.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := cfg.Binding().Validate(); err != nil {
		return Default(), fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return cfg, nil
}

// Save writes the config atomically, creating the directory if needed.
func (c Config) Save(path string) error {
	if err := c.Binding().Validate(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, fileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp config: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}
