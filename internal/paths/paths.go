// Package paths resolves the configuration and data directories of unitto.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appName names the per-user directories.
const appName = "unitto"

// Environment variables overriding the directories.
const (
	EnvConfigDir = "UNITTO_CONFIG_DIR"
	EnvDataDir   = "UNITTO_DATA_DIR"
)

// platformDir holds platform lookups that tests override.
var platformDir = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the per-user configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/unitto (fallback ~/.config/unitto)
// macOS:   ~/Library/Application Support/unitto
// Windows: %APPDATA%/unitto
func DefaultConfigDir() (string, error) {
	return platformPath("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the per-user data directory. Outside Linux it is
// the configuration directory.
//
// Linux:   $XDG_DATA_HOME/unitto (fallback ~/.local/share/unitto)
func DefaultDataDir() (string, error) {
	return platformPath("XDG_DATA_HOME", ".local", "share")
}

// platformPath returns $xdgEnv/unitto or ~/<linuxHome...>/unitto on Linux,
// and os.UserConfigDir()/unitto elsewhere.
func platformPath(xdgEnv string, linuxHome ...string) (string, error) {
	if platformDir.goos != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appName), nil
	}
	if xdg := os.Getenv(xdgEnv); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append(append([]string{home}, linuxHome...), appName)...), nil
}

// ResolveConfigDir returns the configuration directory: the flag if set,
// then UNITTO_CONFIG_DIR, then DefaultConfigDir. Paths are made absolute.
func ResolveConfigDir(flag string) (string, error) {
	return firstAbs(DefaultConfigDir, flag, os.Getenv(EnvConfigDir))
}

// ResolveDataDir returns the data directory: the flag if set, then the
// data_dir configuration value, then UNITTO_DATA_DIR, then DefaultDataDir.
func ResolveDataDir(flag, configValue string) (string, error) {
	return firstAbs(DefaultDataDir, flag, configValue, os.Getenv(EnvDataDir))
}

func firstAbs(fallback func() (string, error), candidates ...string) (string, error) {
	for _, c := range candidates {
		if c != "" {
			return filepath.Abs(c)
		}
	}
	return fallback()
}
