package userdata

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gameshelf-labs/gameshelf/internal/branding"
)

// ErrNoConfigRoot is returned when the platform has no per-user config root
// (no user profile, no $HOME/$XDG_CONFIG_HOME, no %AppData%).
var ErrNoConfigRoot = errors.New("per-user config root is unavailable")

// Permission constants.
const (
	DirPermNormal  os.FileMode = 0755
	FilePermNormal os.FileMode = 0644
)

// ConfigRoot returns the platform's per-user config root, e.g.
// ~/.config on Linux, ~/Library/Application Support on macOS and
// %AppData% on Windows.
func ConfigRoot() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoConfigRoot, err)
	}
	return dir, nil
}

// GetRegistryDir returns the registry directory. It checks the
// GAMESHELF_REGISTRY environment variable first, then the configured
// override, then falls back to <config root>/gameshelf.
func GetRegistryDir(override string) (string, error) {
	if v := os.Getenv(branding.EnvVar("REGISTRY")); v != "" {
		return filepath.Clean(v), nil
	}
	if override != "" {
		return filepath.Clean(override), nil
	}
	root, err := ConfigRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, branding.CLIName()), nil
}

// GetHomeRoot returns ~/.gameshelf, which holds config.yaml and the log file.
func GetHomeRoot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir()), nil
}

// GetLogPath returns the default debug log location inside the home root.
func GetLogPath() (string, error) {
	root, err := GetHomeRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, branding.CLIName()+".log"), nil
}
