// Package appdir locates and prepares catalog's per-user files.
package appdir

import (
	"fmt"
	"os"
	"path/filepath"
)

// Name is the directory name used below the OS config root.
const Name = "catalog"

// ConfigDir returns the OS-specific config directory for catalog.
// Linux: $XDG_CONFIG_HOME/catalog  macOS: ~/Library/Application Support/catalog
// Windows: %AppData%/catalog
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("getting user config dir: %w", err)
	}
	return filepath.Join(base, Name), nil
}

// EnsureFile creates path and its parent directories if they do not exist.
// New files get 0600 and new directories 0700. Existing files are left alone.
func EnsureFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return fmt.Errorf("creating config file: %w", err)
	}
	return f.Close()
}
