package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// ConfigDir returns the XDG-compliant config directory for bslice
// Typically ~/.config/bslice/ on Linux
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, "bslice")
}

// ConfigPath returns the full path to the config file
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json5")
}

// DataDir returns the XDG-compliant data directory for bslice
// Typically ~/.local/share/bslice/ on Linux (keyring file backend, lock file)
func DataDir() string {
	return filepath.Join(xdg.DataHome, "bslice")
}
