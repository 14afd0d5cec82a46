// Package store owns mineboard's local state: the config file, saved TUI
// state, and the SQLite audit log of admin actions. Everything lives under
// one dot-directory (default ~/.mineboard).
package store

import (
	"os"
	"path/filepath"
	"strings"
)

type Store struct {
	// Dir is the state directory. Empty means DefaultDir().
	Dir string
}

func DefaultDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".mineboard")
	}
	return ".mineboard"
}

func (s Store) dir() string {
	if strings.TrimSpace(s.Dir) != "" {
		return filepath.Clean(s.Dir)
	}
	return DefaultDir()
}

// Ensure creates the state directory if missing.
func (s Store) Ensure() error {
	return os.MkdirAll(s.dir(), 0o755)
}
