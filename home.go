package nanobot

import (
	"os"
	"path/filepath"
)

// Home returns the nanoswarm home directory.
// It defaults to ~/.nanoswarm but can be overridden with the NANOSWARM_HOME
// environment variable.
func Home() string {
	if v := os.Getenv("NANOSWARM_HOME"); v != "" {
		return v
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".nanoswarm")
}

// DefaultDBPath returns the default SQLite database path (~/.nanoswarm/nanoswarm.db).
func DefaultDBPath() string {
	return filepath.Join(Home(), "nanoswarm.db")
}

// EnsureHome creates the nanoswarm home directory if it doesn't exist.
func EnsureHome() error {
	return os.MkdirAll(Home(), 0o755)
}
