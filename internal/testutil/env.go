// Package testutil provides utilities for testing the installer in
// isolation.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	homedir "github.com/mitchellh/go-homedir"
)

// SetupTestEnv points HOME at a per-test temp directory so tests never read
// the developer's real ~/.config/squelch-installer or plugin directories.
// Returns the fake home path; cleanup is handled by t.TempDir.
func SetupTestEnv(t *testing.T) string {
	t.Helper()

	home := filepath.Join(t.TempDir(), "home")
	if err := os.MkdirAll(home, 0755); err != nil {
		t.Fatalf("create fake home: %v", err)
	}
	t.Setenv("HOME", home)
	t.Setenv("SQUELCH_INSTALL_DIR", "")

	// go-homedir caches the detected home directory across calls.
	homedir.Reset()
	t.Cleanup(homedir.Reset)

	return home
}
