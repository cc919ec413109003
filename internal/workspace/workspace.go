// Package workspace owns the run's scratch directory: the downloaded
// archive, its companion files, and the extracted tree all live there, and
// the whole directory is removed on every exit path.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// Workspace is the exclusively-owned scratch directory for one run.
type Workspace struct {
	Root string
}

// New creates the scratch directory. It prefers the platform's secure
// temp-directory creation and falls back to a PID-suffixed path under the
// shared temp root when that fails.
func New() (*Workspace, error) {
	root, err := os.MkdirTemp("", "squelch-installer-*")
	if err == nil {
		return &Workspace{Root: root}, nil
	}

	root = filepath.Join(os.TempDir(), fmt.Sprintf("squelch-installer.%d", os.Getpid()))
	if mkErr := os.MkdirAll(root, 0700); mkErr != nil {
		return nil, fmt.Errorf("create scratch directory: %w", mkErr)
	}
	return &Workspace{Root: root}, nil
}

// Path joins elem onto the scratch root.
func (w *Workspace) Path(elem ...string) string {
	return filepath.Join(append([]string{w.Root}, elem...)...)
}

// Cleanup removes the scratch directory and everything in it. Safe to call
// more than once.
func (w *Workspace) Cleanup() error {
	if w.Root == "" {
		return nil
	}
	return os.RemoveAll(w.Root)
}
