// Package install copies the extracted plugin files into the target
// directory. The two plugin formats are independent deliverables: finding
// and installing only one of them still counts as success.
package install

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tessellate-audio/squelch-installer/internal/ui"
)

// PluginFiles are the file names searched for inside the extracted tree,
// one per plugin format.
var PluginFiles = []string{"Squelch.vst3", "Squelch.clap"}

// ErrNothingInstalled is returned when none of the expected plugin files
// were found in the extracted archive.
var ErrNothingInstalled = errors.New("no plugin files found in archive")

// Install searches extractedDir recursively for each name in names and
// copies the first match per name into targetDir, overwriting any existing
// file. It returns the number of files installed; zero is an error.
func Install(r *ui.Reporter, extractedDir, targetDir string, names []string) (int, error) {
	installed := 0

	for _, name := range names {
		source, err := findFile(extractedDir, name)
		if err != nil {
			return installed, fmt.Errorf("search for %s: %w", name, err)
		}
		if source == "" {
			r.Info("%s not present in this release", name)
			continue
		}

		dest := filepath.Join(targetDir, name)
		if err := copyFile(source, dest); err != nil {
			return installed, fmt.Errorf("install %s: %w", name, err)
		}
		r.Info("installed %s", dest)
		installed++
	}

	if installed == 0 {
		return 0, ErrNothingInstalled
	}
	return installed, nil
}

// findFile walks root looking for a regular file with the exact base name.
// The first match wins when duplicates exist.
func findFile(root, name string) (string, error) {
	var found string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != name {
			return nil
		}
		found = path
		return fs.SkipAll
	})
	if err != nil {
		return "", err
	}
	return found, nil
}

// copyFile copies src to dest, preserving the source file's mode.
func copyFile(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer srcFile.Close()

	destFile, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	if _, err := io.Copy(destFile, srcFile); err != nil {
		destFile.Close()
		return fmt.Errorf("copy contents: %w", err)
	}

	return destFile.Close()
}
