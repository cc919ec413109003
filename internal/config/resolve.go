package config

import (
	"errors"
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/tessellate-audio/squelch-installer/internal/ui"
)

// ErrNoInstallDir is returned when no install directory is configured and
// interactive prompting is not allowed.
var ErrNoInstallDir = errors.New("no install directory configured")

// Conventional plugin directories offered in the interactive menu.
var suggestedDirs = []string{
	"~/.vst3",
	"~/.clap",
	"~/.local/lib/vst3",
}

const customDirChoice = "Somewhere else..."

// Resolver produces a validated, existing install directory before any
// network activity happens.
type Resolver struct {
	Prompter ui.Prompter
	Reporter *ui.Reporter
	// Getenv allows tests to substitute the process environment.
	Getenv func(string) string
}

// ResolveInstallDir determines the target plugin directory.
//
// Priority: SQUELCH_INSTALL_DIR, then the Lua config, then an interactive
// prompt. In quiet mode a missing or nonexistent directory is a fatal
// configuration error; interactively the user may correct the path or have
// it created. On success the returned path exists and is a directory.
func (r *Resolver) ResolveInstallDir(settings *Settings) (string, error) {
	getenv := r.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	dir := getenv(EnvInstallDir)
	if dir == "" && settings != nil {
		dir = settings.InstallDir
	}

	if dir == "" {
		if r.Reporter.Quiet() || r.Prompter == nil {
			return "", fmt.Errorf("%w: set %s", ErrNoInstallDir, EnvInstallDir)
		}
		var err error
		dir, err = r.promptForDir()
		if err != nil {
			return "", fmt.Errorf("prompt for install directory: %w", err)
		}
	}

	expanded, err := homedir.Expand(dir)
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", dir, err)
	}
	dir = expanded

	info, statErr := os.Stat(dir)
	if statErr == nil {
		if !info.IsDir() {
			return "", fmt.Errorf("install path %s exists but is not a directory", dir)
		}
		return dir, nil
	}
	if !os.IsNotExist(statErr) {
		return "", fmt.Errorf("check install directory: %w", statErr)
	}

	if r.Reporter.Quiet() || r.Prompter == nil {
		return "", fmt.Errorf("install directory %s does not exist", dir)
	}

	// Give the user one chance to correct a typo before offering to
	// create the directory.
	corrected, err := r.Prompter.Input(
		fmt.Sprintf("%s does not exist. Enter another path, or leave empty to keep it", dir), dir)
	if err != nil {
		return "", fmt.Errorf("prompt for corrected path: %w", err)
	}
	if corrected != "" {
		if corrected, err = homedir.Expand(corrected); err != nil {
			return "", fmt.Errorf("expand %s: %w", corrected, err)
		}
		dir = corrected
	}

	info, statErr = os.Stat(dir)
	if statErr == nil {
		if !info.IsDir() {
			return "", fmt.Errorf("install path %s exists but is not a directory", dir)
		}
		return dir, nil
	}

	create, err := r.Prompter.Confirm(fmt.Sprintf("Create %s?", dir))
	if err != nil {
		return "", fmt.Errorf("prompt to create directory: %w", err)
	}
	if !create {
		return "", fmt.Errorf("install directory %s does not exist", dir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create install directory: %w", err)
	}
	r.Reporter.Info("created %s", dir)

	return dir, nil
}

// promptForDir presents the menu of conventional plugin directories.
func (r *Resolver) promptForDir() (string, error) {
	options := append(append([]string{}, suggestedDirs...), customDirChoice)
	choice, err := r.Prompter.Select("Where should Squelch be installed?", options)
	if err != nil {
		return "", err
	}
	if choice != customDirChoice {
		return choice, nil
	}

	dir, err := r.Prompter.Input("Install directory", "~/.vst3")
	if err != nil {
		return "", err
	}
	if dir == "" {
		return "", fmt.Errorf("%w: empty path entered", ErrNoInstallDir)
	}
	return dir, nil
}
