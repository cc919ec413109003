package extract

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
)

// ExecExtractor unpacks archives by invoking an external tool. Availability
// is probed with exec.LookPath; success is the tool's own exit status.
type ExecExtractor struct {
	tool    string
	verbose bool
	// args builds the command line for one extraction.
	args func(archive, dest string) []string
	// lookPath allows tests to fake tool presence.
	lookPath func(string) (string, error)
}

// NewTarCommand creates an extractor backed by the system tar. Modern GNU
// tar autodetects the compression, so one -xf invocation covers .tar.gz
// and friends.
func NewTarCommand(verbose bool) *ExecExtractor {
	return &ExecExtractor{
		tool:    "tar",
		verbose: verbose,
		args: func(archive, dest string) []string {
			return []string{"tar", "-xf", archive, "-C", dest}
		},
		lookPath: exec.LookPath,
	}
}

// NewBsdtarCommand creates an extractor backed by bsdtar, which also reads
// zip archives.
func NewBsdtarCommand(verbose bool) *ExecExtractor {
	return &ExecExtractor{
		tool:    "bsdtar",
		verbose: verbose,
		args: func(archive, dest string) []string {
			return []string{"bsdtar", "-xf", archive, "-C", dest}
		},
		lookPath: exec.LookPath,
	}
}

// NewSevenZipCommand creates the last-resort extractor backed by 7z, whose
// generic unpack mode handles nearly any archive format.
func NewSevenZipCommand(verbose bool) *ExecExtractor {
	return &ExecExtractor{
		tool:    "7z",
		verbose: verbose,
		args: func(archive, dest string) []string {
			return []string{"7z", "x", "-y", "-o" + dest, archive}
		},
		lookPath: exec.LookPath,
	}
}

// Name identifies the extractor in progress output.
func (e *ExecExtractor) Name() string {
	return e.tool
}

// Available reports whether the tool is on the search path.
func (e *ExecExtractor) Available() bool {
	_, err := e.lookPath(e.tool)
	return err == nil
}

// Extract runs the tool. Suppressed output still carries the tool's exit
// status; captured stderr is attached to the error for diagnostics.
func (e *ExecExtractor) Extract(archive, dest string) error {
	if err := os.MkdirAll(dest, 0755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	argv := e.args(archive, dest)
	cmd := exec.Command(argv[0], argv[1:]...)

	var stderr bytes.Buffer
	if e.verbose {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	} else {
		cmd.Stderr = &stderr
	}

	if err := cmd.Run(); err != nil {
		if msg := bytes.TrimSpace(stderr.Bytes()); len(msg) > 0 {
			return fmt.Errorf("%s: %w: %s", e.tool, err, msg)
		}
		return fmt.Errorf("%s: %w", e.tool, err)
	}
	return nil
}
