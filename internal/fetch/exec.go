package fetch

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
)

// ExecTransport downloads by invoking an external tool such as curl or
// wget. Availability is probed with exec.LookPath; success is the tool's
// own exit status.
type ExecTransport struct {
	name    string
	verbose bool
	// args builds the command line for one download.
	args func(url, dest string, verbose bool) []string
	// lookPath allows tests to fake tool presence.
	lookPath func(string) (string, error)
}

// NewCurlTransport creates a transport backed by curl.
func NewCurlTransport(verbose bool) *ExecTransport {
	return &ExecTransport{
		name:    "curl",
		verbose: verbose,
		args: func(url, dest string, verbose bool) []string {
			args := []string{"curl", "-fL", "-o", dest}
			if !verbose {
				args = append(args, "-sS")
			}
			return append(args, url)
		},
		lookPath: exec.LookPath,
	}
}

// NewWgetTransport creates a transport backed by wget.
func NewWgetTransport(verbose bool) *ExecTransport {
	return &ExecTransport{
		name:    "wget",
		verbose: verbose,
		args: func(url, dest string, verbose bool) []string {
			args := []string{"wget", "-O", dest}
			if !verbose {
				args = append(args, "-q")
			}
			return append(args, url)
		},
		lookPath: exec.LookPath,
	}
}

// Name identifies the transport in progress output.
func (t *ExecTransport) Name() string {
	return t.name
}

// Available reports whether the tool is on the search path.
func (t *ExecTransport) Available() bool {
	_, err := t.lookPath(t.name)
	return err == nil
}

// Fetch runs the tool. In verbose mode the tool's own progress output goes
// straight to the terminal; otherwise stderr is captured so a failure still
// carries the tool's diagnostics.
func (t *ExecTransport) Fetch(ctx context.Context, url, dest string) error {
	argv := t.args(url, dest, t.verbose)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	var stderr bytes.Buffer
	if t.verbose {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	} else {
		cmd.Stderr = &stderr
	}

	if err := cmd.Run(); err != nil {
		if msg := bytes.TrimSpace(stderr.Bytes()); len(msg) > 0 {
			return fmt.Errorf("%s: %w: %s", t.name, err, msg)
		}
		return fmt.Errorf("%s: %w", t.name, err)
	}
	return nil
}
