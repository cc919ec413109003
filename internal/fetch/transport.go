// Package fetch downloads the release archive and its optional companion
// checksum and signature files, and runs best-effort integrity checks.
//
// Downloading goes through a fallback chain of transports: the native HTTP
// client first, then curl, then wget. The chain picks the first transport
// that is available; a failure of the chosen transport is a fatal transfer
// error, not a reason to try the next one. Integrity checks never fail the
// run: the pipeline's hard signal is "archive downloaded and non-empty".
package fetch

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/tessellate-audio/squelch-installer/internal/ui"
)

// ErrNoTransport is returned when no download transport is available.
var ErrNoTransport = errors.New("no download transport available")

// ErrEmptyDownload is returned when a download produced a missing or
// zero-byte file.
var ErrEmptyDownload = errors.New("downloaded file is missing or empty")

// Transport is one way of downloading a URL to a local file.
type Transport interface {
	// Name identifies the transport in progress output.
	Name() string
	// Available reports whether the transport can be used on this host.
	Available() bool
	// Fetch downloads url to dest.
	Fetch(ctx context.Context, url, dest string) error
}

// Download fetches url to dest using the first available transport and
// validates that the result exists and is non-empty.
func Download(ctx context.Context, r *ui.Reporter, transports []Transport, url, dest string) error {
	t := pick(r, transports)
	if t == nil {
		return ErrNoTransport
	}

	r.Info("downloading %s", url)
	r.Detail("using %s", t.Name())

	if err := t.Fetch(ctx, url, dest); err != nil {
		return fmt.Errorf("download with %s: %w", t.Name(), err)
	}

	info, err := os.Stat(dest)
	if err != nil || info.Size() == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyDownload, dest)
	}
	r.Detail("downloaded %d bytes", info.Size())

	return nil
}

// FetchCompanion downloads a sidecar file (checksum or signature) next to
// the archive. Failures are expected — not every release publishes them —
// so the caller treats any error or empty file as "not present".
func FetchCompanion(ctx context.Context, r *ui.Reporter, transports []Transport, url, dest string) bool {
	t := pick(r, transports)
	if t == nil {
		return false
	}
	if err := t.Fetch(ctx, url, dest); err != nil {
		r.Detail("no companion file at %s: %v", url, err)
		return false
	}
	info, err := os.Stat(dest)
	if err != nil || info.Size() == 0 {
		return false
	}
	return true
}

// pick returns the first available transport, or nil.
func pick(r *ui.Reporter, transports []Transport) Transport {
	for _, t := range transports {
		if t.Available() {
			return t
		}
		r.Detail("%s: not available, skipping", t.Name())
	}
	return nil
}
