// Package release discovers the download URL of the newest Linux release
// archive of the Squelch plugin.
//
// Discovery is a fallback chain: a structured query against the GitHub
// releases API first, then a raw scan of the public releases page. Whichever
// strategy succeeds first wins; the hosting service's own listing order is
// trusted as newest-first and no version comparison is attempted.
package release

import (
	"context"
	"errors"
	"fmt"

	"github.com/tessellate-audio/squelch-installer/internal/ui"
)

// ErrNoAsset is returned when no strategy could discover a matching asset.
var ErrNoAsset = errors.New("no matching Linux release asset found")

// Strategy is one way of discovering the asset download URL.
type Strategy interface {
	// Name identifies the strategy in progress output.
	Name() string
	// Available reports whether the strategy can be attempted at all.
	Available() bool
	// Locate returns the download URL of the newest matching asset.
	Locate(ctx context.Context) (string, error)
}

// Locate tries each strategy in order and returns the first URL found.
// A strategy failure is logged and the next candidate is tried; only an
// exhausted chain is an error.
func Locate(ctx context.Context, r *ui.Reporter, strategies ...Strategy) (string, error) {
	for _, s := range strategies {
		if !s.Available() {
			r.Detail("%s: not available, skipping", s.Name())
			continue
		}
		url, err := s.Locate(ctx)
		if err != nil {
			r.Detail("%s: %v", s.Name(), err)
			continue
		}
		r.Info("found release asset via %s", s.Name())
		return url, nil
	}
	return "", fmt.Errorf("%w: all strategies exhausted", ErrNoAsset)
}
