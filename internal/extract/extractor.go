// Package extract unpacks the downloaded release archive into the scratch
// workspace using the first working candidate from an ordered list: the
// native tar.gz and zip readers first, then external tar, bsdtar, and
// finally 7z. A candidate that is present but fails is logged and skipped;
// only an exhausted chain fails the run.
package extract

import (
	"errors"
	"fmt"

	"github.com/tessellate-audio/squelch-installer/internal/ui"
)

// ErrAllFailed is returned when every extraction candidate failed.
var ErrAllFailed = errors.New("all extraction candidates failed")

// Extractor is one way of unpacking an archive into a directory.
type Extractor interface {
	// Name identifies the extractor in progress output.
	Name() string
	// Available reports whether the extractor can be attempted.
	Available() bool
	// Extract unpacks archive into dest.
	Extract(archive, dest string) error
}

// DefaultChain returns the candidate list in preference order.
func DefaultChain(verbose bool) []Extractor {
	return []Extractor{
		NewTarGzExtractor(),
		NewZipExtractor(),
		NewTarCommand(verbose),
		NewBsdtarCommand(verbose),
		NewSevenZipCommand(verbose),
	}
}

// Run tries each candidate in order until one succeeds.
func Run(r *ui.Reporter, candidates []Extractor, archive, dest string) error {
	for _, e := range candidates {
		if !e.Available() {
			r.Detail("%s: not available, skipping", e.Name())
			continue
		}
		if err := e.Extract(archive, dest); err != nil {
			r.Detail("%s: %v", e.Name(), err)
			continue
		}
		r.Info("extracted with %s", e.Name())
		return nil
	}
	return fmt.Errorf("%w: %s", ErrAllFailed, archive)
}
