package release

import (
	"fmt"
	"regexp"
)

// defaultAssetPattern matches the Linux archive among a release's assets.
// Upstream names them like squelch-1.4.2-linux-x86_64.tar.gz, but the
// pattern stays loose on purpose so packaging tweaks don't break discovery.
const defaultAssetPattern = `(?i)linux.*\.(tar\.gz|tgz|zip)$`

// CompilePattern compiles the asset-name pattern, falling back to the
// default when the override from the Lua config is empty.
func CompilePattern(override string) (*regexp.Regexp, error) {
	pattern := override
	if pattern == "" {
		pattern = defaultAssetPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile asset pattern %q: %w", pattern, err)
	}
	return re, nil
}
