package platform

import (
	"fmt"
	"strings"
)

// normalizeArch converts GOARCH values to normalized architecture names.
// Squelch publishes Linux builds for amd64 and arm64 only.
func normalizeArch(arch string) (string, error) {
	switch arch {
	case "amd64", "x86_64":
		return "amd64", nil
	case "arm64", "aarch64":
		return "arm64", nil
	default:
		return "", fmt.Errorf("unsupported architecture: %s (Squelch ships amd64 and arm64 builds only)", arch)
	}
}

// normalizePlatform converts platform strings to lowercase for consistency.
func normalizePlatform(platform string) string {
	return strings.ToLower(strings.TrimSpace(platform))
}
