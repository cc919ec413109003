package fetch

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CheckSHA256 verifies archivePath against the checksum file downloaded
// from <asset-url>.sha256. The file holds either a bare hex digest or the
// usual "digest  filename" sha256sum format, possibly with extra lines.
//
// Returns an error when the checksum file is unusable, and ok=false when a
// valid expected digest does not match. Both outcomes are warnings for the
// caller, never fatal.
func CheckSHA256(archivePath, checksumPath string) (bool, error) {
	actual, err := hashFile(archivePath)
	if err != nil {
		return false, fmt.Errorf("calculate checksum: %w", err)
	}

	expected, err := findChecksum(checksumPath, filepath.Base(archivePath))
	if err != nil {
		return false, err
	}

	return strings.EqualFold(actual, expected), nil
}

// hashFile calculates the SHA256 checksum of a file.
func hashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// findChecksum extracts the expected digest for filename from a checksum
// file. A single-field line is treated as a bare digest for the archive.
func findChecksum(checksumPath, filename string) (string, error) {
	file, err := os.Open(checksumPath)
	if err != nil {
		return "", fmt.Errorf("open checksum file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		switch {
		case len(parts) == 0:
			continue
		case len(parts) == 1:
			if isHexDigest(parts[0]) {
				return parts[0], nil
			}
		default:
			// sha256sum format: "digest  filename", where filename may
			// carry a path or a leading "*" (binary mode marker).
			name := strings.TrimPrefix(parts[1], "*")
			if name == filename || filepath.Base(name) == filename {
				return parts[0], nil
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("scan checksum file: %w", err)
	}

	return "", fmt.Errorf("checksum not found for %s", filename)
}

// isHexDigest reports whether s looks like a SHA256 hex digest.
func isHexDigest(s string) bool {
	if len(s) != sha256.Size*2 {
		return false
	}
	if _, err := hex.DecodeString(s); err != nil {
		return false
	}
	return true
}
