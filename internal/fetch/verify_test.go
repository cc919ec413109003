package fetch

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// writeArchive writes content to a file and returns its path and digest.
func writeArchive(t *testing.T, dir, name, content string) (string, string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write archive: %v", err)
	}
	sum := sha256.Sum256([]byte(content))
	return path, hex.EncodeToString(sum[:])
}

func writeChecksumFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "asset.tar.gz.sha256")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write checksum file: %v", err)
	}
	return path
}

func TestCheckSHA256(t *testing.T) {
	tmpDir := t.TempDir()
	archive, digest := writeArchive(t, tmpDir, "asset.tar.gz", "squelch archive")

	tests := []struct {
		name     string
		checksum string
		wantOK   bool
		wantErr  bool
	}{
		{
			name:     "bare_digest",
			checksum: digest + "\n",
			wantOK:   true,
		},
		{
			name:     "sha256sum_format",
			checksum: fmt.Sprintf("%s  asset.tar.gz\n", digest),
			wantOK:   true,
		},
		{
			name:     "binary_mode_marker",
			checksum: fmt.Sprintf("%s *asset.tar.gz\n", digest),
			wantOK:   true,
		},
		{
			name:     "path_in_filename",
			checksum: fmt.Sprintf("%s  dist/asset.tar.gz\n", digest),
			wantOK:   true,
		},
		{
			name:     "uppercase_digest",
			checksum: fmt.Sprintf("%X  asset.tar.gz\n", mustDecode(t, digest)),
			wantOK:   true,
		},
		{
			name:     "mismatch",
			checksum: fmt.Sprintf("%064d  asset.tar.gz\n", 0),
			wantOK:   false,
		},
		{
			name:     "no_entry_for_archive",
			checksum: fmt.Sprintf("%s  other-file.tar.gz\n", digest),
			wantErr:  true,
		},
		{
			name:     "garbage",
			checksum: "not a checksum file\n",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checksumPath := writeChecksumFile(t, t.TempDir(), tt.checksum)

			ok, err := CheckSHA256(archive, checksumPath)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tt.wantOK {
				t.Errorf("ok = %v, want %v", ok, tt.wantOK)
			}
		})
	}
}

func TestCheckSHA256MissingChecksumFile(t *testing.T) {
	tmpDir := t.TempDir()
	archive, _ := writeArchive(t, tmpDir, "asset.tar.gz", "content")

	if _, err := CheckSHA256(archive, filepath.Join(tmpDir, "nope.sha256")); err == nil {
		t.Fatal("expected error for missing checksum file")
	}
}

func TestVerifySignatureMissingKey(t *testing.T) {
	tmpDir := t.TempDir()
	archive, _ := writeArchive(t, tmpDir, "asset.tar.gz", "content")
	sig, _ := writeArchive(t, tmpDir, "asset.tar.gz.sig", "not a signature")

	err := VerifySignature(archive, sig, filepath.Join(tmpDir, "missing-key.asc"))
	if err == nil {
		t.Fatal("expected error for missing signing key")
	}
}

func TestVerifySignatureGarbageKey(t *testing.T) {
	tmpDir := t.TempDir()
	archive, _ := writeArchive(t, tmpDir, "asset.tar.gz", "content")
	sig, _ := writeArchive(t, tmpDir, "asset.tar.gz.sig", "not a signature")
	key, _ := writeArchive(t, tmpDir, "key.asc", "not a key")

	if err := VerifySignature(archive, sig, key); err == nil {
		t.Fatal("expected error for unparseable signing key")
	}
}

func mustDecode(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("decode hex: %v", err)
	}
	return b
}
