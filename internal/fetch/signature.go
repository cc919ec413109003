package fetch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ProtonMail/go-crypto/openpgp" //nolint:staticcheck // Using ProtonMail's maintained fork
	homedir "github.com/mitchellh/go-homedir"
)

// SigningKeyPath returns the location of the upstream signing key the user
// may drop next to their config. When the file is absent, signature
// verification is skipped.
func SigningKeyPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "squelch-installer", "signing-key.asc"), nil
}

// VerifySignature checks the detached signature at sigPath against
// archivePath using the public key at keyPath. Armored and binary
// signatures are both accepted. Like the checksum, a failure here is a
// warning for the caller, not a fatal error.
func VerifySignature(archivePath, sigPath, keyPath string) error {
	keyring, err := loadKeyring(keyPath)
	if err != nil {
		return fmt.Errorf("load signing key: %w", err)
	}

	archiveFile, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer archiveFile.Close()

	sigFile, err := os.Open(sigPath)
	if err != nil {
		return fmt.Errorf("open signature: %w", err)
	}
	defer sigFile.Close()

	// Try armored first, then raw
	_, err = openpgp.CheckArmoredDetachedSignature(keyring, archiveFile, sigFile, nil)
	if err != nil {
		archiveFile.Seek(0, io.SeekStart)
		sigFile.Seek(0, io.SeekStart)
		_, err = openpgp.CheckDetachedSignature(keyring, archiveFile, sigFile, nil)
	}
	if err != nil {
		return fmt.Errorf("verify signature: %w", err)
	}

	return nil
}

// loadKeyring reads an armored or binary public keyring from keyPath.
func loadKeyring(keyPath string) (openpgp.EntityList, error) {
	keyFile, err := os.Open(keyPath)
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	defer keyFile.Close()

	keyring, err := openpgp.ReadArmoredKeyRing(keyFile)
	if err != nil {
		keyFile.Seek(0, io.SeekStart)
		keyring, err = openpgp.ReadKeyRing(keyFile)
		if err != nil {
			return nil, fmt.Errorf("read keyring: %w", err)
		}
	}

	if len(keyring) == 0 {
		return nil, fmt.Errorf("keyring is empty")
	}

	return keyring, nil
}
