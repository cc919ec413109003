package extract

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ZipExtractor unpacks .zip archives with the standard library.
type ZipExtractor struct{}

// NewZipExtractor creates the native zip extractor.
func NewZipExtractor() *ZipExtractor {
	return &ZipExtractor{}
}

// Name identifies the extractor in progress output.
func (e *ZipExtractor) Name() string {
	return "zip reader"
}

// Available always reports true; a non-zip archive fails fast in Extract.
func (e *ZipExtractor) Available() bool {
	return true
}

// Extract unpacks a .zip archive into dest.
func (e *ZipExtractor) Extract(archive, dest string) error {
	reader, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer reader.Close()

	if err := os.MkdirAll(dest, 0755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	for _, file := range reader.File {
		target := filepath.Join(dest, file.Name)

		// Security check: prevent path traversal
		if !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) {
			return fmt.Errorf("illegal file path: %s", file.Name)
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("create directory %s: %w", target, err)
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("create parent dir for %s: %w", target, err)
		}

		if err := copyZipFile(file, target); err != nil {
			return err
		}
	}

	return nil
}

// copyZipFile writes one archive member to target, preserving its mode.
func copyZipFile(file *zip.File, target string) error {
	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("open %s in archive: %w", file.Name, err)
	}
	defer src.Close()

	outFile, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, file.Mode())
	if err != nil {
		return fmt.Errorf("create file %s: %w", target, err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, src); err != nil {
		return fmt.Errorf("write file %s: %w", target, err)
	}

	return nil
}
