package archive

import (
	"archive/zip"
	"crypto"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/flate"

	"github.com/fieldreporter/addon-packager/internal/manifest"
	"github.com/fieldreporter/addon-packager/internal/selector"

	// Ensure SHA512 is available for checksum calculation.
	_ "crypto/sha512"
)

const (
	// defaultDirPermissions is used when creating the output directory.
	defaultDirPermissions os.FileMode = 0o755

	// checksumFunction is used to hash the produced archive.
	checksumFunction crypto.Hash = crypto.SHA512
)

var errHashUnavailable = errors.New("hash function unavailable")

// Write creates the archive at outputPath containing every selected file
// plus a final manifest.json entry with the provided bytes. A pre-existing
// file at outputPath is overwritten.
func Write(outputPath string, files []selector.File, manifestBytes []byte) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), defaultDirPermissions); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	out, err := os.Create(filepath.Clean(outputPath))
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer func() {
		_ = out.Close()
	}()

	writer := zip.NewWriter(out)
	writer.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestCompression)
	})

	for _, file := range files {
		if err = addFile(writer, file); err != nil {
			return err
		}
	}

	// The manifest goes in last so an extracting reader resolves any
	// same-named entry in its favor.
	entry, err := writer.Create(manifest.EntryName)
	if err != nil {
		return fmt.Errorf("create manifest entry: %w", err)
	}

	if _, err = entry.Write(manifestBytes); err != nil {
		return fmt.Errorf("write manifest entry: %w", err)
	}

	if err = writer.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}

	if err = out.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}

	return nil
}

// addFile streams one project file into the archive under its relative path.
func addFile(writer *zip.Writer, file selector.File) error {
	source, err := os.Open(file.Path)
	if err != nil {
		return fmt.Errorf("open %s: %w", file.Rel, err)
	}
	defer func() {
		_ = source.Close()
	}()

	entry, err := writer.Create(file.Rel)
	if err != nil {
		return fmt.Errorf("create entry %s: %w", file.Rel, err)
	}

	if _, err = io.Copy(entry, source); err != nil {
		return fmt.Errorf("write entry %s: %w", file.Rel, err)
	}

	return nil
}

// Checksum returns the base64-encoded SHA512 hash of the file at path.
func Checksum(path string) (string, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", err
	}

	if !checksumFunction.Available() {
		return "", fmt.Errorf("checksum calculation not possible: %w", errHashUnavailable)
	}

	hasher := checksumFunction.New()
	if _, err = hasher.Write(contents); err != nil {
		return "", fmt.Errorf("calculate checksum: %w", err)
	}

	return base64.StdEncoding.EncodeToString(hasher.Sum(nil)), nil
}
