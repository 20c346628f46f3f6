package filesystem

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"

	"provcheck/internal/ports"
)

// ZipExtractor expands zip-based packages (.ipa) onto a billy filesystem
type ZipExtractor struct {
	fs billy.Filesystem
}

// Ensure ZipExtractor implements ArchiveExtractor
var _ ports.ArchiveExtractor = (*ZipExtractor)(nil)

// NewZipExtractor creates a new ZipExtractor
func NewZipExtractor(fsys billy.Filesystem) *ZipExtractor {
	return &ZipExtractor{fs: fsys}
}

// Extract writes every entry of archivePath below destDir.
// Entries that would land outside destDir are rejected.
func (z *ZipExtractor) Extract(ctx context.Context, archivePath, destDir string) error {
	info, err := z.fs.Stat(archivePath)
	if err != nil {
		return fmt.Errorf("failed to stat archive: %w", err)
	}

	f, err := z.fs.Open(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		return fmt.Errorf("failed to read archive: %w", err)
	}

	for _, entry := range zr.File {
		if err := ctx.Err(); err != nil {
			return err
		}

		target, err := entryTarget(destDir, entry.Name)
		if err != nil {
			return err
		}

		if entry.FileInfo().IsDir() {
			if err := z.fs.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create %s: %w", entry.Name, err)
			}
			continue
		}

		if err := z.writeEntry(entry, target); err != nil {
			return err
		}
	}

	return nil
}

func (z *ZipExtractor) writeEntry(entry *zip.File, target string) error {
	if err := z.fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create parent of %s: %w", entry.Name, err)
	}

	rc, err := entry.Open()
	if err != nil {
		return fmt.Errorf("failed to open entry %s: %w", entry.Name, err)
	}
	defer rc.Close()

	out, err := z.fs.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", entry.Name, err)
	}

	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("failed to extract %s: %w", entry.Name, err)
	}

	return out.Close()
}

// entryTarget maps a zip entry name to a path below destDir
func entryTarget(destDir, name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("entry %q escapes the extraction directory", name)
	}
	return filepath.Join(destDir, clean), nil
}
