package ports

import (
	"context"

	"provcheck/internal/domain"
)

// Release frees resources held by a resolution, such as an extraction directory.
// It is safe to call more than once.
type Release func() error

// InputResolver turns one input path into the list of profile files to scan
type InputResolver interface {
	// Classify determines how the path will be resolved without touching its contents
	Classify(path string) (domain.Mode, error)

	// Resolve enumerates candidate files. The caller must invoke the returned
	// Release once scanning is finished, whatever the outcome.
	Resolve(ctx context.Context, path string) (*domain.Resolution, Release, error)
}

// ArchiveExtractor expands an archive package into a directory
type ArchiveExtractor interface {
	Extract(ctx context.Context, archivePath, destDir string) error
}
