package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"provcheck/internal/application"
	"provcheck/internal/domain"
	"provcheck/internal/ports"
)

const (
	DefaultSuffix     = ".mobileprovision"
	DefaultArchiveExt = ".ipa"

	extractDirPrefix   = "provcheck-"
	maxTempDirAttempts = 100
	maxSymlinkHops     = 40
)

// ResolverOptions configures a Resolver. Zero values fall back to defaults.
type ResolverOptions struct {
	Suffix      string
	ArchiveExts []string
	TempDir     string
	Logger      *slog.Logger
}

// Resolver implements ports.InputResolver on a billy filesystem
type Resolver struct {
	fs          billy.Filesystem
	extractor   ports.ArchiveExtractor
	suffix      string
	archiveExts []string
	tempDir     string
	logger      *slog.Logger
	nameSuffix  func() string
}

// Ensure Resolver implements InputResolver
var _ ports.InputResolver = (*Resolver)(nil)

// NewResolver creates a resolver reading from fsys and expanding archives with extractor
func NewResolver(fsys billy.Filesystem, extractor ports.ArchiveExtractor, opts ResolverOptions) *Resolver {
	r := &Resolver{
		fs:         fsys,
		extractor:  extractor,
		suffix:     strings.ToLower(opts.Suffix),
		tempDir:    opts.TempDir,
		logger:     opts.Logger,
		nameSuffix: randomSuffix,
	}
	if r.suffix == "" {
		r.suffix = DefaultSuffix
	}
	for _, ext := range opts.ArchiveExts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" {
			r.archiveExts = append(r.archiveExts, ext)
		}
	}
	if len(r.archiveExts) == 0 {
		r.archiveExts = []string{DefaultArchiveExt}
	}
	if r.tempDir == "" {
		r.tempDir = os.TempDir()
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Suffix returns the profile-file suffix this resolver matches
func (r *Resolver) Suffix() string {
	return r.suffix
}

// Classify determines whether path is a folder, a profile file or an archive
func (r *Resolver) Classify(path string) (domain.Mode, error) {
	if err := application.ValidateRequired("inputPath", path); err != nil {
		return domain.ModeUnknown, err
	}

	info, err := r.fs.Stat(absPath(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.ModeUnknown, &application.UnsupportedInputError{Path: path, Reason: "no such file or directory"}
		}
		return domain.ModeUnknown, &application.UnsupportedInputError{Path: path, Reason: err.Error()}
	}

	switch {
	case info.IsDir():
		return domain.ModeDirectory, nil
	case r.isProfile(info.Name()):
		return domain.ModeSingleFile, nil
	case r.isArchive(info.Name()):
		return domain.ModeArchive, nil
	}

	return domain.ModeUnknown, &application.UnsupportedInputError{
		Path:   path,
		Reason: fmt.Sprintf("expected a folder, a %s file or a %s package", r.suffix, strings.Join(r.archiveExts, "/")),
	}
}

// Resolve enumerates the profile files reachable from path
func (r *Resolver) Resolve(ctx context.Context, path string) (*domain.Resolution, ports.Release, error) {
	mode, err := r.Classify(path)
	if err != nil {
		return nil, noRelease, err
	}

	abs := absPath(path)

	switch mode {
	case domain.ModeSingleFile:
		files := []domain.Candidate{{Path: abs, Display: path}}
		return domain.NewResolution(mode, path, files), noRelease, nil

	case domain.ModeDirectory:
		root, err := r.followRoot(abs)
		if err != nil {
			return nil, noRelease, fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		files, err := r.walk(ctx, root, func(rel string) string {
			return filepath.Join(path, rel)
		})
		if err != nil {
			return nil, noRelease, err
		}
		return domain.NewResolution(mode, path, files), noRelease, nil

	default:
		return r.resolveArchive(ctx, path, abs)
	}
}

func (r *Resolver) resolveArchive(ctx context.Context, path, abs string) (*domain.Resolution, ports.Release, error) {
	dir, err := r.newExtractionDir()
	if err != nil {
		return nil, noRelease, fmt.Errorf("failed to create extraction directory: %w", err)
	}
	release := r.releaser(dir)
	r.logger.Debug("extracting archive", "archive", path, "dir", dir)

	if err := r.extractor.Extract(ctx, abs, dir); err != nil {
		r.releaseQuietly(release)
		return nil, noRelease, &application.ExtractionError{Archive: path, Err: err}
	}

	files, err := r.walk(ctx, dir, func(rel string) string {
		return path + "!/" + filepath.ToSlash(rel)
	})
	if err != nil {
		r.releaseQuietly(release)
		return nil, noRelease, err
	}

	return domain.NewResolution(domain.ModeArchive, path, files), release, nil
}

// followRoot resolves symlinks on the last element of dir. The walk does not
// descend into a symlinked root, while classification follows it.
func (r *Resolver) followRoot(dir string) (string, error) {
	for range maxSymlinkHops {
		info, err := r.fs.Lstat(dir)
		if err != nil {
			return "", err
		}
		if info.Mode()&os.ModeSymlink == 0 {
			return dir, nil
		}
		target, err := r.fs.Readlink(dir)
		if err != nil {
			return "", err
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(dir), target)
		}
		dir = target
	}
	return "", fmt.Errorf("too many levels of symbolic links: %s", dir)
}

// newExtractionDir creates a directory under the temp root whose name was unused.
// Names that already exist are skipped so another run's directory is never adopted.
func (r *Resolver) newExtractionDir() (string, error) {
	for range maxTempDirAttempts {
		dir := r.fs.Join(r.tempDir, extractDirPrefix+r.nameSuffix())
		_, err := r.fs.Lstat(dir)
		if err == nil {
			continue
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		if err := r.fs.MkdirAll(dir, 0o700); err != nil {
			return "", err
		}
		return dir, nil
	}
	return "", fmt.Errorf("no unused directory name under %s after %d attempts", r.tempDir, maxTempDirAttempts)
}

func randomSuffix() string {
	return strconv.FormatUint(rand.Uint64(), 36)
}

// walk collects every profile file below root. Unreadable subdirectories are
// skipped with a warning, an unreadable root is an error.
func (r *Resolver) walk(ctx context.Context, root string, display func(rel string) string) ([]domain.Candidate, error) {
	var files []domain.Candidate

	err := util.Walk(r.fs, root, func(path string, info os.FileInfo, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			r.logger.Warn("skipping unreadable path", "path", path, "err", walkErr)
			return nil
		}
		if info == nil || info.IsDir() || !r.isProfile(info.Name()) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, domain.Candidate{Path: path, Display: display(rel)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate %s: %w", root, err)
	}

	r.logger.Debug("enumerated profiles", "root", root, "count", len(files))
	return files, nil
}

func (r *Resolver) releaser(dir string) ports.Release {
	var (
		once sync.Once
		err  error
	)
	return func() error {
		once.Do(func() {
			if rmErr := util.RemoveAll(r.fs, dir); rmErr != nil {
				err = fmt.Errorf("failed to remove extraction directory %s: %w", dir, rmErr)
			}
		})
		return err
	}
}

func (r *Resolver) releaseQuietly(release ports.Release) {
	if err := release(); err != nil {
		r.logger.Warn("cleanup failed", "err", err)
	}
}

func (r *Resolver) isProfile(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), r.suffix)
}

func (r *Resolver) isArchive(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range r.archiveExts {
		if ext == want {
			return true
		}
	}
	return false
}

func noRelease() error { return nil }
