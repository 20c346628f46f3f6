package filesystem

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-git/go-billy/v5"

	"provcheck/internal/application"
	"provcheck/internal/domain"
	"provcheck/internal/ports"
)

// Scanner implements ports.PresenceScanner by reading whole files
type Scanner struct {
	fs       billy.Filesystem
	maxBytes int64
	logger   *slog.Logger
}

// Ensure Scanner implements PresenceScanner
var _ ports.PresenceScanner = (*Scanner)(nil)

// NewScanner creates a scanner. maxBytes <= 0 disables the size cap.
func NewScanner(fsys billy.Filesystem, maxBytes int64, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{fs: fsys, maxBytes: maxBytes, logger: logger}
}

// Scan reports whether identifier occurs verbatim in the candidate's bytes
func (s *Scanner) Scan(_ context.Context, identifier []byte, c domain.Candidate) domain.ScanResult {
	data, err := s.read(c.Path)
	if err != nil {
		s.logger.Warn("could not read profile", "path", c.Display, "err", err)
		return domain.ScanResult{Candidate: c, Outcome: domain.Unreadable, Err: err}
	}

	if bytes.Contains(data, identifier) {
		return domain.ScanResult{Candidate: c, Outcome: domain.Matched}
	}
	return domain.ScanResult{Candidate: c, Outcome: domain.NotMatched}
}

func (s *Scanner) read(path string) ([]byte, error) {
	f, err := s.fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if s.maxBytes > 0 {
		r = io.LimitReader(f, s.maxBytes+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return nil, fmt.Errorf("%w (%d bytes)", application.ErrFileTooLarge, s.maxBytes)
	}
	return data, nil
}
