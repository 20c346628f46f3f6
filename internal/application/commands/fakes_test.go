package commands

import (
	"bytes"
	"context"
	"errors"
	"sync"

	"provcheck/internal/domain"
	"provcheck/internal/ports"
)

type fakeResolver struct {
	mode       domain.Mode
	res        *domain.Resolution
	classErr   error
	resolveErr error
	releaseErr error

	mu       sync.Mutex
	released int
}

func (f *fakeResolver) Classify(string) (domain.Mode, error) {
	return f.mode, f.classErr
}

func (f *fakeResolver) Resolve(context.Context, string) (*domain.Resolution, ports.Release, error) {
	if f.resolveErr != nil {
		return nil, func() error { return nil }, f.resolveErr
	}
	return f.res, func() error {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.released++
		return f.releaseErr
	}, nil
}

func (f *fakeResolver) releaseCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.released
}

// fakeScanner matches by content and marks listed paths unreadable
type fakeScanner struct {
	contents   map[string]string
	unreadable map[string]bool
	onScan     func(path string)
}

func (f *fakeScanner) Scan(_ context.Context, identifier []byte, c domain.Candidate) domain.ScanResult {
	if f.onScan != nil {
		f.onScan(c.Path)
	}
	if f.unreadable[c.Path] {
		return domain.ScanResult{Candidate: c, Outcome: domain.Unreadable, Err: errors.New("permission denied")}
	}
	if bytes.Contains([]byte(f.contents[c.Path]), identifier) {
		return domain.ScanResult{Candidate: c, Outcome: domain.Matched}
	}
	return domain.ScanResult{Candidate: c, Outcome: domain.NotMatched}
}

type recordObserver struct {
	mu       sync.Mutex
	detected []domain.Mode
	resolved int
	scanned  []string
	lastDone int
	total    int
}

func (o *recordObserver) Detected(mode domain.Mode, _ string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.detected = append(o.detected, mode)
}

func (o *recordObserver) Resolved(res *domain.Resolution) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.resolved = res.Total()
}

func (o *recordObserver) Scanned(r domain.ScanResult, done, total int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.scanned = append(o.scanned, r.Candidate.Path)
	o.lastDone = done
	o.total = total
}

func resolutionOf(mode domain.Mode, paths ...string) *domain.Resolution {
	files := make([]domain.Candidate, 0, len(paths))
	for _, p := range paths {
		files = append(files, domain.Candidate{Path: p, Display: p})
	}
	return domain.NewResolution(mode, "/in", files)
}
