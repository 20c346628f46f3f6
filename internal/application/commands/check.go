package commands

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"provcheck/internal/application"
	"provcheck/internal/domain"
	"provcheck/internal/ports"
)

// CheckCommand resolves an input path, scans every profile file for an
// identifier and aggregates the outcomes into a report
type CheckCommand struct {
	resolver ports.InputResolver
	scanner  ports.PresenceScanner
	observer ports.Observer
	logger   *slog.Logger

	Identifier string
	InputPath  string
	Workers    int
}

// NewCheckCommand creates a new sequential CheckCommand
func NewCheckCommand(resolver ports.InputResolver, scanner ports.PresenceScanner, identifier, inputPath string) *CheckCommand {
	return &CheckCommand{
		resolver:   resolver,
		scanner:    scanner,
		logger:     slog.Default(),
		Identifier: identifier,
		InputPath:  inputPath,
		Workers:    1,
	}
}

// WithObserver sets the progress observer
func (c *CheckCommand) WithObserver(o ports.Observer) *CheckCommand {
	c.observer = o
	return c
}

// WithLogger sets the logger used for cleanup diagnostics
func (c *CheckCommand) WithLogger(l *slog.Logger) *CheckCommand {
	if l != nil {
		c.logger = l
	}
	return c
}

// WithWorkers sets how many files are scanned concurrently
func (c *CheckCommand) WithWorkers(n int) *CheckCommand {
	c.Workers = n
	return c
}

// Validate checks the command arguments. The identifier is opaque and never validated.
func (c *CheckCommand) Validate() error {
	if err := application.ValidateRequired("inputPath", c.InputPath); err != nil {
		return err
	}
	return application.ValidateWorkers(c.Workers)
}

// Execute runs the check. Only resolution, extraction and cancellation errors are
// returned; unreadable files end up in the report's missing list.
func (c *CheckCommand) Execute(ctx context.Context) (*domain.Report, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	mode, err := c.resolver.Classify(c.InputPath)
	if err != nil {
		return nil, err
	}

	p := &progress{observer: c.observer}
	p.detected(mode, c.InputPath)

	res, release, err := c.resolver.Resolve(ctx, c.InputPath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := release(); err != nil {
			c.logger.Warn("cleanup failed", "path", c.InputPath, "err", err)
		}
	}()

	p.resolved(res)

	results, err := c.scanAll(ctx, res, p)
	if err != nil {
		return nil, err
	}

	return domain.BuildReport(c.Identifier, res, results)
}

// scanAll returns one result per file, in resolution order
func (c *CheckCommand) scanAll(ctx context.Context, res *domain.Resolution, p *progress) ([]domain.ScanResult, error) {
	identifier := []byte(c.Identifier)
	results := make([]domain.ScanResult, len(res.Files))

	if c.Workers <= 1 {
		for i, f := range res.Files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = c.scanner.Scan(ctx, identifier, f)
			p.scanned(results[i])
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Workers)

	for i, f := range res.Files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.scanner.Scan(gctx, identifier, f)
			p.scanned(results[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// progress serializes observer calls for one run
type progress struct {
	mu       sync.Mutex
	observer ports.Observer
	done     int
	total    int
}

func (p *progress) detected(mode domain.Mode, path string) {
	if p.observer == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observer.Detected(mode, path)
}

func (p *progress) resolved(res *domain.Resolution) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total = res.Total()
	if p.observer != nil {
		p.observer.Resolved(res)
	}
}

func (p *progress) scanned(r domain.ScanResult) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	if p.observer != nil {
		p.observer.Scanned(r, p.done, p.total)
	}
}
