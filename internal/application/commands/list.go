package commands

import (
	"context"

	"provcheck/internal/application"
	"provcheck/internal/domain"
	"provcheck/internal/ports"
)

// ListCommand resolves an input path without scanning it
type ListCommand struct {
	resolver  ports.InputResolver
	InputPath string
}

// NewListCommand creates a new ListCommand
func NewListCommand(resolver ports.InputResolver, inputPath string) *ListCommand {
	return &ListCommand{
		resolver:  resolver,
		InputPath: inputPath,
	}
}

// Execute runs the list command. Any extraction directory is removed before
// returning, so only the display paths of archive members remain meaningful.
func (c *ListCommand) Execute(ctx context.Context) (*domain.Resolution, error) {
	if err := application.ValidateRequired("inputPath", c.InputPath); err != nil {
		return nil, err
	}

	res, release, err := c.resolver.Resolve(ctx, c.InputPath)
	if err != nil {
		return nil, err
	}
	if err := release(); err != nil {
		return nil, err
	}
	return res, nil
}
