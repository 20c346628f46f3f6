package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"provcheck/internal/adapters/filesystem"
	mcpadapter "provcheck/internal/adapters/mcp"
	"provcheck/internal/config"
	"provcheck/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("provcheck-mcp: %v", err)
	}

	suffixFlag := flag.String("suffix", cfg.Suffix, "profile file suffix")
	workersFlag := flag.Int("workers", cfg.Workers, "number of files scanned concurrently")
	flag.Parse()

	cfg.Suffix = *suffixFlag
	cfg.Workers = *workersFlag
	if err := cfg.Validate(); err != nil {
		log.Fatalf("provcheck-mcp: %v", err)
	}

	// stdout carries the protocol, diagnostics go to stderr
	logger := logging.New(os.Stderr, cfg.LogLevel)
	fsys := filesystem.NewOS()

	mcpServer := server.NewMCPServer(
		"provcheck-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterTools(mcpServer, mcpadapter.Deps{
		Resolver: filesystem.NewResolver(fsys, filesystem.NewZipExtractor(fsys), filesystem.ResolverOptions{
			Suffix:      cfg.Suffix,
			ArchiveExts: cfg.ArchiveExts,
			TempDir:     cfg.TempDir,
			Logger:      logger,
		}),
		Scanner: filesystem.NewScanner(fsys, cfg.MaxFileBytes, logger),
		Suffix:  cfg.Suffix,
		Workers: cfg.Workers,
		Logger:  logger,
	})

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("provcheck-mcp: %v", err)
	}
}
