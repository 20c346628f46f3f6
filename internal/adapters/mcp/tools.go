package mcp

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"provcheck/internal/adapters/report"
	"provcheck/internal/application/commands"
	"provcheck/internal/ports"
)

// Deps are the collaborators shared by every tool.
type Deps struct {
	Resolver ports.InputResolver
	Scanner  ports.PresenceScanner
	Suffix   string
	Workers  int
	Logger   *slog.Logger
}

// RegisterTools adds the profile tools to the MCP server.
func RegisterTools(s *server.MCPServer, deps Deps) {
	s.AddTool(checkTool(), checkHandler(deps))
	s.AddTool(listTool(), listHandler(deps))
}

// --- check_identifier ---

func checkTool() mcp.Tool {
	return mcp.NewTool("check_identifier",
		mcp.WithDescription("Check whether every provisioning profile in a folder, a single profile or an .ipa archive contains an identifier (e.g. a device UDID). Reports matching and missing files."),
		mcp.WithString("identifier",
			mcp.Description("Identifier to look for, matched as raw bytes"),
			mcp.Required(),
		),
		mcp.WithString("path",
			mcp.Description("Folder, profile file or .ipa archive to check"),
			mcp.Required(),
		),
		mcp.WithBoolean("json",
			mcp.Description("Return the report as JSON instead of text"),
		),
	)
}

func checkHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		identifier := req.GetString("identifier", "")
		path := req.GetString("path", "")
		asJSON := req.GetBool("json", false)

		var buf bytes.Buffer
		cmd := commands.NewCheckCommand(deps.Resolver, deps.Scanner, identifier, path).
			WithWorkers(max(1, deps.Workers))
		if deps.Logger != nil {
			cmd.WithLogger(deps.Logger)
		}
		if !asJSON {
			cmd.WithObserver(report.NewObserver(&buf, identifier, deps.Suffix))
		}

		rep, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if asJSON {
			if err := report.WriteJSON(&buf, rep); err != nil {
				return toolError(err)
			}
			return mcp.NewToolResultText(buf.String()), nil
		}
		if err := report.NewTextWriter(&buf, deps.Suffix).WriteReport(rep); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(buf.String()), nil
	}
}

// --- list_profiles ---

func listTool() mcp.Tool {
	return mcp.NewTool("list_profiles",
		mcp.WithDescription("List the provisioning profiles a check would scan, without reading them."),
		mcp.WithString("path",
			mcp.Description("Folder, profile file or .ipa archive"),
			mcp.Required(),
		),
	)
}

func listHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")

		res, err := commands.NewListCommand(deps.Resolver, path).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var buf bytes.Buffer
		if err := report.NewTextWriter(&buf, deps.Suffix).WriteList(res); err != nil {
			return toolError(fmt.Errorf("rendering list: %w", err))
		}
		return mcp.NewToolResultText(buf.String()), nil
	}
}

// --- Helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
