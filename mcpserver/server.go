// Package mcpserver offers the tool catalogue to an agent runtime over MCP, on stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/toothbrush/coda-tools/tools"
)

const ServerName = "coda"

// New registers every tool of the catalogue with a fresh MCP server.
func New(catalogue *tools.Catalogue, version string, logger hclog.Logger) *server.MCPServer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	s := server.NewMCPServer(ServerName, version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	for _, t := range catalogue.Tools() {
		s.AddTool(mcp.NewToolWithRawSchema(t.Name, t.Description, t.Schema), handle(t, logger))
	}
	logger.Debug("registered tools", "count", len(catalogue.Tools()))

	return s
}

// handle turns a tool into an MCP handler.  Failures are reported as tool errors, which the agent
// gets to see, rather than protocol errors.
func handle(t tools.Tool, logger hclog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := json.Marshal(req.Params.Arguments)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("couldn't read arguments: %v", err)), nil
		}

		logger.Debug("calling tool", "tool", t.Name)

		result, err := t.Call(ctx, args)
		if err != nil {
			logger.Warn("tool call failed", "tool", t.Name, "error", err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("couldn't encode result: %v", err)), nil
		}
		return mcp.NewToolResultText(string(out)), nil
	}
}

// Serve speaks MCP on in and out until ctx is done or in is closed.  Nothing but protocol messages
// may be written to out, so logging goes through logger.
func Serve(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer, logger hclog.Logger) error {
	stdio := server.NewStdioServer(s)
	stdio.SetErrorLogger(logger.StandardLogger(&hclog.StandardLoggerOptions{InferLevels: true}))

	if err := stdio.Listen(ctx, in, out); err != nil && ctx.Err() == nil {
		return fmt.Errorf("mcpserver: stdio server stopped: %w", err)
	}
	return nil
}
