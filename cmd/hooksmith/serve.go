// Package main provides the entry point for the hooksmith CLI.
package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	hooksmithmcp "github.com/gorewood/hooksmith/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run hooksmith as a Model Context Protocol (MCP) server over stdio.

This exposes hooksmith operations as MCP tools that any MCP-capable agent
environment can use (Claude Code, Cursor, Windsurf, Gemini CLI, etc).

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "hooksmith": {
        "command": "hooksmith",
        "args": ["serve"]
      }
    }
  }

Available tools: check_commit, hooks_status, list_conversions, verify, metrics`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server := hooksmithmcp.NewServer(buildVersion(), loadRules())
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
