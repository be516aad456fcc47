// Package mcp provides a Model Context Protocol server for hooksmith.
// It exposes validation, conversion, and verification operations as MCP
// tools that any MCP-capable agent can use.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/hooksmith/internal/commitmsg"
)

// NewServer creates an MCP server with all hooksmith tools registered.
// The rules parameter carries the repo's configured commit rules.
func NewServer(version string, rules commitmsg.Rules) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "hooksmith",
		Version: version,
	}, nil)
	registerTools(server, rules)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// execAnnotations returns annotations for tools that run external
// commands but only write inside the repo state directory.
func execAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all hooksmith tools to the server.
func registerTools(server *mcp.Server, rules commitmsg.Rules) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_commit",
		Description: "Validate a commit subject against the conventional commit grammar. Returns accepted/rejected with a reason and the parsed type/scope.",
		Annotations: readOnlyAnnotations(),
	}, handleCheckCommit(rules))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "hooks_status",
		Description: "Report the installation status of the hooksmith git hooks (commit-msg, pre-commit, pre-push).",
		Annotations: readOnlyAnnotations(),
	}, handleHooksStatus())

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_conversions",
		Description: "List the format-conversion catalogue with each operation's external tool and whether that tool is installed.",
		Annotations: readOnlyAnnotations(),
	}, handleListConversions())

	mcp.AddTool(server, &mcp.Tool{
		Name:        "verify",
		Description: "Run the verification steps (all, or a named subset) and return per-step results.",
		Annotations: execAnnotations(),
	}, handleVerify(rules))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "metrics",
		Description: "Load the metrics dashboard: commit counts by type and author, conventional compliance ratio, and verification run history.",
		Annotations: readOnlyAnnotations(),
	}, handleMetrics(rules))
}
