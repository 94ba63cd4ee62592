// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/gitstats/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the gitstats MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Gitstats Contributor Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
		client:  contract.NewLocalGitClient(),
	}

	s.AddTool(mcp.NewTool("get_authors",
		mcp.WithDescription("Summarize git history per author: commits, lines added and removed, active days and activity."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to current directory if not specified).")),
		mcp.WithString("sort", mcp.Description("Column to rank authors by. Defaults to 'commits'."),
			mcp.Enum("commits", "added", "removed", "days", "first", "last", "name")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of authors returned.")),
		mcp.WithString("start", mcp.Description("Start of the time window (ISO8601, YYYY-MM-DD or 'N units ago').")),
		mcp.WithString("end", mcp.Description("End of the time window (ISO8601, YYYY-MM-DD or 'N units ago').")),
	), h.handleGetAuthors)

	s.AddTool(mcp.NewTool("get_commits",
		mcp.WithDescription("List commits newest first with their line counts."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository.")),
		mcp.WithString("author", mcp.Description("Case-insensitive substring filter on the author name.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of commits returned.")),
		mcp.WithString("start", mcp.Description("Start of the time window.")),
		mcp.WithString("end", mcp.Description("End of the time window.")),
	), h.handleGetCommits)

	return s
}

// StartMCPServer starts the gitstats MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
