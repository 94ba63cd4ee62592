package mcp_test

import (
	"context"
	"testing"

	"github.com/huangsam/gitstats/internal/contract"
	mcp_internal "github.com/huangsam/gitstats/internal/mcp"
	"github.com/huangsam/gitstats/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callTool(t *testing.T, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	baseCfg := &contract.Config{
		RepoPath:    ".",
		SortBy:      schema.SortByCommits,
		ResultLimit: contract.DefaultResultLimit,
		Workers:     1,
	}

	// Validation fails before the manager is touched
	var mgr contract.CacheManager
	s := mcp_internal.NewMCPServer(baseCfg, mgr)

	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotNil(t, res)
	return res
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		tool     string
		args     map[string]any
		contains string
	}{
		{
			name:     "get_authors invalid sort",
			tool:     "get_authors",
			args:     map[string]any{"sort": "score"},
			contains: "invalid sort 'score'",
		},
		{
			name:     "get_authors limit too large",
			tool:     "get_authors",
			args:     map[string]any{"limit": 5000.0},
			contains: "cannot exceed 1000",
		},
		{
			name:     "get_authors bad start",
			tool:     "get_authors",
			args:     map[string]any{"start": "yesterday-ish"},
			contains: "invalid start date format",
		},
		{
			name:     "get_authors start after end",
			tool:     "get_authors",
			args:     map[string]any{"start": "2024-03-01", "end": "2024-01-01"},
			contains: "cannot be after end time",
		},
		{
			name:     "get_commits negative limit",
			tool:     "get_commits",
			args:     map[string]any{"limit": -1.0},
			contains: "limit must be greater than 0",
		},
		{
			name:     "get_commits bad end",
			tool:     "get_commits",
			args:     map[string]any{"end": "not a date"},
			contains: "invalid end date format",
		},
		{
			name:     "get_authors repo_path outside git",
			tool:     "get_authors",
			args:     map[string]any{"repo_path": "/nonexistent/gitstats-repo"},
			contains: "is not inside a git repository",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := callTool(t, tt.tool, tt.args)
			assert.True(t, res.IsError, "The response should indicate an error state")
			assert.Contains(t, res.Content[0].(mcp.TextContent).Text, tt.contains)
		})
	}
}

func TestMCPServer_ToolsRegistered(t *testing.T) {
	s := mcp_internal.NewMCPServer(&contract.Config{}, nil)
	for _, name := range []string{"get_authors", "get_commits"} {
		assert.NotNil(t, s.GetTool(name), "Tool %s should exist", name)
	}
	assert.Nil(t, s.GetTool("get_files"))
}
