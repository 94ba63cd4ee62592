package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huangsam/gitstats/core"
	"github.com/huangsam/gitstats/internal/contract"
	"github.com/huangsam/gitstats/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
	client  contract.GitClient
}

// requestConfig clones the base config and applies the overrides shared by every tool.
// A repo_path is resolved to its repository root so cache keys match the CLI.
func (h *toolHandler) requestConfig(ctx context.Context, request mcp.CallToolRequest, sort string) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if p := strings.TrimSpace(request.GetString("repo_path", "")); p != "" {
		root, err := contract.ResolveRepoPath(ctx, h.client, p)
		if err != nil {
			return nil, fmt.Errorf("repo_path %q is not inside a git repository: %w", p, err)
		}
		cfg.RepoPath = root
	}
	limit := request.GetInt("limit", 0)
	start := request.GetString("start", "")
	end := request.GetString("end", "")
	if err := contract.RevalidateQuery(cfg, sort, limit, start, end); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (h *toolHandler) handleGetAuthors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(ctx, request, request.GetString("sort", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	results, _, err := core.GetAuthorResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("author report failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(schema.RankAuthors(results), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetCommits(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(ctx, request, "")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if a := strings.TrimSpace(request.GetString("author", "")); a != "" {
		cfg.AuthorFilter = a
	}

	results, _, err := core.GetCommitResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("commit listing failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
