package core

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/huangsam/gitstats/core/agg"
	"github.com/huangsam/gitstats/internal/contract"
	"github.com/huangsam/gitstats/internal/outwriter"
	"github.com/huangsam/gitstats/schema"
)

// runCommits reads the commit list and returns it newest first, filtered and limited.
func runCommits(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) ([]schema.CommitResult, error) {
	if !shouldSuppressHeader(ctx) {
		outwriter.LogRunHeader(cfg, "commits")
	}

	entries, err := agg.CachedCommits(ctx, cfg, client, mgr)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoCommits
	}

	needle := strings.ToLower(cfg.AuthorFilter)
	results := make([]schema.CommitResult, 0, len(entries))
	for _, e := range entries {
		if needle != "" && !strings.Contains(strings.ToLower(e.Author), needle) {
			continue
		}
		results = append(results, schema.CommitResult{
			Hash:         e.Hash,
			Author:       e.Author,
			Date:         e.Date,
			Time:         time.Unix(e.Timestamp, 0).UTC(),
			LinesAdded:   e.LinesAdded,
			LinesRemoved: e.LinesRemoved,
		})
	}

	slices.SortStableFunc(results, func(a, b schema.CommitResult) int {
		return b.Time.Compare(a.Time)
	})
	if cfg.ResultLimit > 0 && len(results) > cfg.ResultLimit {
		results = results[:cfg.ResultLimit]
	}
	return results, nil
}
