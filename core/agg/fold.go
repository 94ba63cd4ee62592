package agg

import (
	"context"

	"github.com/huangsam/gitstats/core/stats"
	"github.com/huangsam/gitstats/internal/logger"
	"golang.org/x/sync/errgroup"
)

// Fold reduces commits into one summary per author, in commit order.
// The first commit seen for an author seeds the summary.
func Fold(commits []stats.CommitRecord) map[string]*stats.AuthorSummary {
	authors := make(map[string]*stats.AuthorSummary)
	for _, c := range commits {
		if a, ok := authors[c.Author()]; ok {
			stats.Apply(a, c)
			continue
		}
		authors[c.Author()] = stats.NewAuthorFromCommit(c)
	}
	return authors
}

// FoldParallel folds contiguous shards of commits concurrently and merges the shard
// results in shard order, so the outcome matches Fold for any worker count.
func FoldParallel(ctx context.Context, commits []stats.CommitRecord, workers int) (map[string]*stats.AuthorSummary, error) {
	if workers <= 1 || len(commits) < 2 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return Fold(commits), nil
	}

	shards := min(workers, len(commits))
	size := (len(commits) + shards - 1) / shards
	results := make([]map[string]*stats.AuthorSummary, shards)
	logger.WithField("shards", shards).Debug("folding commits")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range shards {
		lo := i * size
		hi := min(lo+size, len(commits))
		if lo >= hi {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = Fold(commits[lo:hi])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make(map[string]*stats.AuthorSummary)
	for _, shard := range results {
		for name, summary := range shard {
			dst, ok := merged[name]
			if !ok {
				merged[name] = summary
				continue
			}
			if err := stats.Merge(dst, summary); err != nil {
				return nil, err
			}
		}
	}
	return merged, nil
}
