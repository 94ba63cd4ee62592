package core

import (
	"context"
	"strings"
	"time"

	"github.com/huangsam/gitstats/core/agg"
	"github.com/huangsam/gitstats/core/stats"
	"github.com/huangsam/gitstats/internal/contract"
	"github.com/huangsam/gitstats/internal/outwriter"
	"github.com/huangsam/gitstats/schema"
)

// runAuthors reads the commit list, folds it per author and ranks the result.
func runAuthors(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) ([]schema.AuthorResult, error) {
	if !shouldSuppressHeader(ctx) {
		outwriter.LogRunHeader(cfg, "authors")
	}

	entries, err := agg.CachedCommits(ctx, cfg, client, mgr)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoCommits
	}

	tracker := beginRun(cfg, mgr)

	summaries, err := agg.FoldParallel(ctx, schema.Records(entries), cfg.Workers)
	if err != nil {
		return nil, err
	}

	tracker.finish(summaries, len(entries))

	results := buildAuthorResults(summaries, len(entries), time.Now())
	results = filterAuthors(results, cfg.AuthorFilter)
	return rankAuthors(results, cfg.SortBy, cfg.ResultLimit), nil
}

// buildAuthorResults derives report rows from folded summaries.
func buildAuthorResults(summaries map[string]*stats.AuthorSummary, totalCommits int, now time.Time) []schema.AuthorResult {
	results := make([]schema.AuthorResult, 0, len(summaries))
	for _, s := range summaries {
		results = append(results, buildAuthorResult(s, totalCommits, now))
	}
	return results
}

func buildAuthorResult(s *stats.AuthorSummary, totalCommits int, now time.Time) schema.AuthorResult {
	first := time.Unix(s.FirstCommitTS(), 0).UTC()
	last := time.Unix(s.LastCommitTS(), 0).UTC()

	var share float64
	if totalCommits > 0 {
		share = 100 * float64(s.Commits) / float64(totalCommits)
	}

	return schema.AuthorResult{
		Name:           s.Name(),
		Commits:        s.Commits,
		LinesAdded:     s.LinesAdded,
		LinesRemoved:   s.LinesRemoved,
		ActiveDays:     s.ActiveDayCount(),
		ActiveDayList:  s.ActiveDays(),
		FirstCommit:    first,
		LastCommit:     last,
		FirstActiveDay: s.FirstActiveDay(),
		LastActiveDay:  s.LastActiveDay(),
		AgeDays:        contract.CalculateDaysBetween(first, last),
		CommitShare:    share,
		Label:          schema.GetActivityLabel(last, now),
	}
}

// filterAuthors keeps authors whose name contains the filter, ignoring case.
func filterAuthors(results []schema.AuthorResult, filter string) []schema.AuthorResult {
	if filter == "" {
		return results
	}
	needle := strings.ToLower(filter)
	filtered := results[:0]
	for _, r := range results {
		if strings.Contains(strings.ToLower(r.Name), needle) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
