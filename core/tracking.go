package core

import (
	"fmt"
	"slices"
	"time"

	"github.com/huangsam/gitstats/core/stats"
	"github.com/huangsam/gitstats/internal/contract"
	"github.com/huangsam/gitstats/internal/logger"
)

// runTracker records one report run in the stats store. A nil store makes it a no-op.
type runTracker struct {
	store contract.StatsStore
	runID int64
}

// beginRun opens a run when a stats store is configured. Failures are logged, never returned.
func beginRun(cfg *contract.Config, mgr contract.CacheManager) *runTracker {
	if mgr == nil {
		return &runTracker{}
	}
	store := mgr.GetStatsStore()
	if store == nil {
		return &runTracker{}
	}

	configParams := map[string]any{
		"sort":         string(cfg.SortBy),
		"workers":      cfg.Workers,
		"result_limit": cfg.ResultLimit,
		"excludes":     cfg.Excludes,
	}
	if !cfg.StartTime.IsZero() {
		configParams["start"] = cfg.StartTime.Format(contract.DateTimeFormat)
	}
	if !cfg.EndTime.IsZero() {
		configParams["end"] = cfg.EndTime.Format(contract.DateTimeFormat)
	}

	runID, err := store.BeginRun(cfg.RepoPath, time.Now(), configParams)
	if err != nil {
		contract.LogWarn("Run tracking initialization failed", err)
		return &runTracker{}
	}
	logger.WithField("run_id", runID).Debug("run tracking started")
	return &runTracker{store: store, runID: runID}
}

// finish stores every author summary and closes the run.
func (t *runTracker) finish(summaries map[string]*stats.AuthorSummary, totalCommits int) {
	if t.store == nil || t.runID <= 0 {
		return
	}

	names := make([]string, 0, len(summaries))
	for name := range summaries {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if err := t.store.RecordAuthor(t.runID, summaries[name]); err != nil {
			contract.LogWarn(fmt.Sprintf("Run tracking failed for author %q", name), err)
		}
	}
	if err := t.store.EndRun(t.runID, time.Now(), totalCommits, len(summaries)); err != nil {
		contract.LogWarn("Failed to finalize run tracking", err)
	}
}
