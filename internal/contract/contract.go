// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/gitstats/core/stats"
	"github.com/huangsam/gitstats/schema"
)

// GitClient defines the Git operations needed to read contributor history.
// This allows the core logic to be tested without needing a real git executable.
type GitClient interface {
	// Run executes a git command and returns its output.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// GetRepoHash returns the current HEAD commit hash of the repository.
	GetRepoHash(ctx context.Context, repoPath string) (string, error)

	// GetRepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// GetCommitLog returns the raw numstat commit log for the time window.
	// A zero start or end leaves that side of the window open.
	GetCommitLog(ctx context.Context, repoPath string, startTime, endTime time.Time) ([]byte, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetActivityStore() CacheStore
	GetStatsStore() StatsStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// StatsStore defines the interface for tracking report runs and the author summaries they produced.
type StatsStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(repoPath string, startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, totalCommits, totalAuthors int) error

	// RecordAuthor stores one author summary for a run
	RecordAuthor(runID int64, author *stats.AuthorSummary) error

	// GetStatus returns status information about the stats store
	GetStatus() (schema.StatsStatus, error)

	// GetAllRuns returns every recorded run, oldest first
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllAuthors returns every recorded author summary, ordered by run
	GetAllAuthors() ([]schema.AuthorRecord, error)

	// Close closes the underlying connection
	Close() error
}
