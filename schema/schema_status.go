package schema

import "time"

// CacheStatus represents the status of the cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// StatsStatus represents the status of the run tracking store.
type StatsStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TotalCommits  int              `json:"total_commits"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// RunRecord represents a row from the gitstats_runs table.
type RunRecord struct {
	RunID         int64
	RepoPath      string
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int64
	TotalCommits  int
	TotalAuthors  int
	ConfigParams  *string
}

// AuthorRecord represents a row from the gitstats_author_summaries table.
type AuthorRecord struct {
	RunID         int64
	AuthorName    string
	LinesAdded    int
	LinesRemoved  int
	Commits       int
	ActiveDays    []string
	FirstCommitTS int64
	LastCommitTS  int64
	LastActiveDay string
}
