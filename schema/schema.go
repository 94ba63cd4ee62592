// Package schema has models and constants shared by all parts of gitstats.
package schema

import (
	"time"

	"github.com/huangsam/gitstats/core/stats"
)

// CommitEntry is one parsed commit from the history log.
// It is the cacheable form of a stats.CommitRecord plus the commit hash.
type CommitEntry struct {
	Hash         string `json:"hash"`
	Author       string `json:"author"`
	LinesAdded   int    `json:"lines_added"`
	LinesRemoved int    `json:"lines_removed"`
	Date         string `json:"date"`      // Author-local calendar day
	Timestamp    int64  `json:"timestamp"` // Unix seconds
}

// Record converts the entry into the immutable commit record used by the fold.
func (e CommitEntry) Record() stats.CommitRecord {
	return stats.NewCommit(e.Author, e.LinesAdded, e.LinesRemoved, e.Date, e.Timestamp)
}

// Records converts a list of entries into commit records, preserving order.
func Records(entries []CommitEntry) []stats.CommitRecord {
	records := make([]stats.CommitRecord, len(entries))
	for i, e := range entries {
		records[i] = e.Record()
	}
	return records
}

// AuthorResult is the report row for a single author.
type AuthorResult struct {
	Name           string        `json:"name"`
	Commits        int           `json:"commits"`
	LinesAdded     int           `json:"lines_added"`
	LinesRemoved   int           `json:"lines_removed"`
	ActiveDays     int           `json:"active_days"`
	ActiveDayList  []string      `json:"active_day_list,omitempty"`
	FirstCommit    time.Time     `json:"first_commit"`
	LastCommit     time.Time     `json:"last_commit"`
	FirstActiveDay string        `json:"first_active_day"`
	LastActiveDay  string        `json:"last_active_day"`
	AgeDays        int           `json:"age_days"`     // Days between first and last commit
	CommitShare    float64       `json:"commit_share"` // Percent of all commits in the window
	Label          ActivityLabel `json:"label"`
}

// CommitResult is the report row for a single commit.
type CommitResult struct {
	Hash         string    `json:"hash"`
	Author       string    `json:"author"`
	Date         string    `json:"date"`
	Time         time.Time `json:"time"`
	LinesAdded   int       `json:"lines_added"`
	LinesRemoved int       `json:"lines_removed"`
}

// RankedAuthor adds presentation rank to an AuthorResult.
type RankedAuthor struct {
	Rank int `json:"rank"`
	AuthorResult
}

// RankAuthors numbers the given authors in their current order.
func RankAuthors(authors []AuthorResult) []RankedAuthor {
	output := make([]RankedAuthor, len(authors))
	for i, a := range authors {
		output[i] = RankedAuthor{Rank: i + 1, AuthorResult: a}
	}
	return output
}

// GetActivityLabel returns the activity label for a last commit, relative to now.
func GetActivityLabel(lastCommit, now time.Time) ActivityLabel {
	days := int(now.Sub(lastCommit) / (24 * time.Hour))
	switch {
	case days <= ActiveWindowDays:
		return ActiveLabel
	case days <= RecentWindowDays:
		return RecentLabel
	default:
		return DormantLabel
	}
}
