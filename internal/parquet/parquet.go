// Package parquet provides data structures and functions for exporting contributor
// reports and tracked runs to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/gitstats/schema"
	"github.com/parquet-go/parquet-go"
)

// AuthorRow is one ranked row of the author report.
type AuthorRow struct {
	Rank           int32     `parquet:"rank,snappy"`
	Author         string    `parquet:"author,snappy"`
	Commits        int32     `parquet:"commits,snappy"`
	LinesAdded     int64     `parquet:"lines_added,snappy"`
	LinesRemoved   int64     `parquet:"lines_removed,snappy"`
	ActiveDays     int32     `parquet:"active_days,snappy"`
	CommitShare    float64   `parquet:"commit_share,snappy"`
	FirstCommit    time.Time `parquet:"first_commit,snappy"`
	LastCommit     time.Time `parquet:"last_commit,snappy"`
	FirstActiveDay string    `parquet:"first_active_day,snappy"`
	LastActiveDay  string    `parquet:"last_active_day,snappy"`
	AgeDays        int32     `parquet:"age_days,snappy"`
	Label          string    `parquet:"label,snappy"`
}

// CommitRow is one row of the commit list.
type CommitRow struct {
	Hash         string    `parquet:"hash,snappy"`
	Author       string    `parquet:"author,snappy"`
	Date         string    `parquet:"date,snappy"`
	Time         time.Time `parquet:"time,snappy"`
	LinesAdded   int64     `parquet:"lines_added,snappy"`
	LinesRemoved int64     `parquet:"lines_removed,snappy"`
}

// RunRow maps to the gitstats_runs table.
type RunRow struct {
	RunID    int64     `parquet:"run_id,snappy"`
	RepoPath string    `parquet:"repo_path,snappy"`
	Start    time.Time `parquet:"start_time,snappy"`

	// EndTime and RunDurationMs stay null for runs that never finished
	EndTime       *time.Time `parquet:"end_time,optional,snappy"`
	RunDurationMs *int64     `parquet:"run_duration_ms,optional,snappy"`

	TotalCommits int32   `parquet:"total_commits,snappy"`
	TotalAuthors int32   `parquet:"total_authors,snappy"`
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// AuthorSummaryRow maps to the gitstats_author_summaries table.
type AuthorSummaryRow struct {
	RunID         int64    `parquet:"run_id,snappy"`
	AuthorName    string   `parquet:"author_name,snappy"`
	LinesAdded    int64    `parquet:"lines_added,snappy"`
	LinesRemoved  int64    `parquet:"lines_removed,snappy"`
	Commits       int32    `parquet:"commits,snappy"`
	ActiveDays    []string `parquet:"active_days,list"`
	FirstCommitTS int64    `parquet:"first_commit_ts,snappy"`
	LastCommitTS  int64    `parquet:"last_commit_ts,snappy"`
	LastActiveDay string   `parquet:"last_active_day,snappy"`
}

// writeRows writes a slice of rows to a Parquet file with a schema inferred from T.
func writeRows[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteAuthorsParquet writes the author report to a Parquet file.
func WriteAuthorsParquet(data []AuthorRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteCommitsParquet writes the commit list to a Parquet file.
func WriteCommitsParquet(data []CommitRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteRunsParquet writes tracked runs to a Parquet file.
func WriteRunsParquet(data []RunRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteAuthorSummariesParquet writes tracked author summaries to a Parquet file.
func WriteAuthorSummariesParquet(data []AuthorSummaryRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// ConvertAuthorResults converts ranked report rows for Parquet export.
func ConvertAuthorResults(authors []schema.RankedAuthor) []AuthorRow {
	result := make([]AuthorRow, len(authors))
	for i, a := range authors {
		result[i] = AuthorRow{
			Rank:           int32(a.Rank),
			Author:         a.Name,
			Commits:        int32(a.Commits),
			LinesAdded:     int64(a.LinesAdded),
			LinesRemoved:   int64(a.LinesRemoved),
			ActiveDays:     int32(a.ActiveDays),
			CommitShare:    a.CommitShare,
			FirstCommit:    a.FirstCommit,
			LastCommit:     a.LastCommit,
			FirstActiveDay: a.FirstActiveDay,
			LastActiveDay:  a.LastActiveDay,
			AgeDays:        int32(a.AgeDays),
			Label:          string(a.Label),
		}
	}
	return result
}

// ConvertCommitResults converts the commit list for Parquet export.
func ConvertCommitResults(commits []schema.CommitResult) []CommitRow {
	result := make([]CommitRow, len(commits))
	for i, c := range commits {
		result[i] = CommitRow{
			Hash:         c.Hash,
			Author:       c.Author,
			Date:         c.Date,
			Time:         c.Time,
			LinesAdded:   int64(c.LinesAdded),
			LinesRemoved: int64(c.LinesRemoved),
		}
	}
	return result
}

// ConvertRunRecords converts schema.RunRecord to RunRow for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []RunRow {
	result := make([]RunRow, len(records))
	for i, r := range records {
		result[i] = RunRow{
			RunID:         r.RunID,
			RepoPath:      r.RepoPath,
			Start:         r.StartTime,
			EndTime:       r.EndTime,
			RunDurationMs: r.RunDurationMs,
			TotalCommits:  int32(r.TotalCommits),
			TotalAuthors:  int32(r.TotalAuthors),
			ConfigParams:  r.ConfigParams,
		}
	}
	return result
}

// ConvertAuthorRecords converts schema.AuthorRecord to AuthorSummaryRow for Parquet export.
func ConvertAuthorRecords(records []schema.AuthorRecord) []AuthorSummaryRow {
	result := make([]AuthorSummaryRow, len(records))
	for i, r := range records {
		result[i] = AuthorSummaryRow{
			RunID:         r.RunID,
			AuthorName:    r.AuthorName,
			LinesAdded:    int64(r.LinesAdded),
			LinesRemoved:  int64(r.LinesRemoved),
			Commits:       int32(r.Commits),
			ActiveDays:    r.ActiveDays,
			FirstCommitTS: r.FirstCommitTS,
			LastCommitTS:  r.LastCommitTS,
			LastActiveDay: r.LastActiveDay,
		}
	}
	return result
}
