package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/huangsam/gitstats/internal/contract"
	"github.com/huangsam/gitstats/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAuthors() []schema.AuthorResult {
	return []schema.AuthorResult{
		{
			Name:           "Alice",
			Commits:        3,
			LinesAdded:     1234,
			LinesRemoved:   3,
			ActiveDays:     2,
			ActiveDayList:  []string{"2024-01-10", "2024-02-21"},
			FirstCommit:    time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC),
			LastCommit:     time.Date(2024, 2, 21, 7, 30, 0, 0, time.UTC),
			FirstActiveDay: "2024-01-10",
			LastActiveDay:  "2024-02-21",
			AgeDays:        41,
			CommitShare:    75,
			Label:          schema.DormantLabel,
		},
		{
			Name:           "Bob",
			Commits:        1,
			LinesAdded:     1,
			ActiveDays:     1,
			ActiveDayList:  []string{"2024-02-20"},
			FirstCommit:    time.Date(2024, 2, 20, 23, 30, 0, 0, time.UTC),
			LastCommit:     time.Date(2024, 2, 20, 23, 30, 0, 0, time.UTC),
			FirstActiveDay: "2024-02-20",
			LastActiveDay:  "2024-02-20",
			CommitShare:    25,
			Label:          schema.DormantLabel,
		},
	}
}

func sampleCommits() []schema.CommitResult {
	return []schema.CommitResult{
		{Hash: "0123456789abcdef", Author: "Alice", Date: "2024-02-21", Time: time.Date(2024, 2, 21, 7, 30, 0, 0, time.UTC), LinesAdded: 4, LinesRemoved: 1},
		{Hash: "fedcba9876543210", Author: "Bob", Date: "2024-02-20", Time: time.Date(2024, 2, 20, 23, 30, 0, 0, time.UTC), LinesAdded: 1},
	}
}

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestWriteAuthorTable(t *testing.T) {
	cfg := &contract.Config{Precision: 1, Workers: 4, CacheBackend: schema.SQLiteBackend, Width: 120}
	fmtFloat, fmtCount := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	err := writeAuthorTable(&buf, schema.RankAuthors(sampleAuthors()), cfg, fmtFloat, fmtCount, 42*time.Millisecond)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "1,234")
	assert.Contains(t, out, "75.0")
	assert.Contains(t, out, "2024-01-10")
	assert.Contains(t, out, "2024-02-21")
	assert.Contains(t, out, "Dormant")
	assert.Contains(t, out, "Showing 2 authors (commits: 4, added: 1,235, removed: 3)")
	assert.Contains(t, out, "with 4 workers. Cache backend: sqlite")
}

func TestWriteAuthorTable_DayLabelsShareBasis(t *testing.T) {
	// Committed at 2024-01-02T01:00:00+09:00, which is 2024-01-01 in UTC
	ts := time.Date(2024, 1, 2, 1, 0, 0, 0, time.FixedZone("", 9*3600)).UTC()
	authors := []schema.AuthorResult{{
		Name:           "Kenji",
		Commits:        1,
		ActiveDays:     1,
		FirstCommit:    ts,
		LastCommit:     ts,
		FirstActiveDay: "2024-01-02",
		LastActiveDay:  "2024-01-02",
		Label:          schema.DormantLabel,
	}}
	cfg := &contract.Config{Precision: 1, Workers: 1, Width: 120}
	fmtFloat, fmtCount := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	require.NoError(t, writeAuthorTable(&buf, schema.RankAuthors(authors), cfg, fmtFloat, fmtCount, time.Millisecond))

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "2024-01-02"))
	assert.NotContains(t, out, "2024-01-01")
}

func TestFormatDay(t *testing.T) {
	assert.Equal(t, "-", formatDay(""))
	assert.Equal(t, "2024-01-02", formatDay("2024-01-02"))
}

func TestWriteCSVResultsForAuthors(t *testing.T) {
	fmtFloat, _ := createFormatters(2)

	var buf bytes.Buffer
	require.NoError(t, writeCSVResultsForAuthors(&buf, schema.RankAuthors(sampleAuthors()), fmtFloat))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "rank", records[0][0])
	assert.Equal(t, "label", records[0][len(records[0])-1])
	assert.Equal(t, []string{"1", "Alice", "3", "75.00", "1234", "3", "2", "2024-01-10T08:00:00Z", "2024-02-21T07:30:00Z", "2024-01-10", "2024-02-21", "41", "Dormant"}, records[1])
	assert.Equal(t, "2", records[2][0])
}

func TestPrintAuthorResults_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "authors.json")
	cfg := &contract.Config{Output: schema.JSONOut, OutputFile: path, Precision: 1}

	require.NoError(t, PrintAuthorResults(sampleAuthors(), cfg, time.Second))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var result []map[string]any
	require.NoError(t, json.Unmarshal(data, &result))
	require.Len(t, result, 2)
	assert.Equal(t, float64(1), result[0]["rank"])
	assert.Equal(t, "Alice", result[0]["name"])
	assert.Equal(t, []any{"2024-01-10", "2024-02-21"}, result[0]["active_day_list"])
	assert.Equal(t, "Dormant", result[1]["label"])
}

func TestPrintAuthorResults_ParquetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "authors.parquet")
	cfg := &contract.Config{Output: schema.ParquetOut, OutputFile: path, Precision: 1}

	require.NoError(t, PrintAuthorResults(sampleAuthors(), cfg, time.Second))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPrintCommitResults_CSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commits.csv")
	cfg := &contract.Config{Output: schema.CSVOut, OutputFile: path, Precision: 1}

	require.NoError(t, PrintCommitResults(sampleCommits(), cfg, time.Second))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "hash,author,date,time,lines_added,lines_removed", lines[0])
	assert.Equal(t, "0123456789abcdef,Alice,2024-02-21,2024-02-21T07:30:00Z,4,1", lines[1])
}

func TestWriteCommitTable(t *testing.T) {
	cfg := &contract.Config{Precision: 1, CacheBackend: schema.NoneBackend, Width: 120}
	_, fmtCount := createFormatters(cfg.Precision)

	var buf bytes.Buffer
	require.NoError(t, writeCommitTable(&buf, sampleCommits(), cfg, fmtCount, time.Second))

	out := buf.String()
	assert.Contains(t, out, "0123456789")
	assert.NotContains(t, out, "0123456789abcdef")
	assert.Contains(t, out, "Bob")
	assert.Contains(t, out, "Showing 2 commits")
}

func TestLogRunHeader(t *testing.T) {
	var buf bytes.Buffer
	orig := headerWriter
	headerWriter = &buf
	t.Cleanup(func() { headerWriter = orig })

	LogRunHeader(&contract.Config{RepoPath: "/src/gitstats"}, "authors")
	assert.Contains(t, buf.String(), "Repo: gitstats (Report: authors)")
	assert.Contains(t, buf.String(), "Range: beginning → now")

	buf.Reset()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	LogRunHeader(&contract.Config{RepoPath: ".", StartTime: start}, "commits")
	assert.Contains(t, buf.String(), "Repo: current")
	assert.Contains(t, buf.String(), start.Format(contract.DateTimeFormat))
}

func TestGetMaxTableNameWidth(t *testing.T) {
	tests := []struct {
		width    int
		expected int
	}{
		{width: 60, expected: 12},
		{width: 110, expected: 25},
		{width: 300, expected: 40},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, GetMaxTableNameWidth(&contract.Config{Width: tt.width}))
	}
}

func TestPrintCacheStatus(t *testing.T) {
	var buf bytes.Buffer
	PrintCacheStatus(&buf, schema.CacheStatus{Backend: "none"})
	assert.Equal(t, "Cache Backend: none\nConnected: false\n", buf.String())

	buf.Reset()
	PrintCacheStatus(&buf, schema.CacheStatus{
		Backend:         "sqlite",
		Connected:       true,
		TotalEntries:    1200,
		LastEntryTime:   time.Now(),
		OldestEntryTime: time.Now().Add(-time.Hour),
		TableSizeBytes:  8192,
	})
	assert.Contains(t, buf.String(), "Total Entries: 1,200")
	assert.Contains(t, buf.String(), "Table Size: 8.2 kB")
}

func TestPrintStatsStatus(t *testing.T) {
	var buf bytes.Buffer
	PrintStatsStatus(&buf, schema.StatsStatus{
		Backend:      "sqlite",
		Connected:    true,
		TotalRuns:    2,
		LastRunID:    2,
		TotalCommits: 8,
		TableSizes:   map[string]int64{"gitstats_runs": 2, "gitstats_author_summaries": 5},
	})
	out := buf.String()
	assert.Contains(t, out, "Last Run ID: 2")
	assert.Contains(t, out, "Total Commits Reported: 8")
	assert.Less(t, strings.Index(out, "gitstats_author_summaries: 5 rows"), strings.Index(out, "gitstats_runs: 2 rows"))
}
