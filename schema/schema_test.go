package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetActivityLabel(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	tests := []struct {
		name string
		last time.Time
		want ActivityLabel
	}{
		{"same day", now, ActiveLabel},
		{"edge of active window", now.Add(-ActiveWindowDays * day), ActiveLabel},
		{"just past active window", now.Add(-(ActiveWindowDays + 1) * day), RecentLabel},
		{"edge of recent window", now.Add(-RecentWindowDays * day), RecentLabel},
		{"old", now.Add(-400 * day), DormantLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetActivityLabel(tt.last, now))
		})
	}
}

func TestRankAuthors(t *testing.T) {
	authors := []AuthorResult{{Name: "alice"}, {Name: "bob"}}
	ranked := RankAuthors(authors)
	require.Len(t, ranked, 2)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, "alice", ranked[0].Name)
	assert.Equal(t, 2, ranked[1].Rank)
	assert.Equal(t, "bob", ranked[1].Name)
}

func TestCommitEntryRecords(t *testing.T) {
	entries := []CommitEntry{
		{Hash: "abc", Author: "alice", LinesAdded: 10, LinesRemoved: 2, Date: "2024-01-01", Timestamp: 1704067200},
		{Hash: "def", Author: "bob", LinesAdded: 0, LinesRemoved: 5, Date: "2024-01-02", Timestamp: 1704153600},
	}

	records := Records(entries)
	require.Len(t, records, 2)
	assert.Equal(t, "alice", records[0].Author())
	assert.Equal(t, 10, records[0].LinesAdded())
	assert.Equal(t, 2, records[0].LinesRemoved())
	assert.Equal(t, "2024-01-01", records[0].Date())
	assert.Equal(t, int64(1704067200), records[0].TimeStamp())
	assert.Equal(t, "bob", records[1].Author())
}

func TestValidMaps(t *testing.T) {
	assert.Contains(t, ValidOutputModes, ParquetOut)
	assert.Contains(t, ValidSortKeys, SortByDays)
	assert.Contains(t, ValidDatabaseBackends, NoneBackend)
	assert.NotContains(t, ValidOutputModes, OutputMode("xml"))
}
