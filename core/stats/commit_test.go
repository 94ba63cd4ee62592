package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewCommit(t *testing.T) {
	ts := time.Now().Unix()
	commit := NewCommit("Test Author", 1, 2, "2019.03.15", ts)

	assert.Equal(t, "Test Author", commit.Author())
	assert.Equal(t, 1, commit.LinesAdded())
	assert.Equal(t, 2, commit.LinesRemoved())
	assert.Equal(t, "2019.03.15", commit.Date())
	assert.Equal(t, ts, commit.TimeStamp())
	assert.Equal(t, time.Unix(ts, 0).UTC(), commit.Time())
}

func TestNewCommit_PassesInputThrough(t *testing.T) {
	// Negative counts and an empty name are stored verbatim
	commit := NewCommit("", -3, -4, "not-a-date", -1)

	assert.Equal(t, "", commit.Author())
	assert.Equal(t, -3, commit.LinesAdded())
	assert.Equal(t, -4, commit.LinesRemoved())
	assert.Equal(t, "not-a-date", commit.Date())
	assert.Equal(t, int64(-1), commit.TimeStamp())
}
