package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/huangsam/gitstats/core/stats"
	"github.com/huangsam/gitstats/internal/contract"
	"github.com/huangsam/gitstats/internal/iocache"
	"github.com/huangsam/gitstats/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const sampleLog = `--c1|Alice Example|1704873600|2024-01-10T09:00:00+01:00
3	0	a.txt
10	2	src/main.go

--c2|Bob Example|1708471800|2024-02-20T18:30:00-05:00
1	0	b.txt

--c3|Alice Example|1708587000|2024-02-21T23:30:00-08:00
5	5	src/main.go

--c4|Carol|1708646400|2024-02-23T00:00:00Z
40	1	docs/guide.txt
`

func testConfig() *contract.Config {
	return &contract.Config{
		RepoPath:    "/repo",
		ResultLimit: 10,
		Workers:     2,
		SortBy:      schema.SortByCommits,
		Output:      schema.TextOut,
		Precision:   1,
	}
}

// setupMocks returns a git client serving sampleLog and a manager without an activity cache.
func setupMocks(ctx context.Context, statsStore contract.StatsStore) (*contract.MockGitClient, *iocache.MockCacheManager) {
	client := &contract.MockGitClient{}
	client.On("GetCommitLog", ctx, "/repo", time.Time{}, time.Time{}).Return([]byte(sampleLog), nil)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetActivityStore").Return(nil)
	mgr.On("GetStatsStore").Return(statsStore)
	return client, mgr
}

func TestRunAuthors(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	client, mgr := setupMocks(ctx, nil)

	results, err := runAuthors(ctx, testConfig(), client, mgr)
	require.NoError(t, err)
	require.Len(t, results, 3)

	alice := results[0]
	assert.Equal(t, "Alice Example", alice.Name)
	assert.Equal(t, 2, alice.Commits)
	assert.Equal(t, 18, alice.LinesAdded)
	assert.Equal(t, 7, alice.LinesRemoved)
	assert.Equal(t, 2, alice.ActiveDays)
	assert.Equal(t, []string{"2024-01-10", "2024-02-21"}, alice.ActiveDayList)
	assert.Equal(t, "2024-01-10", alice.FirstActiveDay)
	assert.Equal(t, "2024-02-21", alice.LastActiveDay)
	assert.InDelta(t, 50.0, alice.CommitShare, 0.001)
	assert.Equal(t, 42, alice.AgeDays)
	assert.Equal(t, schema.DormantLabel, alice.Label)

	// Ties on commits fall back to name order
	assert.Equal(t, "Bob Example", results[1].Name)
	assert.Equal(t, "Carol", results[2].Name)

	client.AssertExpectations(t)
	mgr.AssertExpectations(t)
}

func TestRunAuthors_SortAndLimit(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	client, mgr := setupMocks(ctx, nil)

	cfg := testConfig()
	cfg.SortBy = schema.SortByAdded
	cfg.ResultLimit = 1

	results, err := runAuthors(ctx, cfg, client, mgr)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Carol", results[0].Name)
}

func TestRunAuthors_Filter(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	client, mgr := setupMocks(ctx, nil)

	cfg := testConfig()
	cfg.AuthorFilter = "EXAMPLE"

	results, err := runAuthors(ctx, cfg, client, mgr)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Contains(t, r.Name, "Example")
	}
	// Share is computed against all commits, not only the filtered ones
	assert.InDelta(t, 25.0, results[1].CommitShare, 0.001)
}

func TestRunAuthors_RecordsRun(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	store := &iocache.MockStatsStore{}
	store.On("BeginRun", "/repo", mock.AnythingOfType("time.Time"), mock.Anything).Return(int64(7), nil)
	store.On("RecordAuthor", int64(7), mock.MatchedBy(func(a *stats.AuthorSummary) bool { return a.Name() != "" })).Return(nil).Times(3)
	store.On("EndRun", int64(7), mock.AnythingOfType("time.Time"), 4, 3).Return(nil)

	client, mgr := setupMocks(ctx, store)

	_, err := runAuthors(ctx, testConfig(), client, mgr)
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestRunAuthors_TrackingFailureDoesNotAbort(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	store := &iocache.MockStatsStore{}
	store.On("BeginRun", "/repo", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))

	client, mgr := setupMocks(ctx, store)

	results, err := runAuthors(ctx, testConfig(), client, mgr)
	require.NoError(t, err)
	assert.Len(t, results, 3)
	store.AssertNotCalled(t, "RecordAuthor", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "EndRun", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRunAuthors_NoCommits(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	store := &iocache.MockStatsStore{}
	client := &contract.MockGitClient{}
	client.On("GetCommitLog", ctx, "/repo", time.Time{}, time.Time{}).Return([]byte(""), nil)
	mgr := &iocache.MockCacheManager{}
	mgr.On("GetActivityStore").Return(nil)
	mgr.On("GetStatsStore").Return(store).Maybe()

	_, err := runAuthors(ctx, testConfig(), client, mgr)
	assert.ErrorIs(t, err, ErrNoCommits)
	store.AssertNotCalled(t, "BeginRun", mock.Anything, mock.Anything, mock.Anything)
}

func TestRunAuthors_GitError(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	store := &iocache.MockStatsStore{}
	client := &contract.MockGitClient{}
	client.On("GetCommitLog", ctx, "/repo", time.Time{}, time.Time{}).Return(nil, errors.New("not a repo"))
	mgr := &iocache.MockCacheManager{}
	mgr.On("GetActivityStore").Return(nil)
	mgr.On("GetStatsStore").Return(store).Maybe()

	_, err := runAuthors(ctx, testConfig(), client, mgr)
	assert.EqualError(t, err, "not a repo")
	store.AssertNotCalled(t, "BeginRun", mock.Anything, mock.Anything, mock.Anything)
}

func TestRunCommits(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	client, mgr := setupMocks(ctx, nil)

	results, err := runCommits(ctx, testConfig(), client, mgr)
	require.NoError(t, err)
	require.Len(t, results, 4)

	// Newest first
	assert.Equal(t, []string{"c4", "c3", "c2", "c1"}, []string{results[0].Hash, results[1].Hash, results[2].Hash, results[3].Hash})
	assert.Equal(t, "2024-02-21", results[1].Date)
	assert.Equal(t, time.Unix(1708587000, 0).UTC(), results[1].Time)
	assert.Equal(t, 5, results[1].LinesAdded)
	assert.Equal(t, 5, results[1].LinesRemoved)
}

func TestRunCommits_AuthorFilterAndLimit(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	client, mgr := setupMocks(ctx, nil)

	cfg := testConfig()
	cfg.AuthorFilter = "alice"
	cfg.ResultLimit = 1

	results, err := runCommits(ctx, cfg, client, mgr)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "c3", results[0].Hash)
}

func TestBuildAuthorResult(t *testing.T) {
	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(2024, 1, 11, 12, 0, 0, 0, time.UTC)
	a := stats.NewAuthor("alice", 4, 20, "2024-01-01", 3, first.Unix(), last.Unix())
	stats.AddActiveDay(a, "2024-01-11")

	now := last.Add(10 * 24 * time.Hour)
	r := buildAuthorResult(a, 12, now)

	assert.Equal(t, "alice", r.Name)
	assert.Equal(t, 3, r.Commits)
	assert.Equal(t, 20, r.LinesAdded)
	assert.Equal(t, 4, r.LinesRemoved)
	assert.Equal(t, 2, r.ActiveDays)
	assert.Equal(t, 10, r.AgeDays)
	assert.InDelta(t, 25.0, r.CommitShare, 0.001)
	assert.Equal(t, schema.ActiveLabel, r.Label)
	assert.Empty(t, r.FirstActiveDay)
	assert.Empty(t, r.LastActiveDay)
	assert.Equal(t, first, r.FirstCommit)

	assert.Zero(t, buildAuthorResult(a, 0, now).CommitShare)
}

func TestContextSuppressHeader(t *testing.T) {
	ctx := context.Background()
	assert.False(t, shouldSuppressHeader(ctx))
	assert.True(t, shouldSuppressHeader(WithSuppressHeader(ctx)))
	assert.False(t, shouldSuppressHeader(context.WithValue(ctx, suppressHeaderKey, "yes")))
}
