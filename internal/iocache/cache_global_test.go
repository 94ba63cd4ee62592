package iocache

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/gitstats/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheStoreManager_UnsetStoresAreNil(t *testing.T) {
	mgr := &CacheStoreManager{}
	assert.Nil(t, mgr.GetActivityStore())
	assert.Nil(t, mgr.GetStatsStore())

	mgr.activity = newTestCacheStore(t)
	mgr.stats = newTestStatsStore(t)
	assert.NotNil(t, mgr.GetActivityStore())
	assert.NotNil(t, mgr.GetStatsStore())
}

func TestClearCache_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewCacheStore(activityTable, schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	require.NoError(t, ClearCache(schema.SQLiteBackend, dbPath))
	_, err = os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err))

	// Clearing twice is fine
	assert.NoError(t, ClearCache(schema.SQLiteBackend, dbPath))
}

func TestClearStats_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "stats.db")
	store, err := NewStatsStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	require.NoError(t, ClearStats(schema.SQLiteBackend, dbPath))
	_, err = os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err))
}

func TestClear_NoneAndUnknown(t *testing.T) {
	assert.NoError(t, ClearCache(schema.NoneBackend, ""))
	assert.NoError(t, ClearStats(schema.NoneBackend, ""))
	assert.Error(t, ClearCache(schema.DatabaseBackend("oracle"), ""))
}

func TestExportStats(t *testing.T) {
	store := newTestStatsStore(t)
	var out bytes.Buffer
	prefix := filepath.Join(t.TempDir(), "export")

	err := ExportStats(&out, store, prefix)
	assert.ErrorContains(t, err, "no tracked runs")

	runID, err := store.BeginRun("/repo", time.Now(), nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordAuthor(runID, sampleSummary()))
	require.NoError(t, store.EndRun(runID, time.Now(), 2, 1))

	require.NoError(t, ExportStats(&out, store, prefix))
	assert.Contains(t, out.String(), "Exported 1 runs")
	assert.Contains(t, out.String(), "Exported 1 author summaries")
	for _, suffix := range []string{".runs.parquet", ".author_summaries.parquet"} {
		info, err := os.Stat(prefix + suffix)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestExportStats_InvalidInputs(t *testing.T) {
	assert.Error(t, ExportStats(&bytes.Buffer{}, newTestStatsStore(t), ""))
	assert.Error(t, ExportStats(&bytes.Buffer{}, nil, "out"))
}
