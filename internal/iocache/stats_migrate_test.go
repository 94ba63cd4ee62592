package iocache

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/gitstats/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateStats_NoneBackend(t *testing.T) {
	err := MigrateStats(&bytes.Buffer{}, schema.NoneBackend, "", -1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrations are not supported for NoneBackend")
}

func TestMigrateStats_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_migration.db")
	var out bytes.Buffer

	require.NoError(t, MigrateStats(&out, schema.SQLiteBackend, dbPath, -1))
	assert.Contains(t, out.String(), "Successfully migrated from version 0 to version 1")
	_, err := os.Stat(dbPath)
	assert.NoError(t, err)

	out.Reset()
	require.NoError(t, MigrateStats(&out, schema.SQLiteBackend, dbPath, -1))
	assert.Contains(t, out.String(), "No migration needed")

	out.Reset()
	require.NoError(t, MigrateStats(&out, schema.SQLiteBackend, dbPath, 1))
	assert.Contains(t, out.String(), "already at version 1")

	out.Reset()
	require.NoError(t, MigrateStats(&out, schema.SQLiteBackend, dbPath, 0))
	assert.Contains(t, out.String(), "rolled back from version 1 to version 0")

	out.Reset()
	require.NoError(t, MigrateStats(&out, schema.SQLiteBackend, dbPath, 1))
	assert.Contains(t, out.String(), "to version 1")
}

func TestMigrateStats_SQLiteInMemory(t *testing.T) {
	require.NoError(t, MigrateStats(&bytes.Buffer{}, schema.SQLiteBackend, ":memory:", -1))
}

func TestMigrateStats_UnknownVersion(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_migration.db")
	assert.Error(t, MigrateStats(&bytes.Buffer{}, schema.SQLiteBackend, dbPath, 42))
}

func TestMigrationFilesPerDialect(t *testing.T) {
	for _, backend := range []schema.DatabaseBackend{schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend} {
		for _, direction := range []string{"up", "down"} {
			_, err := migrationsFS.ReadFile("migrations/" + string(backend) + "/000001_create_stats_tables." + direction + ".sql")
			assert.NoError(t, err, "%s %s", backend, direction)
		}
	}
}
