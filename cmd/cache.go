package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/gitstats/internal/contract"
	"github.com/huangsam/gitstats/internal/iocache"
	"github.com/huangsam/gitstats/internal/outwriter"
	"github.com/huangsam/gitstats/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")

	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr
	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on cache management.
//
// Note: Cache subcommands skip the full sharedSetup. They need no Git repository.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the commit log cache",
	Long: `Manage the cache of parsed commit logs that speeds up repeated reports.

Entries are keyed by repository, HEAD, time window and excludes, so a new commit
or a different window never reuses a stale entry.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Examples:
  # Check cache status
  gitstats cache status

  # Clear cache after a history rewrite
  gitstats cache clear`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached commit logs",
	Long: `Delete all cached commit logs from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache table

Examples:
  # Clear MySQL cache (set connection string via env variable)
  GITSTATS_CACHE_BACKEND=mysql GITSTATS_CACHE_DB_CONNECT="..." gitstats cache clear`,
	PreRunE: cacheSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := iocache.ClearCache(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		fmt.Println("Cache cleared successfully.")
		return nil
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	PreRunE: func(_ *cobra.Command, _ []string) error {
		if err := cacheSetup(); err != nil {
			return err
		}
		return iocache.InitStores(cfg.CacheBackend, cfg.CacheDBConnect, "", "")
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		store := iocache.Manager.GetActivityStore()
		if store == nil {
			return fmt.Errorf("cache store is not initialized")
		}
		status, err := store.GetStatus()
		if err != nil {
			return fmt.Errorf("failed to get cache status: %w", err)
		}
		outwriter.PrintCacheStatus(os.Stdout, status)
		return nil
	},
}
