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

// statsSetup loads minimal configuration needed for run tracking operations.
func statsSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("stats-backend"))
	if backend == "" {
		backend = schema.NoneBackend
	}
	connStr := viper.GetString("stats-db-connect")

	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid stats backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.StatsBackend = backend
	cfg.StatsDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// statsStoreSetup runs statsSetup and opens the stats store. The migrate command skips this
// so that it can run against an empty database.
func statsStoreSetup(_ *cobra.Command, _ []string) error {
	if err := statsSetup(); err != nil {
		return err
	}
	if err := iocache.InitStores("", "", cfg.StatsBackend, cfg.StatsDBConnect); err != nil {
		return fmt.Errorf("failed to initialize stats store: %w", err)
	}
	return nil
}

// statsCmd focused on run tracking data.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Manage tracked report runs and exports",
	Long: `Manage the history of author reports.

When --stats-backend is set, every authors run stores:
- Run metadata (repository, start and end time, duration, configuration)
- One summary row per author (commits, lines, active days)

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, default)

Examples:
  # Check tracking status
  gitstats stats status --stats-backend sqlite

  # Export for analysis in DuckDB
  gitstats stats export --stats-backend sqlite --output-file history`,
}

// statsClearCmd clears the run tracking data.
var statsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all tracked runs and author summaries",
	Long: `Delete all stored runs and author summaries.

WARNING: This action cannot be undone. Consider exporting data first.`,
	PreRunE: func(_ *cobra.Command, _ []string) error { return statsSetup() },
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := iocache.ClearStats(cfg.StatsBackend, cfg.StatsDBConnect); err != nil {
			return fmt.Errorf("failed to clear stats data: %w", err)
		}
		fmt.Println("Stats data cleared successfully.")
		return nil
	},
}

// statsStatusCmd shows run tracking status.
var statsStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display run tracking statistics and connection details",
	PreRunE: statsStoreSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		store := iocache.Manager.GetStatsStore()
		if store == nil {
			return fmt.Errorf("stats store is not initialized")
		}
		status, err := store.GetStatus()
		if err != nil {
			return fmt.Errorf("failed to get stats status: %w", err)
		}
		outwriter.PrintStatsStatus(os.Stdout, status)
		return nil
	},
}

// statsExportCmd exports tracked data to Parquet files.
var statsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tracked runs and author summaries to Parquet",
	Long: `Export all tracked data to two Parquet files:
- <output-file>.runs.parquet
- <output-file>.author_summaries.parquet

Requires: --output-file parameter

Examples:
  gitstats stats export --stats-backend sqlite --output-file history
  duckdb -c "SELECT * FROM read_parquet('history.runs.parquet') LIMIT 10"`,
	PreRunE: statsStoreSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := iocache.ExportStats(os.Stdout, iocache.Manager.GetStatsStore(), cfg.OutputFile); err != nil {
			return fmt.Errorf("failed to export stats data: %w", err)
		}
		return nil
	},
}

// statsMigrateCmd runs database migrations for the stats store.
var statsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage schema versions for the run tracking store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  gitstats stats migrate --stats-backend sqlite

  # Rollback everything
  gitstats stats migrate --stats-backend sqlite --target-version 0`,
	PreRunE: func(_ *cobra.Command, _ []string) error { return statsSetup() },
	RunE: func(_ *cobra.Command, _ []string) error {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateStats(os.Stdout, cfg.StatsBackend, cfg.StatsDBConnect, targetVersion); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		return nil
	},
}
