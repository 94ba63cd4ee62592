package iocache

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/gitstats/internal/contract"
	"github.com/huangsam/gitstats/schema"
)

// activityTable is the name of the table for commit log caching.
const activityTable = "activity_cache"

// Global Manager instance for main logic.
var (
	Manager   = &CacheStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitStores initializes the global manager with the activity cache and the stats store.
// An empty backend leaves the corresponding store unset.
func InitStores(cacheBackend schema.DatabaseBackend, cacheConnStr string, statsBackend schema.DatabaseBackend, statsConnStr string) error {
	var initErr error

	initOnce.Do(func() {
		var activity *CacheStoreImpl
		var statsStore *StatsStoreImpl
		var err error

		if cacheBackend != "" {
			activity, err = NewCacheStore(activityTable, cacheBackend, cacheConnStr)
			if err != nil {
				initErr = fmt.Errorf("failed to initialize activity caching: %w", err)
				return
			}
		}

		if statsBackend != "" {
			statsStore, err = NewStatsStore(statsBackend, statsConnStr)
			if err != nil {
				if activity != nil {
					_ = activity.Close()
				}
				initErr = fmt.Errorf("failed to initialize stats store: %w", err)
				return
			}
		}

		Manager.Lock()
		defer Manager.Unlock()
		Manager.activity = activity
		Manager.stats = statsStore
	})

	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() {
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.activity != nil {
			_ = Manager.activity.Close()
		}
		if Manager.stats != nil {
			_ = Manager.stats.Close()
		}
	})
}

// ClearCache removes cached commit logs. SQLite deletes the database file,
// MySQL and PostgreSQL drop the table and NoneBackend does nothing.
func ClearCache(backend schema.DatabaseBackend, connStr string) error {
	return clearBackend(backend, connStr, contract.GetCacheDBFilePath(), activityTable)
}

// ClearStats removes all tracked runs using the same rules as ClearCache.
func ClearStats(backend schema.DatabaseBackend, connStr string) error {
	return clearBackend(backend, connStr, contract.GetStatsDBFilePath(), authorsTable, runsTable, "schema_migrations")
}

func clearBackend(backend schema.DatabaseBackend, connStr, defaultPath string, tables ...string) error {
	switch backend {
	case schema.SQLiteBackend:
		dbFilePath := connStr
		if dbFilePath == "" {
			dbFilePath = defaultPath
		}
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		driverName, _ := driverFor(backend)
		for _, table := range tables {
			if err := clearSQLTable(driverName, connStr, quoteTableName(table, backend)); err != nil {
				return err
			}
		}
		return nil

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported backend for clearing: %s", backend)
	}
}

// clearSQLTable connects to the SQL database and drops the table if it exists.
func clearSQLTable(driverName, connStr, tableName string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	if _, err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}
	return nil
}
