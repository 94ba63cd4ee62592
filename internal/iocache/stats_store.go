package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/gitstats/core/stats"
	"github.com/huangsam/gitstats/internal/contract"
	"github.com/huangsam/gitstats/schema"
)

// Table names for run tracking.
const (
	runsTable    = "gitstats_runs"
	authorsTable = "gitstats_author_summaries"
)

// StatsStoreImpl implements the StatsStore interface.
type StatsStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.StatsStore = &StatsStoreImpl{} // Compile-time check

// NewStatsStore creates a new StatsStoreImpl with the specified backend.
// NoneBackend yields a store that records nothing.
func NewStatsStore(backend schema.DatabaseBackend, connStr string) (*StatsStoreImpl, error) {
	if backend == schema.NoneBackend {
		return &StatsStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr, contract.GetStatsDBFilePath())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize stats store: %w", err)
	}

	if err := createStatsTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create stats tables: %w", err)
	}

	return &StatsStoreImpl{db: db, backend: backend}, nil
}

// createStatsTables applies the initial schema statement by statement.
// Every statement is idempotent so this is safe on a migrated database.
func createStatsTables(db *sql.DB, backend schema.DatabaseBackend) error {
	ddl, err := migrationsFS.ReadFile(fmt.Sprintf("migrations/%s/000001_create_stats_tables.up.sql", backend))
	if err != nil {
		return err
	}
	for stmt := range strings.SplitSeq(string(ddl), ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// BeginRun creates a new run and returns its unique ID.
func (ss *StatsStoreImpl) BeginRun(repoPath string, startTime time.Time, configParams map[string]any) (int64, error) {
	if ss.db == nil {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	table := quoteTableName(runsTable, ss.backend)
	p := placeholders(ss.backend, 3)
	query := fmt.Sprintf(`INSERT INTO %s (repo_path, start_time, config_params) VALUES (%s, %s, %s)`, append([]any{table}, p...)...)
	args := []any{repoPath, formatTime(startTime, ss.backend), string(configJSON)}

	var runID int64
	if ss.backend == schema.PostgreSQLBackend {
		err = ss.db.QueryRow(query+" RETURNING run_id", args...).Scan(&runID)
	} else {
		var result sql.Result
		result, err = ss.db.Exec(query, args...)
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	return runID, nil
}

// EndRun stamps the run with its end time, duration and totals.
func (ss *StatsStoreImpl) EndRun(runID int64, endTime time.Time, totalCommits, totalAuthors int) error {
	if ss.db == nil {
		return nil
	}

	table := quoteTableName(runsTable, ss.backend)
	p := placeholders(ss.backend, 5)

	var start timeScanner
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = %s`, table, p[0])
	if err := ss.db.QueryRow(query, runID).Scan(&start); err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}
	durationMs := endTime.Sub(start.Time).Milliseconds()

	update := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, total_commits = %s, total_authors = %s WHERE run_id = %s`, append([]any{table}, p...)...)
	if _, err := ss.db.Exec(update, formatTime(endTime, ss.backend), durationMs, totalCommits, totalAuthors, runID); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

// RecordAuthor stores one author summary for a run.
func (ss *StatsStoreImpl) RecordAuthor(runID int64, author *stats.AuthorSummary) error {
	if ss.db == nil {
		return nil
	}

	days, err := json.Marshal(author.ActiveDays())
	if err != nil {
		return fmt.Errorf("failed to marshal active days: %w", err)
	}

	p := placeholders(ss.backend, 9)
	query := fmt.Sprintf(`INSERT INTO %s (run_id, author_name, lines_added, lines_removed, commits,
		active_days, first_commit_ts, last_commit_ts, last_active_day)
		VALUES (%s, %s, %s, %s, %s, %s, %s, %s, %s)`, append([]any{quoteTableName(authorsTable, ss.backend)}, p...)...)

	_, err = ss.db.Exec(query, runID, author.Name(), author.LinesAdded, author.LinesRemoved, author.Commits,
		string(days), author.FirstCommitTS(), author.LastCommitTS(), author.LastActiveDay())
	if err != nil {
		return fmt.Errorf("failed to insert author summary: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (ss *StatsStoreImpl) Close() error {
	if ss.db != nil {
		return ss.db.Close()
	}
	return nil
}

// GetStatus returns run counts, the run time range and row counts per table.
func (ss *StatsStoreImpl) GetStatus() (schema.StatsStatus, error) {
	status := schema.StatsStatus{
		Backend:    string(ss.backend),
		Connected:  ss.db != nil,
		TableSizes: make(map[string]int64),
	}
	if ss.db == nil {
		return status, nil
	}

	runs := quoteTableName(runsTable, ss.backend)
	if err := ss.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runs)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		var last, oldest timeScanner
		query := fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", runs)
		if err := ss.db.QueryRow(query).Scan(&status.LastRunID, &last); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		status.LastRunTime = last.Time

		query = fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", runs)
		if err := ss.db.QueryRow(query).Scan(&oldest); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		status.OldestRunTime = oldest.Time

		query = fmt.Sprintf("SELECT COALESCE(SUM(total_commits), 0) FROM %s", runs)
		if err := ss.db.QueryRow(query).Scan(&status.TotalCommits); err != nil {
			return status, fmt.Errorf("failed to get total commits: %w", err)
		}
	}

	for _, table := range []string{runsTable, authorsTable} {
		var count int64
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, ss.backend))
		if err := ss.db.QueryRow(query).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllRuns retrieves all runs ordered by ID.
func (ss *StatsStoreImpl) GetAllRuns() ([]schema.RunRecord, error) {
	if ss.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, repo_path, start_time, end_time, run_duration_ms, total_commits, total_authors, config_params
		FROM %s ORDER BY run_id`, quoteTableName(runsTable, ss.backend))
	rows, err := ss.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var record schema.RunRecord
		var start, end timeScanner
		var totalCommits, totalAuthors sql.NullInt64
		if err := rows.Scan(&record.RunID, &record.RepoPath, &start, &end, &record.RunDurationMs,
			&totalCommits, &totalAuthors, &record.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		record.StartTime = start.Time
		if end.Valid {
			endTime := end.Time
			record.EndTime = &endTime
		}
		record.TotalCommits = int(totalCommits.Int64)
		record.TotalAuthors = int(totalAuthors.Int64)
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return results, nil
}

// GetAllAuthors retrieves all author summaries ordered by run and name.
func (ss *StatsStoreImpl) GetAllAuthors() ([]schema.AuthorRecord, error) {
	if ss.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, author_name, lines_added, lines_removed, commits,
		active_days, first_commit_ts, last_commit_ts, last_active_day
		FROM %s ORDER BY run_id, author_name`, quoteTableName(authorsTable, ss.backend))
	rows, err := ss.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query author summaries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.AuthorRecord
	for rows.Next() {
		var record schema.AuthorRecord
		var days string
		if err := rows.Scan(&record.RunID, &record.AuthorName, &record.LinesAdded, &record.LinesRemoved, &record.Commits,
			&days, &record.FirstCommitTS, &record.LastCommitTS, &record.LastActiveDay); err != nil {
			return nil, fmt.Errorf("failed to scan author summary: %w", err)
		}
		if err := json.Unmarshal([]byte(days), &record.ActiveDays); err != nil {
			return nil, fmt.Errorf("failed to decode active days for %q: %w", record.AuthorName, err)
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating author summaries: %w", err)
	}
	return results, nil
}
