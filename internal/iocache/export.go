package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/gitstats/internal/contract"
	"github.com/huangsam/gitstats/internal/parquet"
)

// ExportStats writes every tracked run and author summary to Parquet files
// named after prefix and reports progress to w.
func ExportStats(w io.Writer, store contract.StatsStore, prefix string) error {
	if prefix == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("stats tracking is not configured. Set --stats-backend")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get stats status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no tracked runs found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total author records: %d\n", status.TableSizes[authorsTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	authors, err := store.GetAllAuthors()
	if err != nil {
		return fmt.Errorf("failed to retrieve author summaries: %w", err)
	}

	runsFile := prefix + ".runs.parquet"
	runRows := parquet.ConvertRunRecords(runs)
	if err := parquet.WriteRunsParquet(runRows, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d runs to: %s\n", len(runRows), runsFile)

	authorsFile := prefix + ".author_summaries.parquet"
	authorRows := parquet.ConvertAuthorRecords(authors)
	if err := parquet.WriteAuthorSummariesParquet(authorRows, authorsFile); err != nil {
		return fmt.Errorf("failed to write author summaries: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d author summaries to: %s\n", len(authorRows), authorsFile)

	_, _ = fmt.Fprintln(w, "\nExport complete! The Parquet files can be read with DuckDB, Spark, Arrow or pandas.")
	return nil
}
