package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/huangsam/gitstats/internal/contract"
	"github.com/huangsam/gitstats/internal/parquet"
	"github.com/huangsam/gitstats/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// shortHashLen is how much of a commit hash the table shows.
const shortHashLen = 10

// PrintCommitResults outputs the commit list, dispatching based on the output format configured.
func PrintCommitResults(commits []schema.CommitResult, cfg *contract.Config, duration time.Duration) error {
	_, fmtCount := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, commits)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForCommits(w, commits)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := parquet.WriteCommitsParquet(parquet.ConvertCommitResults(commits), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCommitTable(w, commits, cfg, fmtCount, duration)
		}, "Wrote table")
	}
	return nil
}

// writeCommitTable generates and writes the human-readable commit table.
func writeCommitTable(w io.Writer, commits []schema.CommitResult, cfg *contract.Config, fmtCount func(int) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Hash", "Date", "Author", "Added", "Removed"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := GetMaxTableNameWidth(cfg)
	var data [][]string
	for _, c := range commits {
		hash := c.Hash
		if len(hash) > shortHashLen {
			hash = hash[:shortHashLen]
		}
		data = append(data, []string{
			hash,
			c.Date,
			contract.TruncateName(c.Author, nameWidth),
			fmtCount(c.LinesAdded),
			fmtCount(c.LinesRemoved),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Showing %d commits\n", len(commits)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Report completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForCommits writes the commit list in CSV format.
func writeCSVResultsForCommits(w io.Writer, commits []schema.CommitResult) error {
	header := []string{"hash", "author", "date", "time", "lines_added", "lines_removed"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, c := range commits {
			rec := []string{
				c.Hash,
				c.Author,
				c.Date,
				c.Time.Format(time.RFC3339),
				strconv.Itoa(c.LinesAdded),
				strconv.Itoa(c.LinesRemoved),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
