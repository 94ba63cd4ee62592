package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/huangsam/gitstats/internal/contract"
	"github.com/huangsam/gitstats/internal/parquet"
	"github.com/huangsam/gitstats/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintAuthorResults outputs the author report, dispatching based on the output format configured.
func PrintAuthorResults(authors []schema.AuthorResult, cfg *contract.Config, duration time.Duration) error {
	ranked := schema.RankAuthors(authors)
	fmtFloat, fmtCount := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, ranked)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForAuthors(w, ranked, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := parquet.WriteAuthorsParquet(parquet.ConvertAuthorResults(ranked), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAuthorTable(w, ranked, cfg, fmtFloat, fmtCount, duration)
		}, "Wrote table")
	}
	return nil
}

// writeAuthorTable generates and writes the human-readable author table.
func writeAuthorTable(w io.Writer, authors []schema.RankedAuthor, cfg *contract.Config, fmtFloat func(float64) string, fmtCount func(int) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Author", "Commits", "Share %", "Added", "Removed", "Days", "First Active", "Last Active", "Seen", "Label"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := GetMaxTableNameWidth(cfg)
	var data [][]string
	var totalCommits, totalAdded, totalRemoved int
	for _, a := range authors {
		data = append(data, []string{
			strconv.Itoa(a.Rank),
			contract.TruncateName(a.Name, nameWidth),
			fmtCount(a.Commits),
			fmtFloat(a.CommitShare),
			fmtCount(a.LinesAdded),
			fmtCount(a.LinesRemoved),
			fmtCount(a.ActiveDays),
			formatDay(a.FirstActiveDay),
			formatDay(a.LastActiveDay),
			humanize.Time(a.LastCommit),
			contract.GetColorLabel(a.Label),
		})
		totalCommits += a.Commits
		totalAdded += a.LinesAdded
		totalRemoved += a.LinesRemoved
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Showing %d authors (commits: %s, added: %s, removed: %s)\n",
		len(authors), fmtCount(totalCommits), fmtCount(totalAdded), fmtCount(totalRemoved)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Report completed in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForAuthors writes the author report in CSV format.
func writeCSVResultsForAuthors(w io.Writer, authors []schema.RankedAuthor, fmtFloat func(float64) string) error {
	header := []string{
		"rank",
		"author",
		"commits",
		"commit_share",
		"lines_added",
		"lines_removed",
		"active_days",
		"first_commit",
		"last_commit",
		"first_active_day",
		"last_active_day",
		"age_days",
		"label",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, a := range authors {
			rec := []string{
				strconv.Itoa(a.Rank),
				a.Name,
				strconv.Itoa(a.Commits),
				fmtFloat(a.CommitShare),
				strconv.Itoa(a.LinesAdded),
				strconv.Itoa(a.LinesRemoved),
				strconv.Itoa(a.ActiveDays),
				a.FirstCommit.Format(time.RFC3339),
				a.LastCommit.Format(time.RFC3339),
				a.FirstActiveDay,
				a.LastActiveDay,
				strconv.Itoa(a.AgeDays),
				string(a.Label),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
