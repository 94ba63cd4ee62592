package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

var resultHeader = []string{"repo", "scenario", "backend", "runs", "failures", "cold_s", "median_s", "warm_mean_s"}

func seconds(d time.Duration) string {
	if d == 0 {
		return "-"
	}
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}

func sampleRow(s sample) []string {
	return []string{
		s.repo,
		s.scenario,
		s.backend,
		strconv.Itoa(len(s.durations)),
		strconv.Itoa(s.failures),
		seconds(s.cold()),
		seconds(s.median()),
		seconds(s.warmMean()),
	}
}

func writeCSV(path string, samples []sample) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create results file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(resultHeader); err != nil {
		return err
	}
	for _, s := range samples {
		if err := w.Write(sampleRow(s)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func renderSummary(out io.Writer, samples []sample) error {
	table := tablewriter.NewWriter(out)
	table.Header([]string{"Repo", "Scenario", "Backend", "Runs", "Failures", "Cold (s)", "Median (s)", "Warm mean (s)"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	for _, s := range samples {
		if err := table.Append(sampleRow(s)); err != nil {
			return err
		}
	}
	return table.Render()
}
