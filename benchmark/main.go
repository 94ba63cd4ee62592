// Command benchmark times gitstats reports against a set of local repositories.
//
// Every scenario runs once per cache backend. With the sqlite backend the cache is cleared
// first, so the first run is cold and the rest are warm.
//
// Usage: go run ./benchmark [flags] repo-dir...
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/huangsam/gitstats/internal/logger"
	"github.com/spf13/cobra"
)

type options struct {
	binary   string
	runs     int
	workers  int
	timeout  time.Duration
	start    string
	outFile  string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:          "benchmark repo-dir...",
		Short:        "Time gitstats reports across repositories and cache backends",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := logger.Init(opts.logLevel); err != nil {
				return err
			}
			if opts.outFile == "" {
				opts.outFile = filepath.Join(os.TempDir(), fmt.Sprintf("gitstats_bench_%s.csv", time.Now().Format("20060102_150405")))
			}
			return run(cmd.Context(), opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.binary, "binary", "gitstats", "gitstats binary to benchmark")
	cmd.Flags().IntVar(&opts.runs, "runs", 4, "Runs per scenario and backend")
	cmd.Flags().IntVar(&opts.workers, "workers", 8, "Value passed to --workers")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 5*time.Minute, "Timeout for a single run")
	cmd.Flags().StringVar(&opts.start, "start", "", "Value passed to --start, e.g. '1 year ago'")
	cmd.Flags().StringVar(&opts.outFile, "out", "", "CSV results path (default: temp dir)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "Log level for progress output")
	return cmd
}

func run(ctx context.Context, opts options, repos []string) error {
	if err := checkRepos(repos); err != nil {
		return err
	}
	bin, err := resolveBinary(opts.binary)
	if err != nil {
		return err
	}

	r := &runner{bin: bin, timeout: opts.timeout}
	var samples []sample
	for _, repo := range repos {
		for _, sc := range defaultScenarios() {
			for _, backend := range []string{"none", "sqlite"} {
				if backend == "sqlite" {
					r.clearCache(ctx, repo)
				}
				args := sc.commandArgs(backend, opts.workers, opts.start)
				samples = append(samples, r.measure(ctx, repo, sc.name, backend, args, opts.runs))
			}
		}
	}

	if err := writeCSV(opts.outFile, samples); err != nil {
		return err
	}
	logger.Infof("results saved to %s", opts.outFile)
	return renderSummary(os.Stdout, samples)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
