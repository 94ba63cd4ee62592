package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/huangsam/gitstats/internal/logger"
	"github.com/sirupsen/logrus"
)

// completionMarker is printed by text reports once rendering has finished.
var completionMarker = []byte("Report completed in")

type scenario struct {
	name string
	args []string
}

func defaultScenarios() []scenario {
	return []scenario{
		{name: "authors", args: []string{"authors"}},
		{name: "authors-by-added", args: []string{"authors", "--sort", "added", "--limit", "50"}},
		{name: "commits", args: []string{"commits", "--limit", "200"}},
	}
}

// commandArgs builds the gitstats argument list. Run tracking is always off so only the report is timed.
func (s scenario) commandArgs(backend string, workers int, start string) []string {
	args := slices.Clone(s.args)
	args = append(args,
		"--cache-backend", backend,
		"--stats-backend", "none",
		"--workers", strconv.Itoa(workers),
		"--color", "no",
	)
	if start != "" {
		args = append(args, "--start", start)
	}
	return args
}

// sample holds the timings of one scenario on one repository and backend, in run order.
type sample struct {
	repo      string
	scenario  string
	backend   string
	durations []time.Duration
	failures  int
}

// cold is the first successful run.
func (s sample) cold() time.Duration {
	if len(s.durations) == 0 {
		return 0
	}
	return s.durations[0]
}

func (s sample) median() time.Duration {
	if len(s.durations) == 0 {
		return 0
	}
	sorted := slices.Clone(s.durations)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// warmMean averages every successful run after the first.
func (s sample) warmMean() time.Duration {
	if len(s.durations) < 2 {
		return 0
	}
	var total time.Duration
	for _, d := range s.durations[1:] {
		total += d
	}
	return total / time.Duration(len(s.durations)-1)
}

type runner struct {
	bin     string
	timeout time.Duration
}

func (r *runner) measure(ctx context.Context, repo, name, backend string, args []string, runs int) sample {
	s := sample{repo: filepath.Base(repo), scenario: name, backend: backend}
	log := logger.WithFields(logrus.Fields{"repo": s.repo, "scenario": name, "backend": backend})

	for i := range runs {
		elapsed, err := r.invoke(ctx, repo, args)
		if err != nil {
			s.failures++
			log.WithError(err).Warnf("run %d failed", i+1)
			continue
		}
		s.durations = append(s.durations, elapsed)
		log.Debugf("run %d took %v", i+1, elapsed)
	}
	log.Infof("median %v over %d runs", s.median().Round(time.Millisecond), len(s.durations))
	return s
}

func (r *runner) invoke(ctx context.Context, repo string, args []string) (time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.bin, args...)
	cmd.Dir = repo
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return 0, fmt.Errorf("timed out after %v", r.timeout)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}
	if !reportCompleted(stdout.Bytes()) {
		return 0, errors.New("report did not complete")
	}
	return elapsed, nil
}

func (r *runner) clearCache(ctx context.Context, repo string) {
	cmd := exec.CommandContext(ctx, r.bin, "cache", "clear")
	cmd.Dir = repo
	if out, err := cmd.CombinedOutput(); err != nil {
		logger.WithError(err).Warnf("cache clear failed: %s", bytes.TrimSpace(out))
	}
}

func reportCompleted(out []byte) bool {
	return bytes.Contains(out, completionMarker)
}

func checkRepos(repos []string) error {
	for _, repo := range repos {
		info, err := os.Stat(filepath.Join(repo, ".git"))
		if err != nil || !info.IsDir() {
			return fmt.Errorf("%s is not a git checkout", repo)
		}
	}
	return nil
}

func resolveBinary(bin string) (string, error) {
	path, err := exec.LookPath(bin)
	if err != nil {
		return "", fmt.Errorf("gitstats binary %q not found: %w", bin, err)
	}
	return path, nil
}
