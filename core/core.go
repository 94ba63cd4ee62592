// Package core has the orchestration logic for contributor reports.
package core

import (
	"context"
	"errors"
	"time"

	"github.com/huangsam/gitstats/internal/contract"
	"github.com/huangsam/gitstats/internal/outwriter"
	"github.com/huangsam/gitstats/schema"
)

// ErrNoCommits is returned when the selected window has no commits.
var ErrNoCommits = errors.New("no commits found in the selected time window")

// ExecuteAuthors builds the author report and writes it in the configured format.
func ExecuteAuthors(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	results, duration, err := GetAuthorResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.PrintAuthorResults(results, cfg, duration)
}

// GetAuthorResults builds the ranked author report without printing it.
func GetAuthorResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.AuthorResult, time.Duration, error) {
	start := time.Now()
	results, err := runAuthors(ctx, cfg, contract.NewLocalGitClient(), mgr)
	return results, time.Since(start), err
}

// ExecuteCommits builds the commit list and writes it in the configured format.
func ExecuteCommits(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	results, duration, err := GetCommitResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.PrintCommitResults(results, cfg, duration)
}

// GetCommitResults builds the newest-first commit list without printing it.
func GetCommitResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.CommitResult, time.Duration, error) {
	start := time.Now()
	results, err := runCommits(ctx, cfg, contract.NewLocalGitClient(), mgr)
	return results, time.Since(start), err
}
