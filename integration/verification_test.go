//go:build integration

// Package integration contains integration tests for gitstats.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags integration ./integration
package integration

import (
	"encoding/json"
	"os/exec"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authorRow struct {
	Name       string `json:"name"`
	Commits    int    `json:"commits"`
	ActiveDays int    `json:"active_days"`
}

// gitCount runs a git command that prints a single integer.
func gitCount(t *testing.T, dir string, args ...string) int {
	t.Helper()
	out, err := exec.Command("git", append([]string{"-C", dir}, args...)...).Output()
	require.NoError(t, err)
	n, err := strconv.Atoi(strings.TrimSpace(string(out)))
	require.NoError(t, err)
	return n
}

// verifyRepo checks that per-author commits add up to the total reported by git.
func verifyRepo(t *testing.T, repoDir string) {
	out, err := runGitstats(t, repoDir, "authors", "--output", "json", "--limit", "1000", "--cache-backend", "none")
	require.NoError(t, err)

	var rows []authorRow
	require.NoError(t, json.Unmarshal(out, &rows))
	require.NotEmpty(t, rows)

	total := 0
	for _, r := range rows {
		assert.Positive(t, r.Commits, "author %s", r.Name)
		assert.LessOrEqual(t, r.ActiveDays, r.Commits, "author %s", r.Name)
		total += r.Commits
	}
	assert.Equal(t, gitCount(t, repoDir, "rev-list", "--count", "HEAD"), total)
}

// TestAuthorsVerification runs gitstats on this repository.
func TestAuthorsVerification(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	repoPath, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		t.Skip("not inside a git repository")
	}
	verifyRepo(t, strings.TrimSpace(string(repoPath)))
}

// TestExternalRepoVerification clones a small public repo and runs verification
func TestExternalRepoVerification(t *testing.T) {
	testRepoDir := t.TempDir()
	cloneCmd := exec.Command("git", "clone", "https://github.com/mitchellh/go-homedir", testRepoDir)
	if err := cloneCmd.Run(); err != nil {
		t.Skipf("failed to clone test repo: %v", err)
	}
	verifyRepo(t, testRepoDir)
}
