package agg

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/gitstats/internal/contract"
	"github.com/huangsam/gitstats/schema"
)

// FuzzParseCommitLog fuzzes the numstat parser with random log text.
func FuzzParseCommitLog(f *testing.F) {
	seeds := []string{
		"--c1|Alice|1704873600|2024-01-10T09:00:00+01:00\n3\t0\ta.txt\n",
		"--c1|A|B|1704873600|2024-01-10T09:00:00Z\n-\t-\timage.png\n",
		"--broken\n1\t1\tx\n",
		"1\t1\torphan.txt\n",
		"--c2|Bob|notanumber|2024-01-10\n",
		"",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, log string) {
		entries := ParseCommitLog([]byte(log), contract.DefaultExcludes, nil)

		headers := strings.Count("\n"+log, "\n"+contract.CommitHeaderPrefix)
		if len(entries) > headers {
			t.Fatalf("parsed %d commits from %d headers", len(entries), headers)
		}

		var commits, added int
		for _, e := range entries {
			if e.LinesAdded < 0 || e.LinesRemoved < 0 {
				t.Fatalf("negative line counts in %+v", e)
			}
			commits++
			added += e.LinesAdded
		}

		// Folding must preserve totals
		var foldedCommits, foldedAdded int
		for _, s := range Fold(schema.Records(entries)) {
			foldedCommits += s.Commits
			foldedAdded += s.LinesAdded
			if s.ActiveDayCount() > s.Commits {
				t.Fatalf("%s has more active days than commits", s.Name())
			}
		}
		if foldedCommits != commits || foldedAdded != added {
			t.Fatalf("fold totals %d/%d, want %d/%d", foldedCommits, foldedAdded, commits, added)
		}

		parallel, err := FoldParallel(context.Background(), schema.Records(entries), 3)
		if err != nil {
			t.Fatal(err)
		}
		if len(parallel) != len(Fold(schema.Records(entries))) {
			t.Fatalf("parallel fold produced %d authors", len(parallel))
		}
	})
}

// FuzzParseCommitHeader checks that accepted headers always carry a hash, an author and a day label.
func FuzzParseCommitHeader(f *testing.F) {
	seeds := []string{
		"--c1|Alice|1704873600|2024-01-10T09:00:00+01:00",
		"--c2|Pipe|Name|1704873600|2024-01-10T09:00:00Z",
		"--c3|Kenji|x|2024-01-02T01:00:00+09:00",
		"--c4||1704873600|2024-01-10T09:00:00Z",
		"--|Alice|1|2024-01-10",
		"--c5|Alice|1704873600",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, line string) {
		entry, ok := parseCommitHeader(line)
		if !ok {
			return
		}
		if entry.Hash == "" || entry.Author == "" {
			t.Fatalf("accepted %q with empty hash or author", line)
		}
		if strings.TrimSpace(entry.Author) != entry.Author {
			t.Fatalf("author %q is not trimmed", entry.Author)
		}
		if _, err := time.Parse(schema.DayLayout, entry.Date); err != nil {
			t.Fatalf("day label %q from %q: %v", entry.Date, line, err)
		}
	})
}
