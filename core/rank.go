package core

import (
	"cmp"
	"slices"
	"strings"

	"github.com/huangsam/gitstats/schema"
)

// rankAuthors sorts authors by the given key and returns the top 'limit' entries.
// Numeric keys sort descending, "first" puts the earliest contributor first,
// and "name" sorts alphabetically. Ties always fall back to the name.
func rankAuthors(authors []schema.AuthorResult, key schema.SortKey, limit int) []schema.AuthorResult {
	slices.SortFunc(authors, func(a, b schema.AuthorResult) int {
		var c int
		switch key {
		case schema.SortByAdded:
			c = cmp.Compare(b.LinesAdded, a.LinesAdded)
		case schema.SortByRemoved:
			c = cmp.Compare(b.LinesRemoved, a.LinesRemoved)
		case schema.SortByDays:
			c = cmp.Compare(b.ActiveDays, a.ActiveDays)
		case schema.SortByFirst:
			c = a.FirstCommit.Compare(b.FirstCommit)
		case schema.SortByLast:
			c = b.LastCommit.Compare(a.LastCommit)
		case schema.SortByName:
			c = 0
		default: // commits
			c = cmp.Compare(b.Commits, a.Commits)
		}
		return cmp.Or(c, compareNames(a.Name, b.Name))
	})
	if limit > 0 && len(authors) > limit {
		return authors[:limit]
	}
	return authors
}

// compareNames orders names case-insensitively, falling back to byte order.
func compareNames(a, b string) int {
	return cmp.Or(
		cmp.Compare(strings.ToLower(a), strings.ToLower(b)),
		cmp.Compare(a, b),
	)
}
