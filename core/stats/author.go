package stats

import (
	"errors"
	"maps"
	"slices"
)

// ErrAuthorMismatch is returned when merging summaries that belong to different authors.
var ErrAuthorMismatch = errors.New("stats: cannot merge summaries of different authors")

// AuthorSummary is the running aggregate for a single author.
//
// Totals only grow under non-negative deltas. The first commit stamp only moves earlier
// and the last one only moves later; each day label changes together with its stamp.
type AuthorSummary struct {
	name         string
	LinesAdded   int
	LinesRemoved int
	Commits      int
	activeDays   map[string]struct{}

	firstCommitTS  int64
	firstActiveDay string // empty when the day of firstCommitTS is unknown
	lastCommitTS   int64
	lastActiveDay  string // empty until a CheckLastCommitStamp advances lastCommitTS
}

// NewAuthor builds an AuthorSummary with activeDay as its only active day.
// The timestamps are taken as given, without an ordering check.
func NewAuthor(name string, linesRemoved, linesAdded int, activeDay string, commits int, firstCommitTS, lastCommitTS int64) *AuthorSummary {
	return &AuthorSummary{
		name:          name,
		LinesAdded:    linesAdded,
		LinesRemoved:  linesRemoved,
		Commits:       commits,
		activeDays:    map[string]struct{}{activeDay: {}},
		firstCommitTS: firstCommitTS,
		lastCommitTS:  lastCommitTS,
	}
}

// NewAuthorFromCommit seeds a summary from the author's first seen commit.
func NewAuthorFromCommit(c CommitRecord) *AuthorSummary {
	a := NewAuthor(c.Author(), c.LinesRemoved(), c.LinesAdded(), c.Date(), 1, c.TimeStamp(), c.TimeStamp())
	a.firstActiveDay = c.Date()
	a.lastActiveDay = c.Date()
	return a
}

// Name returns the author name the summary was created with.
func (a *AuthorSummary) Name() string { return a.name }

// FirstCommitTS returns the timestamp of the earliest known commit.
func (a *AuthorSummary) FirstCommitTS() int64 { return a.firstCommitTS }

// FirstActiveDay returns the day label of the earliest known commit, or "" when unknown.
func (a *AuthorSummary) FirstActiveDay() string { return a.firstActiveDay }

// LastCommitTS returns the timestamp of the latest known commit.
func (a *AuthorSummary) LastCommitTS() int64 { return a.lastCommitTS }

// LastActiveDay returns the day label of the latest known commit, or "" when unknown.
func (a *AuthorSummary) LastActiveDay() string { return a.lastActiveDay }

// HasActiveDay reports whether day is in the active-day set.
func (a *AuthorSummary) HasActiveDay(day string) bool {
	_, ok := a.activeDays[day]
	return ok
}

// ActiveDayCount returns the number of distinct active days.
func (a *AuthorSummary) ActiveDayCount() int { return len(a.activeDays) }

// ActiveDays returns the active days in ascending order.
func (a *AuthorSummary) ActiveDays() []string {
	return slices.Sorted(maps.Keys(a.activeDays))
}

// Clone returns a deep copy of the summary.
func (a *AuthorSummary) Clone() *AuthorSummary {
	clone := *a
	clone.activeDays = maps.Clone(a.activeDays)
	return &clone
}

// AddActiveDay inserts day into the active-day set. Inserting a known day is a no-op.
func AddActiveDay(a *AuthorSummary, day string) {
	if a.activeDays == nil {
		a.activeDays = make(map[string]struct{})
	}
	a.activeDays[day] = struct{}{}
}

// AddLinesAdded adds n to the lines-added total.
func AddLinesAdded(a *AuthorSummary, n int) {
	a.LinesAdded += n
}

// AddLinesRemoved adds n to the lines-removed total.
func AddLinesRemoved(a *AuthorSummary, n int) {
	a.LinesRemoved += n
}

// AddCommit adds n to the commit count.
func AddCommit(a *AuthorSummary, n int) {
	a.Commits += n
}

// CheckFirstCommitStamp replaces the first commit stamp when ts is strictly earlier.
// The first active day becomes unknown since no day comes with ts.
func CheckFirstCommitStamp(a *AuthorSummary, ts int64) {
	CheckFirstCommitDay(a, ts, "")
}

// CheckFirstCommitDay moves the first commit stamp to ts and the first active day to day
// when ts is strictly earlier.
func CheckFirstCommitDay(a *AuthorSummary, ts int64, day string) {
	if ts < a.firstCommitTS {
		a.firstCommitTS = ts
		a.firstActiveDay = day
	}
}

// CheckLastCommitStamp moves the last commit stamp to ts and the last active day to day
// when ts is strictly later.
func CheckLastCommitStamp(a *AuthorSummary, ts int64, day string) {
	if ts > a.lastCommitTS {
		a.lastCommitTS = ts
		a.lastActiveDay = day
	}
}

// Apply folds one commit into the summary.
func Apply(a *AuthorSummary, c CommitRecord) {
	AddCommit(a, 1)
	AddLinesAdded(a, c.LinesAdded())
	AddLinesRemoved(a, c.LinesRemoved())
	AddActiveDay(a, c.Date())
	CheckFirstCommitDay(a, c.TimeStamp(), c.Date())
	CheckLastCommitStamp(a, c.TimeStamp(), c.Date())
}

// Merge folds src into dst using the same rules as the per-commit updates:
// sums for totals, union for active days, min for the first commit and max for
// the last commit, each together with its day.
func Merge(dst, src *AuthorSummary) error {
	if dst.name != src.name {
		return ErrAuthorMismatch
	}
	AddCommit(dst, src.Commits)
	AddLinesAdded(dst, src.LinesAdded)
	AddLinesRemoved(dst, src.LinesRemoved)
	for day := range src.activeDays {
		AddActiveDay(dst, day)
	}
	CheckFirstCommitDay(dst, src.firstCommitTS, src.firstActiveDay)
	CheckLastCommitStamp(dst, src.lastCommitTS, src.lastActiveDay)
	return nil
}
