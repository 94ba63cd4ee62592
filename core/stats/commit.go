// Package stats holds the per-commit and per-author records that contributor
// statistics are built from.
package stats

import "time"

// CommitRecord is one commit's contribution. It is immutable once built.
type CommitRecord struct {
	author       string
	linesAdded   int
	linesRemoved int
	date         string
	timestamp    int64
}

// NewCommit builds a CommitRecord. Inputs are stored as given; no validation is performed.
func NewCommit(author string, linesAdded, linesRemoved int, date string, timestamp int64) CommitRecord {
	return CommitRecord{
		author:       author,
		linesAdded:   linesAdded,
		linesRemoved: linesRemoved,
		date:         date,
		timestamp:    timestamp,
	}
}

// Author returns the author name.
func (c CommitRecord) Author() string { return c.author }

// LinesAdded returns the number of lines added.
func (c CommitRecord) LinesAdded() int { return c.linesAdded }

// LinesRemoved returns the number of lines removed.
func (c CommitRecord) LinesRemoved() int { return c.linesRemoved }

// Date returns the calendar-date label exactly as supplied.
func (c CommitRecord) Date() string { return c.date }

// TimeStamp returns the commit time in seconds since the Unix epoch.
func (c CommitRecord) TimeStamp() int64 { return c.timestamp }

// Time returns the commit time in UTC.
func (c CommitRecord) Time() time.Time { return time.Unix(c.timestamp, 0).UTC() }
