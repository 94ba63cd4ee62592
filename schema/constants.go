package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// SortKey represents the column authors are ranked by.
	SortKey string

	// ActivityLabel describes how recently an author committed.
	ActivityLabel string

	// DatabaseBackend represents the database backend for caching and run tracking.
	DatabaseBackend string
)

// DayLayout is the calendar-date label format used for active days.
const DayLayout = "2006-01-02"

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All sort keys supported.
const (
	SortByCommits SortKey = "commits" // default
	SortByAdded   SortKey = "added"
	SortByRemoved SortKey = "removed"
	SortByDays    SortKey = "days"
	SortByFirst   SortKey = "first"
	SortByLast    SortKey = "last"
	SortByName    SortKey = "name"
)

// Activity labels by days since the last commit.
const (
	ActiveLabel  ActivityLabel = "Active"  // within ActiveWindowDays
	RecentLabel  ActivityLabel = "Recent"  // within RecentWindowDays
	DormantLabel ActivityLabel = "Dormant" // anything older
)

// Activity windows in days.
const (
	ActiveWindowDays = 30
	RecentWindowDays = 180
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidSortKeys lists all valid sort keys.
var ValidSortKeys = map[SortKey]struct{}{
	SortByCommits: {},
	SortByAdded:   {},
	SortByRemoved: {},
	SortByDays:    {},
	SortByFirst:   {},
	SortByLast:    {},
	SortByName:    {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
