package contract

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/huangsam/gitstats/schema"
	"github.com/sirupsen/logrus"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 1
	DefaultCacheTTL    = 7 * 24 * time.Hour
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// DefaultExcludes are path patterns that never count towards line totals.
var DefaultExcludes = []string{
	"Cargo.lock", "go.sum", "package-lock.json", "yarn.lock", "pnpm-lock.yaml", "composer.lock", "uv.lock",
	".min.js", ".min.css",
	"vendor/", "node_modules/", "third_party/",
	"dist/", "build/",
}

// Config holds the validated settings for a single invocation.
type Config struct {
	RepoPath     string
	StartTime    time.Time // Zero means the beginning of history
	EndTime      time.Time // Zero means now
	ResultLimit  int
	Workers      int
	SortBy       schema.SortKey
	Excludes     []string
	AuthorFilter string
	Aliases      map[string]string // Raw author name to canonical name
	Precision    int
	Output       schema.OutputMode
	OutputFile   string
	Width        int // Terminal width override (0 = auto-detect)
	UseColors    bool
	LogLevel     string

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext
	CacheTTL       time.Duration

	StatsBackend   schema.DatabaseBackend
	StatsDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput is the raw configuration as read by viper from flags, env and file.
type ConfigRawInput struct {
	RepoPathStr string

	Limit          int               `mapstructure:"limit"`
	Workers        int               `mapstructure:"workers"`
	Sort           string            `mapstructure:"sort"`
	Start          string            `mapstructure:"start"`
	End            string            `mapstructure:"end"`
	Exclude        string            `mapstructure:"exclude"`
	Author         string            `mapstructure:"author"`
	Aliases        map[string]string `mapstructure:"aliases"`
	Precision      int               `mapstructure:"precision"`
	Output         string            `mapstructure:"output"`
	OutputFile     string            `mapstructure:"output-file"`
	Width          int               `mapstructure:"width"`
	Color          string            `mapstructure:"color"`
	LogLevel       string            `mapstructure:"log-level"`
	CacheBackend   string            `mapstructure:"cache-backend"`
	CacheDBConnect string            `mapstructure:"cache-db-connect"`
	CacheTTL       string            `mapstructure:"cache-ttl"`
	StatsBackend   string            `mapstructure:"stats-backend"`
	StatsDBConnect string            `mapstructure:"stats-db-connect"`
}

// Clone returns a deep copy of the config.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Excludes != nil {
		clone.Excludes = make([]string, len(c.Excludes))
		copy(clone.Excludes, c.Excludes)
	}
	if c.Aliases != nil {
		clone.Aliases = make(map[string]string, len(c.Aliases))
		maps.Copy(clone.Aliases, c.Aliases)
	}
	return &clone
}

// ProcessAndValidate fills cfg from the raw input, returning the first validation error.
func ProcessAndValidate(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := processTimeRange(cfg, input, time.Now()); err != nil {
		return err
	}
	return resolveGitPath(ctx, cfg, client, input)
}

// RevalidateQuery applies per-request overrides on top of an already validated config.
// Empty strings and a zero limit keep the configured values.
func RevalidateQuery(cfg *Config, sort string, limit int, start, end string) error {
	if sort != "" {
		key := schema.SortKey(strings.ToLower(sort))
		if _, ok := schema.ValidSortKeys[key]; !ok {
			return fmt.Errorf("invalid sort '%s'. must be commits, added, removed, days, first, last, name", sort)
		}
		cfg.SortBy = key
	}
	if limit != 0 {
		if limit < 0 || limit > MaxResultLimit {
			return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, limit)
		}
		cfg.ResultLimit = limit
	}
	return processTimeRange(cfg, &ConfigRawInput{Start: start, End: end}, time.Now())
}

// ValidateDatabaseConnectionString checks the connection string shape for a backend.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.AuthorFilter = strings.TrimSpace(input.Author)

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	cfg.SortBy = schema.SortKey(strings.ToLower(input.Sort))
	if _, ok := schema.ValidSortKeys[cfg.SortBy]; !ok {
		return fmt.Errorf("invalid sort '%s'. must be commits, added, removed, days, first, last, name", input.Sort)
	}

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(input.LogLevel))
	if cfg.LogLevel != "" {
		if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
			return fmt.Errorf("invalid log level '%s': %w", input.LogLevel, err)
		}
	}

	cfg.Excludes = append([]string{}, DefaultExcludes...)
	if input.Exclude != "" {
		for p := range strings.SplitSeq(input.Exclude, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				cfg.Excludes = append(cfg.Excludes, trimmed)
			}
		}
	}

	cfg.Aliases = make(map[string]string, len(input.Aliases))
	for from, to := range input.Aliases {
		from, to = strings.TrimSpace(from), strings.TrimSpace(to)
		if from == "" || to == "" {
			return fmt.Errorf("author aliases cannot be empty (received %q: %q)", from, to)
		}
		cfg.Aliases[from] = to
	}

	return nil
}

func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("cache store: %w", err)
	}

	cfg.CacheTTL = DefaultCacheTTL
	if input.CacheTTL != "" {
		ttl, err := ParseLookbackDuration(input.CacheTTL)
		if err != nil {
			return fmt.Errorf("invalid cache-ttl: %w", err)
		}
		cfg.CacheTTL = ttl
	}

	cfg.StatsBackend = schema.DatabaseBackend(strings.ToLower(input.StatsBackend))
	if cfg.StatsBackend == "" {
		cfg.StatsBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.StatsBackend]; !ok {
		return fmt.Errorf("invalid stats backend '%s'. must be sqlite, mysql, postgresql, none", input.StatsBackend)
	}
	cfg.StatsDBConnect = input.StatsDBConnect
	if err := ValidateDatabaseConnectionString(cfg.StatsBackend, cfg.StatsDBConnect); err != nil {
		return fmt.Errorf("stats store: %w", err)
	}

	if cfg.CacheBackend == schema.SQLiteBackend && cfg.StatsBackend == schema.SQLiteBackend {
		cachePath := cfg.CacheDBConnect
		if cachePath == "" {
			cachePath = GetCacheDBFilePath()
		}
		statsPath := cfg.StatsDBConnect
		if statsPath == "" {
			statsPath = GetStatsDBFilePath()
		}
		if cachePath == statsPath {
			return fmt.Errorf("cache and stats storage must use different SQLite database files. Both resolve to %q", cachePath)
		}
	}

	return nil
}

func processTimeRange(cfg *Config, input *ConfigRawInput, now time.Time) error {
	if input.Start != "" {
		t, err := parseTimeInput(input.Start, now)
		if err != nil {
			return fmt.Errorf("invalid start date format for '%s'. Expected ISO8601, YYYY-MM-DD or 'N [units] ago'", input.Start)
		}
		cfg.StartTime = t
	}

	if input.End != "" {
		t, err := parseTimeInput(input.End, now)
		if err != nil {
			return fmt.Errorf("invalid end date format for '%s'. Expected ISO8601, YYYY-MM-DD or 'N [units] ago'", input.End)
		}
		cfg.EndTime = t
	}

	if !cfg.StartTime.IsZero() && !cfg.EndTime.IsZero() && cfg.StartTime.After(cfg.EndTime) {
		return fmt.Errorf("start time (%s) cannot be after end time (%s)", cfg.StartTime.Format(DateTimeFormat), cfg.EndTime.Format(DateTimeFormat))
	}

	return nil
}

// resolveGitPath resolves the positional path to the root of its Git repository.
func resolveGitPath(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	gitRoot, err := ResolveRepoPath(ctx, client, input.RepoPathStr)
	if err != nil {
		return err
	}
	cfg.RepoPath = gitRoot
	return nil
}

// ResolveRepoPath returns the root of the Git repository containing path.
// An empty path means the working directory; a file path resolves through its directory.
func ResolveRepoPath(ctx context.Context, client GitClient, path string) (string, error) {
	if path == "" {
		path = "."
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	absPath = filepath.Clean(absPath)

	gitContextPath := absPath
	if info, statErr := os.Stat(absPath); statErr == nil && !info.IsDir() {
		gitContextPath = filepath.Dir(absPath)
	}
	return client.GetRepoRoot(ctx, gitContextPath)
}
