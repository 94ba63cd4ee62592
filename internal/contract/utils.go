package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/clipperhouse/displaywidth"
	"github.com/fatih/color"
	"github.com/huangsam/gitstats/internal/logger"
	"github.com/huangsam/gitstats/schema"
)

// Color variables for console output.
var (
	ActiveColor  = color.New(color.FgGreen, color.Bold) // committed within the active window
	RecentColor  = color.New(color.FgYellow)            // committed within the recent window
	DormantColor = color.New(color.FgHiBlack)           // nothing recent
)

// GetColorLabel returns a colored activity label for console output (table).
func GetColorLabel(label schema.ActivityLabel) string {
	text := string(label)
	switch label {
	case schema.ActiveLabel:
		return ActiveColor.Sprint(text)
	case schema.RecentLabel:
		return RecentColor.Sprint(text)
	default:
		return DormantColor.Sprint(text)
	}
}

// SelectOutputFile returns the file handle for output. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// ShouldIgnore returns true if the given path matches any of the exclude patterns.
// It supports simple glob patterns (using filepath.Match) when the pattern
// contains wildcard characters (*, ?, [ ]). Patterns ending with '/' are treated
// as prefixes. Patterns starting with '.' are treated as suffix (extension) matches.
// A user can provide patterns like "vendor/", "node_modules/", "*.min.js".
func ShouldIgnore(path string, excludes []string) bool {
	for _, ex := range excludes {
		ex = strings.TrimSpace(ex)
		if ex == "" {
			continue
		}

		if strings.ContainsAny(ex, "*?[") {
			pat := strings.ReplaceAll(ex, "**", "*")
			if ok, err := filepath.Match(pat, path); err == nil && ok {
				return true
			}
			// Also try matching against the base filename (e.g. *.min.js)
			if ok, err := filepath.Match(pat, filepath.Base(path)); err == nil && ok {
				return true
			}
			continue
		}

		switch {
		case strings.HasSuffix(ex, "/"):
			if strings.HasPrefix(path, ex) || strings.Contains(path, "/"+ex) {
				return true
			}
		case strings.HasPrefix(ex, "."):
			if strings.HasSuffix(path, ex) {
				return true
			}
		case strings.Contains(path, ex):
			return true
		}
	}
	return false
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	logger.WithError(err).Error(msg)
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message.
func LogWarn(msg string, err error) {
	logger.WithError(err).Warn(msg)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for cache storage.
func GetCacheDBFilePath() string {
	return homeFile(".gitstats_cache.db")
}

// GetStatsDBFilePath returns the path to the SQLite DB file for run tracking.
func GetStatsDBFilePath() string {
	return homeFile(".gitstats_stats.db")
}

func homeFile(name string) string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(homeDir, name)
}

// TruncateName shortens a name to at most maxWidth terminal columns with an ellipsis suffix.
// Wide characters count as two columns and graphemes are never split.
// Widths of 3 or less leave the name unchanged.
func TruncateName(name string, maxWidth int) string {
	if maxWidth <= 3 || displaywidth.String(name) <= maxWidth {
		return name
	}

	budget := maxWidth - 3
	var b strings.Builder
	used := 0
	g := displaywidth.StringGraphemes(name)
	for g.Next() {
		w := g.Width()
		if used+w > budget {
			break
		}
		b.WriteString(g.Value())
		used += w
	}
	return b.String() + "..."
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// An empty string is true.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
