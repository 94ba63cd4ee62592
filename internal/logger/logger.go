// Package logger wraps a process-wide logrus logger that writes diagnostics to stderr.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// DefaultLevel is the level used when none is configured.
const DefaultLevel = logrus.WarnLevel

var (
	log  *logrus.Logger
	once sync.Once
)

// Init configures the logger with the given level name ("debug", "info", "warn", "error").
// An empty level falls back to DefaultLevel.
func Init(level string) error {
	l := GetLogger()
	if strings.TrimSpace(level) == "" {
		l.SetLevel(DefaultLevel)
		return nil
	}
	parsed, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return err
	}
	l.SetLevel(parsed)
	return nil
}

// SetOutput redirects log output. Tests use it to capture entries.
func SetOutput(w io.Writer) {
	GetLogger().SetOutput(w)
}

// GetLogger returns the configured logger instance.
func GetLogger() *logrus.Logger {
	once.Do(func() {
		log = logrus.New()
		log.SetOutput(os.Stderr)
		log.SetLevel(DefaultLevel)
		log.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp:       true,
			DisableLevelTruncation: true,
		})
	})
	return log
}

// WithField adds a field to the logger.
func WithField(key string, value any) *logrus.Entry {
	return GetLogger().WithField(key, value)
}

// WithFields adds multiple fields to the logger.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return GetLogger().WithFields(fields)
}

// WithError adds an error field to the logger.
func WithError(err error) *logrus.Entry {
	return GetLogger().WithError(err)
}

// Debugf logs a formatted debug message.
func Debugf(format string, args ...any) {
	GetLogger().Debugf(format, args...)
}

// Infof logs a formatted info message.
func Infof(format string, args ...any) {
	GetLogger().Infof(format, args...)
}

// Warnf logs a formatted warning message.
func Warnf(format string, args ...any) {
	GetLogger().Warnf(format, args...)
}

// Errorf logs a formatted error message.
func Errorf(format string, args ...any) {
	GetLogger().Errorf(format, args...)
}
