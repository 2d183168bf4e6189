// Package logger provides the process wide structured logger used by the CLI
// and the library packages.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Fields is the set of structured key/value pairs attached to an entry.
type Fields = logrus.Fields

// OutputFormat selects the log line encoding.
type OutputFormat string

// Supported output formats.
const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

var (
	logger *logrus.Logger

	outputMu sync.Mutex
	output   io.Writer = os.Stderr
)

// SetOutput redirects log output. Passing nil restores stderr.
func SetOutput(w io.Writer) {
	outputMu.Lock()
	defer outputMu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	output = w
	if logger != nil {
		logger.SetOutput(w)
	}
}

func currentOutput() io.Writer {
	outputMu.Lock()
	defer outputMu.Unlock()
	return output
}

// InitLogger initializes the global logger for CLI operations.
func InitLogger(logLevel string, format OutputFormat, noColor bool) {
	lg := logrus.New()
	lg.SetOutput(currentOutput())

	level, err := logrus.ParseLevel(strings.ToLower(logLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	lg.SetLevel(level)

	switch format {
	case FormatJSON:
		lg.SetFormatter(&logrus.JSONFormatter{})
	default:
		lg.SetFormatter(&logrus.TextFormatter{
			DisableColors:    noColor || os.Getenv("NO_COLOR") != "",
			DisableTimestamp: true,
		})
	}
	logger = lg
}

// GetLogger returns the configured logger instance.
func GetLogger() *logrus.Logger {
	if logger == nil {
		InitLogger("info", FormatText, false)
	}
	return logger
}

// Info logs an info message.
func Info(msg string, fields ...Fields) {
	GetLogger().WithFields(mergeFields(fields...)).Info(msg)
}

// Infof logs a formatted info message.
func Infof(format string, args ...interface{}) {
	GetLogger().Info(fmt.Sprintf(format, args...))
}

// Debug logs a debug message (only shown when debug level is enabled).
func Debug(msg string, fields ...Fields) {
	GetLogger().WithFields(mergeFields(fields...)).Debug(msg)
}

// Debugf logs a formatted debug message.
func Debugf(format string, args ...interface{}) {
	GetLogger().Debug(fmt.Sprintf(format, args...))
}

// Warn logs a warning message.
func Warn(msg string, fields ...Fields) {
	GetLogger().WithFields(mergeFields(fields...)).Warn(msg)
}

// Error logs an error message.
func Error(msg string, fields ...Fields) {
	GetLogger().WithFields(mergeFields(fields...)).Error(msg)
}

// Success logs a success message as info with success indicator.
func Success(msg string, fields ...Fields) {
	merged := mergeFields(fields...)
	merged["status"] = "success"
	GetLogger().WithFields(merged).Info(msg)
}

func mergeFields(fields ...Fields) Fields {
	result := make(Fields)
	for _, field := range fields {
		for k, v := range field {
			result[k] = v
		}
	}
	return result
}
