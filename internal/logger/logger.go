// Package logger provides the process-wide structured logger.
package logger

import (
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// Options controls how the root logger is built
type Options struct {
	Level  string
	Format string // "json" or "text"
	Output io.Writer
}

var (
	root   hclog.Logger = hclog.New(&hclog.LoggerOptions{Name: "cinemadb", Level: hclog.Info})
	rootMu sync.RWMutex
)

// Init replaces the root logger
func Init(opts Options) hclog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	l := hclog.New(&hclog.LoggerOptions{
		Name:       "cinemadb",
		Level:      ParseLevel(opts.Level),
		Output:     out,
		JSONFormat: strings.EqualFold(opts.Format, "json"),
	})

	rootMu.Lock()
	root = l
	rootMu.Unlock()
	return l
}

// ParseLevel converts a level name to an hclog level, defaulting to info
func ParseLevel(level string) hclog.Level {
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		return hclog.Info
	}
	return lvl
}

// SetLevel changes the level of the root logger in place
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}

// Default returns the root logger
func Default() hclog.Logger {
	rootMu.RLock()
	defer rootMu.RUnlock()
	return root
}

// Named returns a sub-logger of the root logger
func Named(name string) hclog.Logger {
	return Default().Named(name)
}

// StandardLogger adapts the root logger for libraries that want a *log.Logger
func StandardLogger() *log.Logger {
	return Default().StandardLogger(&hclog.StandardLoggerOptions{InferLevels: true})
}

// Info logs informational messages with key/value pairs
func Info(msg string, args ...interface{}) {
	Default().Info(msg, args...)
}

// Warn logs warning messages
func Warn(msg string, args ...interface{}) {
	Default().Warn(msg, args...)
}

// Error logs error messages
func Error(msg string, args ...interface{}) {
	Default().Error(msg, args...)
}

// Debug logs debug messages
func Debug(msg string, args ...interface{}) {
	Default().Debug(msg, args...)
}
