// Package logger is the process-wide structured logger. It wraps a single
// named hclog root so packages can log with key/value pairs or take a named
// sub-logger for their component.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// Options configures the root logger.
type Options struct {
	Level  string
	Format string // "json" or "text"
	Output io.Writer
}

var (
	mu   sync.RWMutex
	root = newRoot(Options{Level: "info"})
)

func newRoot(opts Options) hclog.Logger {
	output := opts.Output
	if output == nil {
		output = os.Stderr
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       "curator",
		Level:      ParseLevel(opts.Level),
		Output:     output,
		JSONFormat: strings.EqualFold(opts.Format, "json"),
	})
}

// Configure replaces the root logger. Sub-loggers taken before the call keep
// their old settings.
func Configure(opts Options) {
	l := newRoot(opts)
	mu.Lock()
	root = l
	mu.Unlock()
}

// ParseLevel maps a config string to an hclog level, defaulting to info.
func ParseLevel(level string) hclog.Level {
	l := hclog.LevelFromString(level)
	if l == hclog.NoLevel {
		return hclog.Info
	}
	return l
}

// SetLevel changes the root level in place.
func SetLevel(level string) {
	Root().SetLevel(ParseLevel(level))
}

// Root returns the root logger.
func Root() hclog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root
}

// Named returns a sub-logger for a component.
func Named(name string) hclog.Logger {
	return Root().Named(name)
}

func Info(msg string, args ...interface{}) {
	Root().Info(msg, args...)
}

func Warn(msg string, args ...interface{}) {
	Root().Warn(msg, args...)
}

func Error(msg string, args ...interface{}) {
	Root().Error(msg, args...)
}

func Debug(msg string, args ...interface{}) {
	Root().Debug(msg, args...)
}
