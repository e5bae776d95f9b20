// Package logger provides the structured logger shared by the importer.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	current = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
)

// Options configures the logger.
type Options struct {
	Debug  bool      // log debug messages
	Quiet  bool      // log errors only
	JSON   bool      // JSON lines instead of text
	Output io.Writer // default: stderr
}

// Init replaces the shared logger according to opts.
func Init(opts Options) {
	level := slog.LevelInfo
	switch {
	case opts.Quiet:
		level = slog.LevelError
	case opts.Debug:
		level = slog.LevelDebug
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}

	Set(slog.New(handler))
}

// Set installs l as the shared logger.
func Set(l *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	current = l
}

// Get returns the shared logger.
func Get() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Debug logs at debug level.
func Debug(msg string, args ...any) { Get().Debug(msg, args...) }

// Info logs at info level.
func Info(msg string, args ...any) { Get().Info(msg, args...) }

// Warn logs at warn level.
func Warn(msg string, args ...any) { Get().Warn(msg, args...) }

// Error logs at error level.
func Error(msg string, args ...any) { Get().Error(msg, args...) }

// With returns the shared logger annotated with args.
func With(args ...any) *slog.Logger { return Get().With(args...) }
