// Package logger wires log/slog with a tint console handler or a JSON handler
// and exposes the Interface injected into use cases and repositories.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"

	"github.com/Kapooral/services-app-server-sub002/internal/shared/config"
)

var (
	mu      sync.Mutex
	root    *slog.Logger
	level   = new(slog.LevelVar)
	logFile *os.File
)

// Init builds the process logger from cfg and installs it as the slog
// default. Source locations are attached to warn and error records, or to
// every record when debug is true.
func Init(cfg *config.LoggerConfig, debug bool) error {
	w, f, err := openOutput(cfg.OutputPath)
	if err != nil {
		return err
	}

	level.Set(ParseLevel(cfg.Level))

	sourceFrom := slog.LevelWarn
	if debug {
		sourceFrom = slog.LevelDebug
	}

	var base slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		base = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	} else {
		base = newTintHandler(w, level)
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = f
	root = slog.New(WithSource(base, sourceFrom))
	slog.SetDefault(root)
	return nil
}

// openOutput resolves stdout, stderr or a file path. The file is returned
// separately so Sync can close it.
func openOutput(path string) (io.Writer, *os.File, error) {
	switch strings.ToLower(path) {
	case "", "stdout":
		return os.Stdout, nil, nil
	case "stderr":
		return os.Stderr, nil, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newTintHandler(w io.Writer, lv slog.Leveler) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      lv,
		TimeFormat: time.DateTime,
		NoColor:    !isTerminal(w),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if err, ok := a.Value.Any().(error); ok && a.Key == "error" {
				return tint.Err(err)
			}
			return a
		},
	})
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// SetLevel changes the minimum level of the process logger at runtime.
func SetLevel(lv slog.Level) {
	level.Set(lv)
}

// Get returns the process logger, building a tint console logger on first
// use when Init was never called.
func Get() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if root == nil {
		root = slog.New(WithSource(newTintHandler(os.Stdout, level), slog.LevelWarn))
	}
	return root
}

// Sync closes the log file opened by Init, if any.
func Sync() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}
