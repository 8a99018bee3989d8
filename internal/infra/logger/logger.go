// Package logger holds the process-wide structured logger. Until Setup is
// called every record is discarded, so replays run silently by default.
package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/drueck/reboot/internal/buildinfo"
)

// Dir is the log directory relative to the workspace root.
var Dir = filepath.Join(".reboot", "logs")

const fileName = "reboot.log"

type Config struct {
	Root  string
	Debug bool
}

// sink is the active logger and the file behind it, if any.
type sink struct {
	log  *slog.Logger
	file *os.File
	path string
}

var (
	mu      sync.RWMutex
	current = sink{log: discard()}
)

// File is the log file of the workspace rooted at root.
func File(root string) string {
	if root == "" {
		root = "."
	}
	return filepath.Join(filepath.Clean(root), Dir, fileName)
}

// Setup appends JSON records to File(cfg.Root). Debug lowers the level to
// include per-instruction records and source locations. The returned cleanup
// closes the file and restores the discard logger.
func Setup(cfg Config) (func() error, error) {
	path := File(cfg.Root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		reset()
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		reset()
		return nil, err
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	h := slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level:       level,
		AddSource:   cfg.Debug,
		ReplaceAttr: replaceAttr,
	})
	l := slog.New(h).With("pid", os.Getpid())

	mu.Lock()
	current = sink{log: l, file: f, path: path}
	mu.Unlock()

	l.Info("logger.initialized", "path", path, "debug", cfg.Debug, "version", buildinfo.Version)

	return func() error {
		mu.Lock()
		defer mu.Unlock()
		if current.file == f {
			current = sink{log: discard()}
		}
		return f.Close()
	}, nil
}

// replaceAttr writes times in UTC and durations as Go duration strings, so
// replay.done reads "duration":"1.2ms" rather than nanoseconds.
func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindTime:
		a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
	case slog.KindDuration:
		a.Value = slog.StringValue(a.Value.Duration().String())
	}
	return a
}

func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current.log
}

// Path is the file being written, or "" before Setup.
func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	return current.path
}

func IsReady() error {
	mu.RLock()
	defer mu.RUnlock()
	if current.file == nil {
		return errors.New("logger not initialized")
	}
	return nil
}

func reset() {
	mu.Lock()
	defer mu.Unlock()
	current = sink{log: discard()}
}

func discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
