// Package logger sets up the structured logger that writes to tomato's
// rotating log file.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/tomatoclock/tomato/internal/osutil"
)

// Options configures New.
type Options struct {
	// Path of the log file. Rotated at 5 MB, keeping three backups.
	Path  string
	Level slog.Level
	// Stderr also writes every record to standard error.
	Stderr bool
}

// New returns a logger and the closer for its log file.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(opts.Path), osutil.DirPermission); err != nil {
		return nil, nil, err
	}

	file := &lumberjack.Logger{
		Filename:   opts.Path,
		MaxSize:    5,
		MaxBackups: 3,
		MaxAge:     28,
	}

	var w io.Writer = file
	if opts.Stderr {
		w = io.MultiWriter(file, os.Stderr)
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: opts.Level,
	})

	return slog.New(handler), file, nil
}
