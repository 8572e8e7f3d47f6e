// Package logging holds the process-wide zap logger. The TUI owns the
// terminal, so logs go to a file instead of stderr.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.NewNop()

// Init routes logs to the given file. Called once at startup; before
// that, L returns a no-op logger so library code can log freely.
func Init(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	logger = l
	return nil
}

// L returns the process logger.
func L() *zap.Logger { return logger }

// Sync flushes buffered log entries. Errors are ignored; there is
// nowhere left to report them at shutdown.
func Sync() {
	_ = logger.Sync()
}
