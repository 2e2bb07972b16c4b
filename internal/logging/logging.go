// Package logging builds the run logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/joe/vault-map/internal/config"
)

// Exported constants.
const (
	Prefix          = "vault-map"
	TimestampFormat = time.TimeOnly
)

// Level maps a verbosity to a log level.
func Level(verbosity config.Verbosity) log.Level {
	switch verbosity {
	case config.VerbosityVerbose:
		return log.DebugLevel
	case config.VerbosityQuiet:
		return log.WarnLevel
	case config.VerbosityNormal:
		return log.InfoLevel
	default:
		return log.InfoLevel
	}
}

// New returns a logger writing to w at the given verbosity.
func New(w io.Writer, verbosity config.Verbosity) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          Prefix,
		ReportTimestamp: true,
		TimeFormat:      TimestampFormat,
		Level:           Level(verbosity),
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// ForConfig returns the logger for cfg: stderr, plus cfg.LogFile when set.
// The returned close function must be called once the run is over.
func ForConfig(cfg *config.Config) (*log.Logger, func() error, error) {
	if cfg.LogFile == "" {
		return New(os.Stderr, cfg.Verbosity()), func() error { return nil }, nil
	}

	file, err := os.OpenFile(filepath.Clean(cfg.LogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:mnd // owner rw
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := New(io.MultiWriter(os.Stderr, file), cfg.Verbosity())

	return logger, file.Close, nil
}
