package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/jask/toggler/internal/config"
)

// NewHandler configures a text slog handler with the provided writer and log level.
func NewHandler(level string, w io.Writer) slog.Handler {
	if w == nil {
		w = io.Discard
	}

	reportCaller := false
	reportTimestamp := true
	lvl := log.InfoLevel
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		reportCaller = true
		lvl = log.DebugLevel
	case "debug":
		lvl = log.DebugLevel
	case "warn", "warning":
		lvl = log.WarnLevel
	case "error":
		lvl = log.ErrorLevel
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: reportTimestamp,
		ReportCaller:    reportCaller,
		Level:           lvl,
		Prefix:          "toggler",
	})
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the application logger from cfg. Output goes to cfg.File when
// set and is discarded otherwise. The returned closer releases the file.
func Open(cfg config.LogConfig) (*slog.Logger, io.Closer, error) {
	if cfg.File == "" {
		return slog.New(NewHandler(cfg.Level, io.Discard)), nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(NewHandler(cfg.Level, f)), f, nil
}
