// Package logging provides per-component logrus loggers that share one
// configurable sink.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/javiermolinar/homegrid/internal/config"
)

// DebugLogPath is the fixed path --debug writes to, in the working directory.
const DebugLogPath = "homegrid-debug.log"

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex
)

func init() {
	// The TUI owns the terminal; nothing is written until Configure picks a sink.
	logrus.SetOutput(io.Discard)
}

// NewLogger returns the logger for component. Loggers are cached and all
// write through the standard logrus logger, so Configure applies to every
// logger whether it was created before or after.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, ok := loggers[component]; ok {
		return logger
	}
	logger := logrus.WithField("component", component)
	loggers[component] = logger
	return logger
}

// Configure sets level, format and output from cfg. HOMEGRID_LOG_LEVEL
// overrides the configured level. With debug set, JSON lines at debug level
// go to DebugLogPath regardless of cfg.
//
// The returned func closes the log file, if one was opened.
func Configure(cfg config.LogConfig, debug bool) (func() error, error) {
	logger := logrus.StandardLogger()

	levelStr := cfg.Level
	if v := os.Getenv("HOMEGRID_LOG_LEVEL"); v != "" {
		levelStr = v
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}

	path := cfg.File
	format := cfg.Format
	if debug {
		path = DebugLogPath
		format = "json"
		if level < logrus.DebugLevel {
			level = logrus.DebugLevel
		}
	}
	logger.SetLevel(level)

	switch format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	if path == "" {
		logger.SetOutput(io.Discard)
		return func() error { return nil }, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
	}
	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if debug {
		flags = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	logger.SetOutput(f)

	return func() error {
		logger.SetOutput(io.Discard)
		return f.Close()
	}, nil
}
