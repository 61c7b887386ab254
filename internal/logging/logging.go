// Package logging configures structured logging for docsync.
// Console output goes to stderr; every run also appends JSONL events to
// a log file under the docsync home so CI runs leave an audit trail.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/amplifier-docs/docsync/internal/config"
)

// Setup configures the global logger. When jsonOut is true the console
// stream is raw JSON (machine consumption, CI); otherwise it is the
// human console writer. Returns a close function for the file sink.
func Setup(level string, jsonOut bool) func() {
	zerolog.TimeFieldFormat = time.RFC3339

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	var console io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	if jsonOut {
		console = os.Stderr
	}

	writers := []io.Writer{console}
	closeFn := func() {}

	if f, err := openRunLog(); err == nil {
		writers = append(writers, f)
		closeFn = func() { f.Close() }
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
	return closeFn
}

// For returns a component-scoped logger.
func For(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

func openRunLog() (*os.File, error) {
	logDir := config.GetPaths().Logs
	if err := config.EnsureDir(logDir); err != nil {
		return nil, err
	}
	name := filepath.Join(logDir, time.Now().UTC().Format("2006-01-02")+".jsonl")
	return os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}
