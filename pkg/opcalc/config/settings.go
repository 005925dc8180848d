package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// History store drivers.
const (
	DriverNone     = "none"
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Log output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Settings is the runtime configuration of the opcalc command.
type Settings struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// LogFormat is text or json.
	LogFormat string

	// Metrics enables OpenTelemetry metrics.
	Metrics bool

	// Tracing enables OpenTelemetry tracing.
	Tracing bool

	History HistorySettings
}

// HistorySettings selects where evaluation records are kept.
type HistorySettings struct {
	// Driver is none, memory, sqlite or postgres.
	Driver string

	// DSN is the SQLite file path or the PostgreSQL connection string.
	DSN string

	// Table overrides the PostgreSQL table name.
	Table string
}

// Default returns the settings used when nothing is configured.
func Default() Settings {
	return Settings{
		LogLevel:  "info",
		LogFormat: FormatText,
		History: HistorySettings{
			Driver: DriverNone,
		},
	}
}

// Validate checks that every field holds a supported value.
// All problems are reported together.
func (s Settings) Validate() error {
	var errs []error

	if _, err := parseLevel(s.LogLevel); err != nil {
		errs = append(errs, err)
	}

	switch s.LogFormat {
	case FormatText, FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("unsupported log format %q", s.LogFormat))
	}

	switch s.History.Driver {
	case DriverNone, DriverMemory:
	case DriverSQLite, DriverPostgres:
		if s.History.DSN == "" {
			errs = append(errs, fmt.Errorf("history driver %q requires a DSN", s.History.Driver))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported history driver %q", s.History.Driver))
	}

	return errors.Join(errs...)
}

// Level returns the slog level for LogLevel.
func (s Settings) Level() (slog.Level, error) {
	return parseLevel(s.LogLevel)
}

// NewLogger builds a logger writing to w in the configured format and level.
// An invalid level falls back to info.
func (s Settings) NewLogger(w io.Writer) *slog.Logger {
	level, err := s.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if s.LogFormat == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unsupported log level %q", name)
	}
	return level, nil
}
