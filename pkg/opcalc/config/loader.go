package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by FromEnv.
const (
	EnvLogLevel      = "OPCALC_LOG_LEVEL"
	EnvLogFormat     = "OPCALC_LOG_FORMAT"
	EnvMetrics       = "OPCALC_METRICS"
	EnvTracing       = "OPCALC_TRACING"
	EnvHistoryDriver = "OPCALC_HISTORY_DRIVER"
	EnvHistoryDSN    = "OPCALC_HISTORY_DSN"
	EnvHistoryTable  = "OPCALC_HISTORY_TABLE"
)

// Load builds Settings from defaults, then the file at path (if not empty),
// then the environment. The result is validated.
func Load(path string) (Settings, error) {
	s := Default()

	if path != "" {
		var err error
		s, err = FromFile(path, s)
		if err != nil {
			return Settings{}, err
		}
	}

	s, err := FromEnv(s)
	if err != nil {
		return Settings{}, err
	}

	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid config: %w", err)
	}
	return s, nil
}

// FromFile overlays the file at path onto base, auto-detecting format by
// extension. Supported extensions: .yaml, .yml, .json
func FromFile(path string, base Settings) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FromYAML(data, base)
	case ".json":
		return FromJSON(data, base)
	default:
		return Settings{}, fmt.Errorf("unsupported config file extension: %s", ext)
	}
}

// FromYAML overlays YAML data onto base.
func FromYAML(data []byte, base Settings) (Settings, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Settings{}, fmt.Errorf("parse yaml: %w", err)
	}
	return overlay(base, newValues(m)), nil
}

// FromJSON overlays JSON data onto base.
func FromJSON(data []byte, base Settings) (Settings, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return Settings{}, fmt.Errorf("parse json: %w", err)
	}
	return overlay(base, newValues(m)), nil
}

// overlay replaces the fields of base that v sets.
//
// Recognized keys:
//
//	log_level: debug
//	log_format: json
//	metrics: true
//	tracing: false
//	history:
//	  driver: sqlite
//	  dsn: ./opcalc.db
//	  table: opcalc_evaluations
func overlay(base Settings, v values) Settings {
	s := base
	s.LogLevel = v.String("log_level", s.LogLevel)
	s.LogFormat = v.String("log_format", s.LogFormat)
	s.Metrics = v.Bool("metrics", s.Metrics)
	s.Tracing = v.Bool("tracing", s.Tracing)

	h := v.Section("history")
	s.History.Driver = h.String("driver", s.History.Driver)
	s.History.DSN = h.String("dsn", s.History.DSN)
	s.History.Table = h.String("table", s.History.Table)
	return s
}

// FromEnv overlays OPCALC_* environment variables onto base.
// Boolean variables accept the values strconv.ParseBool does.
func FromEnv(base Settings) (Settings, error) {
	s := base

	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		s.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvLogFormat); ok {
		s.LogFormat = v
	}
	if v, ok := os.LookupEnv(EnvHistoryDriver); ok {
		s.History.Driver = v
	}
	if v, ok := os.LookupEnv(EnvHistoryDSN); ok {
		s.History.DSN = v
	}
	if v, ok := os.LookupEnv(EnvHistoryTable); ok {
		s.History.Table = v
	}

	var err error
	if s.Metrics, err = envBool(EnvMetrics, s.Metrics); err != nil {
		return Settings{}, err
	}
	if s.Tracing, err = envBool(EnvTracing, s.Tracing); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func envBool(key string, defaultVal bool) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal, fmt.Errorf("parse %s: %w", key, err)
	}
	return b, nil
}

// LoadDotEnv loads variables from .env files into the process environment
// without overriding variables that are already set. With no paths it reads
// ./.env. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}
