package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/s1natex/todos-cli-GO/internal/middleware"
	"github.com/s1natex/todos-cli-GO/internal/tasks"
)

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Color     string          `yaml:"color"`
}

type DatabaseConfig struct {
	// Driver is sqlite, postgres, mysql or memory. Empty means detect from DSN.
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	// Path is the sqlite file used when no DSN is given.
	Path string `yaml:"path"`
}

type TelemetryConfig struct {
	MetricsFile string `yaml:"metrics_file"`
	Tracing     string `yaml:"tracing"`
}

func Default() Config {
	return Config{
		Database: DatabaseConfig{
			Path: "todos.db",
		},
		Color: ColorAuto,
	}
}

// Target returns the driver and DSN the store should be opened with.
func (d DatabaseConfig) Target() (driver, dsn string) {
	dsn = d.DSN
	if dsn == "" {
		dsn = d.Path
	}
	driver = d.Driver
	if driver == "" {
		driver = tasks.DetectDriver(dsn)
	}
	return driver, dsn
}

// DefaultPath is $XDG_CONFIG_HOME/todos/config.yaml (or the platform equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "todos", "config.yaml"), nil
}

// Load resolves the configuration from defaults, the YAML file at path, a
// .env file in the working directory and the environment, in that order.
// An empty path falls back to $TODOS_CONFIG and then DefaultPath; only an
// explicitly named file has to exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv("TODOS_CONFIG")
		explicit = path != ""
	}
	if path == "" {
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return Config{}, err
			}
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	set := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v := os.Getenv(k); v != "" {
				*dst = v
				return
			}
		}
	}
	set(&cfg.Database.Driver, "TODOS_DB_DRIVER")
	set(&cfg.Database.DSN, "TODOS_DATABASE_URL", "DATABASE_URL")
	set(&cfg.Database.Path, "TODOS_DB_PATH")
	set(&cfg.Color, "TODOS_COLOR")
	set(&cfg.Telemetry.MetricsFile, "TODOS_METRICS_FILE")
	set(&cfg.Telemetry.Tracing, "TODOS_TRACING")
}

func (c Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q (want auto, always or never)", c.Color)
	}
	switch c.Telemetry.Tracing {
	case "", middleware.TracingNone, middleware.TracingStdout, middleware.TracingOTLP:
	default:
		return fmt.Errorf("invalid tracing exporter %q (want none, stdout or otlp)", c.Telemetry.Tracing)
	}
	switch c.Database.Driver {
	case "", tasks.DriverSQLite, tasks.DriverPostgres, tasks.DriverMySQL, tasks.DriverMemory:
	default:
		return fmt.Errorf("invalid database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" && c.Database.Path == "" {
		return errors.New("database: either dsn or path must be set")
	}
	return nil
}
