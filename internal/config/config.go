package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// DateFormat is the layout for the start/end date bounds.
const DateFormat = "2006-01-02"

// Config holds all settings for a generation run.
type Config struct {
	OutputFile   string `toml:"output_file"`
	TotalRecords int64  `toml:"total_records"`
	BatchSize    int64  `toml:"batch_size"`
	StartDate    string `toml:"start_date"`
	EndDate      string `toml:"end_date"`
	RouteIDMax   int    `toml:"route_id_max"`
	Seed         int64  `toml:"seed"` // 0 = derive from wall clock

	Logging  LoggingConfig  `toml:"logging"`
	Manifest ManifestConfig `toml:"manifest"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// ManifestConfig controls the optional per-run provenance record.
type ManifestConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Default returns the configuration used when a field is absent from the
// config file. Values mirror the original bulk-load defaults.
func Default() Config {
	return Config{
		OutputFile:   "data/flight_records.csv",
		TotalRecords: 1_000_000,
		BatchSize:    100_000,
		StartDate:    "2024-01-01",
		EndDate:      "2024-12-31",
		RouteIDMax:   10_000,
		Seed:         0,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Manifest: ManifestConfig{
			Enabled: false,
			Path:    "data/flightgen.db",
		},
	}
}

// Load reads the TOML config file at path, applies environment overrides,
// and validates the result. A missing file is not an error: defaults plus
// environment apply.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overrides selected fields from the environment (optionally
// loaded from a .env file).
func applyEnv(cfg *Config) {
	godotenv.Load()

	if v := os.Getenv("FLIGHTGEN_OUTPUT_FILE"); v != "" {
		cfg.OutputFile = v
	}
	if v := os.Getenv("FLIGHTGEN_TOTAL_RECORDS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.TotalRecords = n
		}
	}
	if v := os.Getenv("FLIGHTGEN_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Seed = n
		}
	}
}

// Validate checks the configuration before any record is generated.
func (c Config) Validate() error {
	if c.OutputFile == "" {
		return fmt.Errorf("output_file must not be empty")
	}
	if c.TotalRecords < 0 {
		return fmt.Errorf("total_records must not be negative, got %d", c.TotalRecords)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d", c.BatchSize)
	}
	if c.RouteIDMax <= 0 {
		return fmt.Errorf("route_id_max must be positive, got %d", c.RouteIDMax)
	}

	start, err := time.Parse(DateFormat, c.StartDate)
	if err != nil {
		return fmt.Errorf("invalid start_date %q: %w", c.StartDate, err)
	}
	end, err := time.Parse(DateFormat, c.EndDate)
	if err != nil {
		return fmt.Errorf("invalid end_date %q: %w", c.EndDate, err)
	}
	if end.Before(start) {
		return fmt.Errorf("end_date %s is before start_date %s", c.EndDate, c.StartDate)
	}

	if c.Manifest.Enabled && c.Manifest.Path == "" {
		return fmt.Errorf("manifest.path must not be empty when manifest is enabled")
	}
	return nil
}

// DateWindow returns the parsed inclusive date bounds. Validate must have
// succeeded first.
func (c Config) DateWindow() (start, end time.Time) {
	start, _ = time.Parse(DateFormat, c.StartDate)
	end, _ = time.Parse(DateFormat, c.EndDate)
	return start, end
}
