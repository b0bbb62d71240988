package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Data source kinds
const (
	SourceDatabase = "database"
	SourceFixture  = "fixture"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port       string
	LogLevel   string
	AdminToken string

	// Snapshot source
	DataSource  string // database or fixture
	FixturePath string // empty means the embedded demo fixture

	// Database configuration
	DBType            string // mysql, mariadb, postgres, sqlite, sqlite3, sqlserver
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int
	DBAutoMigrate     bool
	DBLogLevel        string

	// Time bucketing and labels
	Location        *time.Location
	HourLabelLayout string
	DayLabelLayout  string
	OutputReduction string

	// Optional explicit timeframe, overrides the snapshot's own
	TimeframeStart time.Time
	TimeframeEnd   time.Time
	TimeframeStep  time.Duration

	// Dashboard layout
	DashboardTemperatureSystems []string
	DashboardAssetPieSystems    []string
	DashboardMachineSystem      string

	ResolverCache bool
}

// Load loads configuration from environment variables, after applying any
// .env files given. Variables already set in the environment win.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if f == "" {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}

	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		AdminToken:        getEnv("ADMIN_TOKEN", ""),
		DataSource:        strings.ToLower(getEnv("DATA_SOURCE", SourceFixture)),
		FixturePath:       getEnv("FIXTURE_PATH", ""),
		DBType:            strings.ToLower(getEnv("DB_TYPE", "sqlite")),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "3306"),
		DBDatabase:        getEnv("DB_DATABASE", ""),
		DBUser:            getEnv("DB_USER", ""),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		DBAutoMigrate:     getEnvAsBool("DB_AUTO_MIGRATE", true),
		DBLogLevel:        strings.ToLower(getEnv("DB_LOG_LEVEL", "warn")),
		HourLabelLayout:   getEnv("HOUR_LABEL_LAYOUT", "Jan 2, 2006 3:04 PM"),
		DayLabelLayout:    getEnv("DAY_LABEL_LAYOUT", "January 2, 2006"),
		OutputReduction:   strings.ToLower(getEnv("OUTPUT_REDUCTION", "count")),
		ResolverCache:     getEnvAsBool("RESOLVER_CACHE", true),

		DashboardTemperatureSystems: getEnvAsList("DASHBOARD_TEMPERATURE_SYSTEMS",
			[]string{"sys002", "sys005", "sys006", "sys007"}),
		DashboardAssetPieSystems: getEnvAsList("DASHBOARD_ASSET_PIE_SYSTEMS",
			[]string{"sys005", "sys006", "sys007", "sys008", "sys009", "sys010", "sys011", "sys012", "sys013"}),
		DashboardMachineSystem: getEnv("DASHBOARD_MACHINE_SYSTEM", "sys005"),
	}

	loc, err := time.LoadLocation(getEnv("TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE is invalid: %w", err)
	}
	cfg.Location = loc

	// Validate required fields
	switch cfg.DataSource {
	case SourceFixture:
	case SourceDatabase:
		if cfg.DBDatabase == "" {
			return nil, fmt.Errorf("DB_DATABASE is required")
		}
		if cfg.DBType != "sqlite" && cfg.DBType != "sqlite3" && cfg.DBUser == "" {
			return nil, fmt.Errorf("DB_USER is required")
		}
	default:
		return nil, fmt.Errorf("DATA_SOURCE must be %q or %q, got %q", SourceDatabase, SourceFixture, cfg.DataSource)
	}
	if cfg.DBConnectionLimit < 1 {
		return nil, fmt.Errorf("DB_CONNECTION_LIMIT must be positive")
	}

	if err := cfg.loadTimeframe(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// HasTimeframe reports whether an explicit timeframe span is configured
func (c *Config) HasTimeframe() bool {
	return !c.TimeframeStart.IsZero()
}

func (c *Config) loadTimeframe() error {
	start := getEnv("TIMEFRAME_START", "")
	end := getEnv("TIMEFRAME_END", "")
	if start == "" && end == "" {
		return nil
	}
	if start == "" || end == "" {
		return fmt.Errorf("TIMEFRAME_START and TIMEFRAME_END must be set together")
	}

	var err error
	if c.TimeframeStart, err = time.Parse(time.RFC3339, start); err != nil {
		return fmt.Errorf("TIMEFRAME_START is invalid: %w", err)
	}
	if c.TimeframeEnd, err = time.Parse(time.RFC3339, end); err != nil {
		return fmt.Errorf("TIMEFRAME_END is invalid: %w", err)
	}
	if c.TimeframeStep, err = time.ParseDuration(getEnv("TIMEFRAME_STEP", "1h")); err != nil {
		return fmt.Errorf("TIMEFRAME_STEP is invalid: %w", err)
	}
	if c.TimeframeEnd.Before(c.TimeframeStart) {
		return fmt.Errorf("TIMEFRAME_END is before TIMEFRAME_START")
	}
	if c.TimeframeStep <= 0 {
		return fmt.Errorf("TIMEFRAME_STEP must be positive")
	}
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool gets an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList splits a comma separated variable, dropping blanks
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
