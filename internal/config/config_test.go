package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, SourceFixture, cfg.DataSource)
	assert.Equal(t, "sqlite", cfg.DBType)
	assert.Equal(t, "count", cfg.OutputReduction)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, []string{"sys002", "sys005", "sys006", "sys007"}, cfg.DashboardTemperatureSystems)
	assert.Len(t, cfg.DashboardAssetPieSystems, 9)
	assert.Equal(t, "sys005", cfg.DashboardMachineSystem)
	assert.True(t, cfg.ResolverCache)
	assert.False(t, cfg.HasTimeframe())
}

func TestLoad_DatabaseRequiresName(t *testing.T) {
	t.Setenv("DATA_SOURCE", "database")
	t.Setenv("DB_TYPE", "mysql")

	_, err := Load()
	assert.EqualError(t, err, "DB_DATABASE is required")

	t.Setenv("DB_DATABASE", "fleet")
	_, err = Load()
	assert.EqualError(t, err, "DB_USER is required")

	t.Setenv("DB_USER", "fleet")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "fleet", cfg.DBDatabase)
}

func TestLoad_SqliteNeedsNoUser(t *testing.T) {
	t.Setenv("DATA_SOURCE", "database")
	t.Setenv("DB_DATABASE", "file::memory:")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DBType)
}

func TestLoad_RejectsUnknownSource(t *testing.T) {
	t.Setenv("DATA_SOURCE", "kafka")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_Timeframe(t *testing.T) {
	t.Setenv("TIMEFRAME_START", "2026-03-02T00:00:00Z")
	t.Setenv("TIMEFRAME_END", "2026-03-03T23:00:00Z")
	t.Setenv("TIMEFRAME_STEP", "30m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.HasTimeframe())
	assert.Equal(t, 30*time.Minute, cfg.TimeframeStep)

	t.Setenv("TIMEFRAME_END", "2026-03-01T00:00:00Z")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("TIMEFRAME_END", "")
	_, err = Load()
	assert.EqualError(t, err, "TIMEFRAME_START and TIMEFRAME_END must be set together")
}

func TestLoad_BadTimezone(t *testing.T) {
	t.Setenv("TIMEZONE", "Mars/Olympus")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DASHBOARD_MACHINE_SYSTEM=sys009\nDASHBOARD_TEMPERATURE_SYSTEMS=sys001, ,sys003\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("DASHBOARD_MACHINE_SYSTEM")
		os.Unsetenv("DASHBOARD_TEMPERATURE_SYSTEMS")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sys009", cfg.DashboardMachineSystem)
	assert.Equal(t, []string{"sys001", "sys003"}, cfg.DashboardTemperatureSystems)

	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
