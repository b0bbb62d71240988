package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"

	"github.com/localnerve/fleetboard/internal/config"
	"github.com/localnerve/fleetboard/internal/logger"
	"github.com/localnerve/fleetboard/internal/models"
)

func memoryConfig() *config.Config {
	return &config.Config{
		DBType:            "sqlite",
		DBDatabase:        "file::memory:",
		DBConnectionLimit: 1,
		DBLogLevel:        "silent",
	}
}

func TestConnect_SqliteMigratesAndStoresSamples(t *testing.T) {
	db, err := Connect(memoryConfig(), logger.NewNop())
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, AutoMigrate(db))

	ts := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&models.Asset{AssetID: "a1", Label: "Oven"}).Error)
	require.NoError(t, db.Create(&models.DataSeries{
		AssetID: "a1",
		Name:    "temperature",
		Samples: models.SampleList{{Timestamp: ts, Value: 181.5}},
	}).Error)

	var got models.DataSeries
	require.NoError(t, db.Where("asset_id = ?", "a1").First(&got).Error)
	require.Len(t, got.Samples, 1)
	assert.True(t, ts.Equal(got.Samples[0].Timestamp))
	assert.Equal(t, 181.5, got.Samples[0].Value)
}

func TestConnect_EmptySamplesStoreAsArray(t *testing.T) {
	db, err := Connect(memoryConfig(), logger.NewNop())
	require.NoError(t, err)
	defer Close(db)
	require.NoError(t, AutoMigrate(db))

	require.NoError(t, db.Create(&models.DataSeries{AssetID: "a1", Name: "output"}).Error)

	var got models.DataSeries
	require.NoError(t, db.First(&got).Error)
	assert.NotNil(t, got.Samples)
	assert.Empty(t, got.Samples)
}

func TestDialector_Unsupported(t *testing.T) {
	cfg := memoryConfig()
	cfg.DBType = "oracle"
	_, err := Dialector(cfg)
	assert.EqualError(t, err, "unsupported database type: oracle")
}

func TestDialector_Names(t *testing.T) {
	for dbType, name := range map[string]string{
		"mysql":     "mysql",
		"mariadb":   "mysql",
		"postgres":  "postgres",
		"sqlite":    "sqlite",
		"sqlite3":   "sqlite",
		"sqlserver": "sqlserver",
	} {
		cfg := memoryConfig()
		cfg.DBType = dbType
		d, err := Dialector(cfg)
		require.NoError(t, err, dbType)
		assert.Equal(t, name, d.Name(), dbType)
	}
}

func TestGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, GormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, GormLogLevel("error"))
	assert.Equal(t, gormlogger.Info, GormLogLevel("info"))
	assert.Equal(t, gormlogger.Warn, GormLogLevel(""))
}
