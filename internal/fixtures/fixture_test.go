package fixtures

import (
	"context"
	"errors"
	"strings"
	"testing"

	glebarez "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/localnerve/fleetboard/internal/models"
)

const small = `
timeframe:
  start: 2026-03-02T00:00:00Z
  end: 2026-03-02T05:00:00Z
environments:
  - {id: e1, name: North}
systems:
  - {id: s1, name: Plant, environment: e1}
  - {id: s2, name: Line, environment: e1, parent: s1}
assets:
  - id: a1
    label: Oven
    systems: [s2, s1]
    series:
      - name: temperature
        values:
          - {timestamp: 2026-03-02T01:00:00Z, value: 180}
          - {timestamp: 2026-03-02T02:00:00Z, value: 182.5}
`

func TestParse_Small(t *testing.T) {
	f, err := Parse(strings.NewReader(small))
	require.NoError(t, err)

	in, err := f.Input()
	require.NoError(t, err)
	assert.Len(t, in.Environments, 1)
	assert.Equal(t, "s1", in.Systems[1].ParentID)
	assert.Equal(t, []string{"s2", "s1"}, in.Assets[0].SystemIDs)
	require.Len(t, in.Assets[0].Series, 1)
	assert.Equal(t, 182.5, in.Assets[0].Series[0].Values[1].Value)
	assert.Len(t, in.Timeframe, 6)
}

func TestParse_RejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"unknown key":         "environments: []\nbogus: 1\n",
		"duplicate env":       "environments: [{id: e1}, {id: e1}]\n",
		"unknown environment": "environments: [{id: e1}]\nsystems: [{id: s1, environment: e9}]\n",
		"unknown parent":      "environments: [{id: e1}]\nsystems: [{id: s1, environment: e1, parent: s9}]\n",
		"unknown system":      "environments: [{id: e1}]\nassets: [{id: a1, systems: [s1]}]\n",
		"bad step":            "timeframe: {start: 2026-03-02T00:00:00Z, end: 2026-03-03T00:00:00Z, step: soon}\n",
		"empty":               "",
	}
	for name, doc := range cases {
		_, err := Parse(strings.NewReader(doc))
		assert.Error(t, err, name)
	}

	_, err := Parse(strings.NewReader("environments: [{id: e1}]\nsystems: [{id: s1, environment: e9}]\n"))
	assert.True(t, errors.Is(err, ErrInvalid))
	assert.Contains(t, err.Error(), `system "s1"`)
}

func TestDemo(t *testing.T) {
	f, err := Demo()
	require.NoError(t, err)
	assert.Len(t, f.Environments, 3)
	assert.Len(t, f.Systems, 13)

	in, err := f.Input()
	require.NoError(t, err)
	assert.Len(t, in.Timeframe, 72)

	same, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, f, same)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/fleet.yaml")
	assert.Error(t, err)
}

func newDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(glebarez.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func TestSeed_Idempotent(t *testing.T) {
	db := newDB(t)
	f, err := Demo()
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, Seed(ctx, db, f))
	require.NoError(t, Seed(ctx, db, f))

	var count int64
	require.NoError(t, db.Model(&models.System{}).Count(&count).Error)
	assert.Equal(t, int64(13), count)
	require.NoError(t, db.Model(&models.Asset{}).Count(&count).Error)
	assert.Equal(t, int64(12), count)
	require.NoError(t, db.Model(&models.DataSeries{}).Count(&count).Error)
	assert.Equal(t, int64(15), count)

	var welder models.Asset
	require.NoError(t, db.Preload("Systems").Preload("Series").First(&welder, "asset_id = ?", "ast003").Error)
	assert.Len(t, welder.Systems, 2)
	assert.Len(t, welder.Series, 2)

	var line models.System
	require.NoError(t, db.First(&line, "system_id = ?", "sys005").Error)
	require.NotNil(t, line.ParentID)
	assert.Equal(t, "sys002", *line.ParentID)
}
