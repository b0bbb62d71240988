//go:build integration

package testenv

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localnerve/fleetboard/internal/database"
	"github.com/localnerve/fleetboard/internal/fixtures"
	"github.com/localnerve/fleetboard/internal/logger"
	"github.com/localnerve/fleetboard/internal/services"
	"github.com/localnerve/fleetboard/internal/timeseries"
)

func TestMariaDB_SeedAndLoad(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	m, err := StartMariaDB(ctx, MariaDBOptions{Tmpfs: true})
	require.NoError(t, err)
	t.Cleanup(func() { m.Terminate(context.Background()) })

	cfg := m.Config()
	db, err := database.Connect(cfg, logger.NewNop())
	require.NoError(t, err)
	defer database.Close(db)
	require.NoError(t, database.AutoMigrate(db))

	f, err := fixtures.Demo()
	require.NoError(t, err)
	require.NoError(t, fixtures.Seed(ctx, db, f))
	require.NoError(t, fixtures.Seed(ctx, db, f))

	store := services.NewSnapshotStore(&services.DBSource{DB: db}, services.Settings{
		Location:        time.UTC,
		OutputReduction: timeseries.Sum,
	}, logger.NewNop())
	engine, err := store.Load(ctx)
	require.NoError(t, err)

	st := engine.Registry.Stats()
	assert.Equal(t, 3, st.Environments)
	assert.Equal(t, 13, st.Systems)
	assert.Equal(t, 12, st.Assets)

	bars, err := engine.Assembler.MachineOutputSeries("sys005")
	require.NoError(t, err)
	require.Len(t, bars, 3)
	assert.Equal(t, 255.0, bars[0].Points[0].Value)

	result := services.HealthCheck(cfg, db, store, logger.NewNop())
	assert.Equal(t, "healthy", result.Status)
}
