package services

import (
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/localnerve/fleetboard/internal/config"
	"github.com/localnerve/fleetboard/internal/logger"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database,omitempty"`
	Snapshot     string            `json:"snapshot,omitempty"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck reports database reachability when db is given and the
// active snapshot when store is given
func HealthCheck(cfg *config.Config, db *gorm.DB, store *SnapshotStore, log logger.Logger) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}
	fail := func(msg string) {
		result.Status = "unhealthy"
		if result.ErrorMessage == "" {
			result.ErrorMessage = msg
		} else {
			result.ErrorMessage += "; " + msg
		}
	}

	// Check database connectivity
	if db != nil {
		sqlDB, err := db.DB()
		if err != nil {
			result.Database = "error"
			result.Details["database_error"] = err.Error()
			fail(fmt.Sprintf("Database connection error: %v", err))
			log.Warn("health check failed", "check", "database", "error", err)
		} else if err := sqlDB.Ping(); err != nil {
			result.Database = "unreachable"
			result.Details["database_ping_error"] = err.Error()
			fail(fmt.Sprintf("Database ping failed: %v", err))
			log.Warn("health check failed", "check", "database_ping", "error", err)
		} else {
			result.Database = "ok"
			result.Details["database_type"] = cfg.DBType
			result.Details["database_name"] = cfg.DBDatabase
		}
	}

	// Check the active snapshot
	if store != nil {
		engine, err := store.Current()
		if err != nil {
			result.Snapshot = "not_loaded"
			fail(err.Error())
			log.Warn("health check failed", "check", "snapshot", "error", err)
		} else {
			st := engine.Registry.Stats()
			result.Snapshot = "ok"
			result.Details["snapshot_id"] = engine.Registry.ID()
			result.Details["snapshot_generation"] = strconv.FormatUint(engine.Registry.Generation(), 10)
			result.Details["snapshot_source"] = store.SourceName()
			result.Details["systems"] = strconv.Itoa(st.Systems)
			result.Details["assets"] = strconv.Itoa(st.Assets)
		}
	}

	if result.Status == "healthy" {
		log.Debug("health check passed")
	}

	return result
}
