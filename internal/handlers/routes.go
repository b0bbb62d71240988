package handlers

import (
	"gorm.io/gorm"

	"github.com/gofiber/fiber/v2"

	"github.com/localnerve/fleetboard/internal/config"
	"github.com/localnerve/fleetboard/internal/logger"
	"github.com/localnerve/fleetboard/internal/middleware"
	"github.com/localnerve/fleetboard/internal/services"
)

// Deps are the shared dependencies of every handler
type Deps struct {
	Config *config.Config
	DB     *gorm.DB // nil when serving a fixture
	Store  *services.SnapshotStore
	Log    logger.Logger
}

// RegisterRoutes mounts the health and API routes
func RegisterRoutes(app *fiber.App, d Deps) {
	healthHandler := &HealthHandler{Config: d.Config, DB: d.DB, Store: d.Store, Log: d.Log}
	app.Get("/health", healthHandler.GetHealth)

	// API routes under /api
	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())
	api.Use(middleware.SnapshotMiddleware(d.Store))

	hierarchyHandler := &HierarchyHandler{}
	api.Get("/environments", hierarchyHandler.ListEnvironments)
	api.Get("/environments/:id/systems", hierarchyHandler.GetEnvironmentSystems)
	api.Get("/systems/:id", hierarchyHandler.GetSystem)
	api.Get("/systems/:id/children", hierarchyHandler.GetSystemChildren)
	api.Get("/systems/:id/assets", hierarchyHandler.GetSystemAssets)

	chartHandler := &ChartHandler{}
	chartRoutes := api.Group("/charts")
	chartRoutes.Get("/category-counts", chartHandler.GetCategoryCounts)
	chartRoutes.Post("/category-counts", chartHandler.PostCategoryCounts)
	chartRoutes.Get("/axis/hours", chartHandler.GetHourAxis)
	chartRoutes.Get("/axis/days", chartHandler.GetDayAxis)
	chartRoutes.Get("/systems/:id/temperature", chartHandler.GetTemperatureSeries)
	chartRoutes.Get("/systems/:id/machines/output", chartHandler.GetMachineOutputs)
	chartRoutes.Get("/assets/:id/output", chartHandler.GetAssetOutput)
	api.Get("/dashboard", chartHandler.GetDashboard)

	// Admin-only routes
	adminHandler := &AdminHandler{Store: d.Store}
	api.Post("/admin/reload", middleware.AdminToken(d.Config.AdminToken), adminHandler.Reload)
}
