package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"gorm.io/gorm"

	"github.com/localnerve/fleetboard/internal/config"
	"github.com/localnerve/fleetboard/internal/database"
	"github.com/localnerve/fleetboard/internal/handlers"
	"github.com/localnerve/fleetboard/internal/logger"
	"github.com/localnerve/fleetboard/internal/services"

	_ "github.com/localnerve/fleetboard/docs/api" // Swagger docs
)

// @title Fleetboard API
// @version 1.0.0
// @description Hierarchical asset aggregation and chart data service
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/fleetboard
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey AdminToken
// @in header
// @name X-Admin-Token

func main() {
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to a .env file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(envFilename)
	if err != nil {
		logger.New("info").Fatal("failed to load configuration", "error", err)
	}
	log := logger.New(cfg.LogLevel)
	defer log.Sync()

	settings, err := services.SettingsFromConfig(cfg)
	if err != nil {
		log.Fatal("invalid configuration", "error", err)
	}

	// Snapshot source
	var db *gorm.DB
	var source services.Source
	switch cfg.DataSource {
	case config.SourceDatabase:
		db, err = database.Connect(cfg, log)
		if err != nil {
			log.Fatal("failed to connect to database", "error", err)
		}
		defer database.Close(db)

		if cfg.DBAutoMigrate {
			if err := database.AutoMigrate(db); err != nil {
				log.Fatal("failed to run migrations", "error", err)
			}
		}
		source = &services.DBSource{DB: db}
	default:
		source = &services.FixtureSource{Path: cfg.FixturePath}
	}

	store := services.NewSnapshotStore(source, settings, log)
	loadCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
	_, err = store.Load(loadCtx)
	cancel()
	if err != nil {
		log.Fatal("failed to load initial snapshot", "error", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler,
		DisableStartupMessage: true,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("fleetboard")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	handlers.RegisterRoutes(app, handlers.Deps{
		Config: cfg,
		DB:     db,
		Store:  store,
		Log:    log,
	})

	// 404 handler
	app.Use(handlers.NotFoundHandler)

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("gracefully shutting down")
		_ = app.Shutdown()
	}()

	// Start server
	log.Info("starting server", "port", cfg.Port, "source", store.SourceName())
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("failed to start server", "error", err)
	}

	log.Info("server stopped")
}
