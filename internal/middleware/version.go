package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/localnerve/fleetboard/internal/services"
)

const (
	// EngineKey is the Locals key holding the request's *services.Engine
	EngineKey = "engine"

	HeaderSnapshotID         = "X-Snapshot-Id"
	HeaderSnapshotGeneration = "X-Snapshot-Generation"
)

// VersionMiddleware parses the X-Api-Version header and stores it in context
func VersionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		version := c.Get("X-Api-Version", "1.0.0")

		// Support version aliases
		if version == "1.0" {
			version = "1.0.0"
		}

		// Store version in context
		c.Locals("apiVersion", version)

		return c.Next()
	}
}

// SnapshotMiddleware pins the active engine for the whole request and
// labels the response with its identity. Requests before the first load
// pass through without an engine.
func SnapshotMiddleware(store *services.SnapshotStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		engine, err := store.Current()
		if err == nil {
			c.Locals(EngineKey, engine)
			c.Set(HeaderSnapshotID, engine.Registry.ID())
			c.Set(HeaderSnapshotGeneration, strconv.FormatUint(engine.Registry.Generation(), 10))
		}
		return c.Next()
	}
}

// Engine returns the engine pinned by SnapshotMiddleware
func Engine(c *fiber.Ctx) (*services.Engine, error) {
	if engine, ok := c.Locals(EngineKey).(*services.Engine); ok && engine != nil {
		return engine, nil
	}
	return nil, services.ErrNotLoaded
}
