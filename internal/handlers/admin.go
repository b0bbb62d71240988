package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/localnerve/fleetboard/internal/services"
	"github.com/localnerve/fleetboard/internal/types"
	"github.com/localnerve/fleetboard/internal/utils"
)

// AdminHandler handles snapshot administration
type AdminHandler struct {
	Store *services.SnapshotStore
}

// ReloadRequest optionally names the generation the caller last saw
type ReloadRequest struct {
	Generation types.Generation `json:"generation" swaggertype:"string"`
}

// Reload handles POST /api/admin/reload
// @Summary Reload the snapshot
// @Description Rebuild the snapshot from its source. With a generation, the reload only happens if that generation is still active.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body ReloadRequest false "Expected generation"
// @Success 200 {object} utils.ReloadResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security AdminToken
// @Router /admin/reload [post]
func (h *AdminHandler) Reload(c *fiber.Ctx) error {
	var req ReloadRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.ErrorResponse(c, "invalid request body: "+err.Error(), fiber.StatusBadRequest, "reload")
		}
	}

	start := time.Now()
	var (
		engine *services.Engine
		err    error
	)
	if req.Generation.Set {
		engine, err = h.Store.Reload(c.UserContext(), req.Generation.Value)
	} else {
		engine, err = h.Store.Load(c.UserContext())
	}
	if err != nil {
		if errors.Is(err, services.ErrGenerationConflict) {
			return utils.VersionErrorResponse(c, h.Store.Generation())
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "reload")
	}

	return utils.ReloadSuccessResponse(c, engine.Registry.ID(), engine.Registry.Generation(), time.Since(start))
}
