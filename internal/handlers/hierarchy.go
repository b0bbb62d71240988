package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/localnerve/fleetboard/internal/middleware"
	"github.com/localnerve/fleetboard/internal/registry"
)

// HierarchyHandler serves registry and resolver lookups
type HierarchyHandler struct{}

// EnvironmentView is an environment with its system count
type EnvironmentView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	SystemCount int    `json:"systemCount"`
}

// SystemView is a system with its root-first ancestry
type SystemView struct {
	registry.System
	Path     []string `json:"path"`
	Children []string `json:"children"`
}

// AssetView is an asset without its samples
type AssetView struct {
	ID        string   `json:"id"`
	Label     string   `json:"label"`
	SystemIDs []string `json:"systemIds"`
	Series    []string `json:"series"`
}

func assetViews(assets []registry.Asset) []AssetView {
	out := make([]AssetView, len(assets))
	for i, a := range assets {
		v := AssetView{ID: a.ID, Label: a.Label, SystemIDs: a.SystemIDs, Series: make([]string, len(a.Series))}
		for j, s := range a.Series {
			v.Series[j] = s.Name
		}
		out[i] = v
	}
	return out
}

// ListEnvironments handles GET /api/environments
// @Summary List environments
// @Description List every environment of the active snapshot with its system count
// @Tags Hierarchy
// @Produce json
// @Success 200 {array} EnvironmentView
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /environments [get]
func (h *HierarchyHandler) ListEnvironments(c *fiber.Ctx) error {
	engine, err := middleware.Engine(c)
	if err != nil {
		return respondError(c, err, "listEnvironments")
	}

	envs := engine.Registry.Environments()
	out := make([]EnvironmentView, 0, len(envs))
	for _, env := range envs {
		systems, err := engine.Registry.SystemsOf(env.ID)
		if err != nil {
			return respondError(c, err, "listEnvironments")
		}
		out = append(out, EnvironmentView{ID: env.ID, Name: env.Name, SystemCount: len(systems)})
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

// GetEnvironmentSystems handles GET /api/environments/:id/systems
// @Summary Get systems of an environment
// @Tags Hierarchy
// @Produce json
// @Param id path string true "Environment ID"
// @Success 200 {array} registry.System
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /environments/{id}/systems [get]
func (h *HierarchyHandler) GetEnvironmentSystems(c *fiber.Ctx) error {
	engine, err := middleware.Engine(c)
	if err != nil {
		return respondError(c, err, "getEnvironmentSystems")
	}
	systems, err := engine.Registry.SystemsOf(c.Params("id"))
	if err != nil {
		return respondError(c, err, "getEnvironmentSystems")
	}
	return c.Status(fiber.StatusOK).JSON(systems)
}

// GetSystem handles GET /api/systems/:id
// @Summary Get a system
// @Description Get a system with its ancestry path and direct child ids
// @Tags Hierarchy
// @Produce json
// @Param id path string true "System ID"
// @Success 200 {object} SystemView
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /systems/{id} [get]
func (h *HierarchyHandler) GetSystem(c *fiber.Ctx) error {
	engine, err := middleware.Engine(c)
	if err != nil {
		return respondError(c, err, "getSystem")
	}
	id := c.Params("id")

	sys, err := engine.Registry.System(id)
	if err != nil {
		return respondError(c, err, "getSystem")
	}
	path, err := engine.Resolver.Path(id)
	if err != nil {
		return respondError(c, err, "getSystem")
	}

	view := SystemView{System: sys, Path: make([]string, len(path)), Children: engine.Registry.ChildIDs(id)}
	for i, p := range path {
		view.Path[i] = p.ID
	}
	if view.Children == nil {
		view.Children = []string{}
	}
	return c.Status(fiber.StatusOK).JSON(view)
}

// GetSystemChildren handles GET /api/systems/:id/children
// @Summary Get child systems
// @Tags Hierarchy
// @Produce json
// @Param id path string true "System ID"
// @Success 200 {array} registry.System
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /systems/{id}/children [get]
func (h *HierarchyHandler) GetSystemChildren(c *fiber.Ctx) error {
	engine, err := middleware.Engine(c)
	if err != nil {
		return respondError(c, err, "getSystemChildren")
	}
	children, err := engine.Resolver.ChildrenOf(c.Params("id"))
	if err != nil {
		return respondError(c, err, "getSystemChildren")
	}
	return c.Status(fiber.StatusOK).JSON(children)
}

// GetSystemAssets handles GET /api/systems/:id/assets?recursive=
// @Summary Get assets of a system
// @Description Direct assets, or with recursive=true every asset of the system and its descendants, deduplicated
// @Tags Hierarchy
// @Produce json
// @Param id path string true "System ID"
// @Param recursive query bool false "Include descendant systems"
// @Success 200 {array} AssetView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /systems/{id}/assets [get]
func (h *HierarchyHandler) GetSystemAssets(c *fiber.Ctx) error {
	engine, err := middleware.Engine(c)
	if err != nil {
		return respondError(c, err, "getSystemAssets")
	}
	recursive, err := queryBool(c, "recursive", false)
	if err != nil {
		return respondError(c, err, "getSystemAssets")
	}

	var assets []registry.Asset
	if recursive {
		assets, err = engine.Resolver.RecursiveAssets(c.Params("id"))
	} else {
		assets, err = engine.Registry.AssetsOf(c.Params("id"))
	}
	if err != nil {
		return respondError(c, err, "getSystemAssets")
	}
	return c.Status(fiber.StatusOK).JSON(assetViews(assets))
}
