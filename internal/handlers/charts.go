// charts.go
//
// Hierarchical asset aggregation and chart data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of fleetboard.
// fleetboard is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// fleetboard is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with fleetboard.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/localnerve/fleetboard/internal/charts"
	"github.com/localnerve/fleetboard/internal/middleware"
	"github.com/localnerve/fleetboard/internal/timeseries"
	"github.com/localnerve/fleetboard/internal/types"
)

// ChartHandler serves chart-ready series
type ChartHandler struct{}

// CategoryCountsRequest is the POST body for category counts
type CategoryCountsRequest struct {
	Kind string       `json:"kind"`
	IDs  types.IDList `json:"ids" swaggertype:"array,string"`
}

// CategoryCountsResponse carries pie chart categories
type CategoryCountsResponse struct {
	Kind       charts.CategoryKind    `json:"kind"`
	Categories []charts.CategoryCount `json:"categories"`
}

// AxisResponse carries axis labels, and canonical day keys for day axes
type AxisResponse struct {
	Granularity string   `json:"granularity"`
	Labels      []string `json:"labels"`
	Keys        []string `json:"keys,omitempty"`
}

// LineChartResponse carries one line per asset
type LineChartResponse struct {
	SystemID string              `json:"systemId"`
	XAxis    []string            `json:"xAxis"`
	Legend   []string            `json:"legend"`
	Series   []charts.LineSeries `json:"series"`
}

// BarChartResponse carries stacked bars per machine
type BarChartResponse struct {
	SystemID string             `json:"systemId"`
	XAxis    []string           `json:"xAxis"`
	Keys     []string           `json:"keys"`
	Series   []charts.BarSeries `json:"series"`
}

// OutputResponse carries one asset's daily output
type OutputResponse struct {
	AssetID string              `json:"assetId"`
	Buckets []timeseries.Bucket `json:"buckets"`
}

func (h *ChartHandler) categoryCounts(c *fiber.Ctx, kind string, ids []string) error {
	engine, err := middleware.Engine(c)
	if err != nil {
		return respondError(c, err, "categoryCounts")
	}
	k, err := charts.ParseCategoryKind(kind)
	if err != nil {
		return respondError(c, types.NewCustomError(fiber.StatusBadRequest, "badRequest", "%v", err), "categoryCounts")
	}
	counts, err := engine.Assembler.CategoryCountSeries(k, ids)
	if err != nil {
		return respondError(c, err, "categoryCounts")
	}
	return c.Status(fiber.StatusOK).JSON(CategoryCountsResponse{Kind: k, Categories: counts})
}

// GetCategoryCounts handles GET /api/charts/category-counts?kind=&ids=
// @Summary Get category counts
// @Description Systems per environment (kind=environments) or recursive assets per system (kind=systems). No ids means every entity of the kind.
// @Tags Charts
// @Produce json
// @Param kind query string true "environments or systems"
// @Param ids query string false "Comma-separated ids, or repeat the key"
// @Success 200 {object} CategoryCountsResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /charts/category-counts [get]
func (h *ChartHandler) GetCategoryCounts(c *fiber.Ctx) error {
	return h.categoryCounts(c, c.Query("kind"), parseIDs(c, "ids"))
}

// PostCategoryCounts handles POST /api/charts/category-counts
// @Summary Get category counts for a posted id list
// @Tags Charts
// @Accept json
// @Produce json
// @Param request body CategoryCountsRequest true "Kind and ids, ids may be a single string"
// @Success 200 {object} CategoryCountsResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /charts/category-counts [post]
func (h *ChartHandler) PostCategoryCounts(c *fiber.Ctx) error {
	var req CategoryCountsRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, types.NewCustomError(fiber.StatusBadRequest, "badRequest", "invalid request body: %v", err), "categoryCounts")
	}
	return h.categoryCounts(c, req.Kind, req.IDs.Slice())
}

// GetHourAxis handles GET /api/charts/axis/hours
// @Summary Get the hourly axis
// @Description The first 24 timeframe points formatted as hour labels
// @Tags Charts
// @Produce json
// @Success 200 {object} AxisResponse
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /charts/axis/hours [get]
func (h *ChartHandler) GetHourAxis(c *fiber.Ctx) error {
	engine, err := middleware.Engine(c)
	if err != nil {
		return respondError(c, err, "getHourAxis")
	}
	return c.Status(fiber.StatusOK).JSON(AxisResponse{
		Granularity: timeseries.Hour.String(),
		Labels:      engine.Assembler.HourAxis(),
	})
}

// GetDayAxis handles GET /api/charts/axis/days?distinct=
// @Summary Get the daily axis
// @Description One day label per timeframe point, or with distinct=true one label per calendar day with its canonical key
// @Tags Charts
// @Produce json
// @Param distinct query bool false "Collapse to distinct days"
// @Success 200 {object} AxisResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /charts/axis/days [get]
func (h *ChartHandler) GetDayAxis(c *fiber.Ctx) error {
	engine, err := middleware.Engine(c)
	if err != nil {
		return respondError(c, err, "getDayAxis")
	}
	distinct, err := queryBool(c, "distinct", false)
	if err != nil {
		return respondError(c, err, "getDayAxis")
	}

	resp := AxisResponse{Granularity: timeseries.Day.String()}
	if distinct {
		resp.Labels = engine.Assembler.DayAxisLabels()
		resp.Keys = engine.Assembler.DayAxisKeys()
	} else {
		resp.Labels = engine.Assembler.DayAxis()
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetTemperatureSeries handles GET /api/charts/systems/:id/temperature
// @Summary Get temperature lines for a system
// @Description One line per asset under the system, recursively, that carries a temperature series
// @Tags Charts
// @Produce json
// @Param id path string true "System ID"
// @Success 200 {object} LineChartResponse
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /charts/systems/{id}/temperature [get]
func (h *ChartHandler) GetTemperatureSeries(c *fiber.Ctx) error {
	engine, err := middleware.Engine(c)
	if err != nil {
		return respondError(c, err, "getTemperatureSeries")
	}
	id := c.Params("id")

	lines, err := engine.Assembler.TemperatureSeriesFor(id)
	if err != nil {
		return respondError(c, err, "getTemperatureSeries")
	}
	legend := make([]string, len(lines))
	for i, l := range lines {
		legend[i] = l.Name
	}
	return c.Status(fiber.StatusOK).JSON(LineChartResponse{
		SystemID: id,
		XAxis:    engine.Assembler.HourAxis(),
		Legend:   legend,
		Series:   lines,
	})
}

// GetMachineOutputs handles GET /api/charts/systems/:id/machines/output
// @Summary Get daily output bars for the machines of a system
// @Description One stacked bar series per direct asset with an output series, bucketed by day
// @Tags Charts
// @Produce json
// @Param id path string true "System ID"
// @Success 200 {object} BarChartResponse
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /charts/systems/{id}/machines/output [get]
func (h *ChartHandler) GetMachineOutputs(c *fiber.Ctx) error {
	engine, err := middleware.Engine(c)
	if err != nil {
		return respondError(c, err, "getMachineOutputs")
	}
	id := c.Params("id")

	bars, err := engine.Assembler.MachineOutputSeries(id)
	if err != nil {
		return respondError(c, err, "getMachineOutputs")
	}
	return c.Status(fiber.StatusOK).JSON(BarChartResponse{
		SystemID: id,
		XAxis:    engine.Assembler.DayAxisLabels(),
		Keys:     engine.Assembler.DayAxisKeys(),
		Series:   bars,
	})
}

// GetAssetOutput handles GET /api/charts/assets/:id/output
// @Summary Get daily output of an asset
// @Tags Charts
// @Produce json
// @Param id path string true "Asset ID"
// @Success 200 {object} OutputResponse
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /charts/assets/{id}/output [get]
func (h *ChartHandler) GetAssetOutput(c *fiber.Ctx) error {
	engine, err := middleware.Engine(c)
	if err != nil {
		return respondError(c, err, "getAssetOutput")
	}
	id := c.Params("id")

	buckets, err := engine.Assembler.OutputSeriesByDayFor(id)
	if err != nil {
		return respondError(c, err, "getAssetOutput")
	}
	return c.Status(fiber.StatusOK).JSON(OutputResponse{AssetID: id, Buckets: buckets})
}

// GetDashboard handles GET /api/dashboard
// @Summary Get the dashboard
// @Description Every configured panel. A panel referencing an unknown id carries an error instead of data.
// @Tags Charts
// @Produce json
// @Success 200 {object} charts.Dashboard
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /dashboard [get]
func (h *ChartHandler) GetDashboard(c *fiber.Ctx) error {
	engine, err := middleware.Engine(c)
	if err != nil {
		return respondError(c, err, "getDashboard")
	}
	return c.Status(fiber.StatusOK).JSON(engine.Dashboard())
}
