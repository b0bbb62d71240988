// common.go
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
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/localnerve/fleetboard/internal/registry"
	"github.com/localnerve/fleetboard/internal/services"
	"github.com/localnerve/fleetboard/internal/types"
	"github.com/localnerve/fleetboard/internal/utils"
)

// parseIDs extracts ids from query parameters, supporting both repeated
// keys and comma-separated values. First occurrence order is kept.
func parseIDs(c *fiber.Ctx, key string) []string {
	seen := make(map[string]struct{})
	var ids []string

	// Visit all query arguments to collect repeated keys
	args := c.Context().QueryArgs()
	for k, value := range args.All() {
		if string(k) != key {
			continue
		}
		for _, v := range strings.Split(string(value), ",") {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			ids = append(ids, v)
		}
	}
	return ids
}

// queryBool reads a boolean query parameter. A bare key counts as true.
func queryBool(c *fiber.Ctx, key string, defaultValue bool) (bool, error) {
	args := c.Context().QueryArgs()
	if !args.Has(key) {
		return defaultValue, nil
	}
	raw := string(args.Peek(key))
	if raw == "" {
		return true, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, types.NewCustomError(fiber.StatusBadRequest, "badRequest", "query parameter %q must be a boolean", key)
	}
	return v, nil
}

// respondError maps domain errors onto the JSON error envelope
func respondError(c *fiber.Ctx, err error, errorType string) error {
	var nf *registry.NotFoundError
	var custom *types.CustomError
	switch {
	case errors.As(err, &nf):
		return utils.NotFoundResponse(c, nf.Error())
	case errors.Is(err, services.ErrNotLoaded):
		return utils.ServiceUnavailableResponse(c, err.Error())
	case errors.As(err, &custom):
		return utils.ErrorResponse(c, custom.Message, custom.Code, custom.Type)
	}
	return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, errorType)
}

// ErrorHandler handles errors globally
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	var fe *fiber.Error
	var custom *types.CustomError
	switch {
	case errors.As(err, &custom):
		code = custom.Code
		message = custom.Message
		errorType = custom.Type
	case errors.As(err, &fe):
		code = fe.Code
		message = fe.Message
	}

	// Check for version errors
	versionError := false
	if code == fiber.StatusConflict || errors.Is(err, services.ErrGenerationConflict) {
		versionError = true
		errorType = "version"
		code = fiber.StatusConflict
	}

	return c.Status(code).JSON(fiber.Map{
		"status":       code,
		"message":      message,
		"ok":           false,
		"versionError": versionError,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"url":          c.OriginalURL(),
		"type":         errorType,
	})
}

// NotFoundHandler is the terminal route
func NotFoundHandler(c *fiber.Ctx) error {
	return utils.NotFoundResponse(c, "[404] Resource Not Found")
}
