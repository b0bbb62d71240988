package utils

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// SuccessResponse sends a standard success response
func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(data)
}

// ErrorResponse sends a standard error response
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":    status,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}

// VersionErrorResponse sends a snapshot generation conflict error (409)
func VersionErrorResponse(c *fiber.Ctx, active uint64) error {
	return c.Status(fiber.StatusConflict).JSON(fiber.Map{
		"status":       fiber.StatusConflict,
		"message":      fmt.Sprintf("E_VERSION - Snapshot generation is %d. Refresh and retry.", active),
		"ok":           false,
		"versionError": true,
		"generation":   strconv.FormatUint(active, 10),
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"url":          c.OriginalURL(),
		"type":         "version",
	})
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"status":    fiber.StatusNotFound,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      "notFound",
	})
}

// ServiceUnavailableResponse sends a 503 while no snapshot is active
func ServiceUnavailableResponse(c *fiber.Ctx, message string) error {
	c.Set(fiber.HeaderRetryAfter, "5")
	return ErrorResponse(c, message, fiber.StatusServiceUnavailable, "unavailable")
}

// ReloadSuccessResponse sends the result of a snapshot reload
func ReloadSuccessResponse(c *fiber.Ctx, snapshotID string, generation uint64, elapsed time.Duration) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":       "Success",
		"ok":            true,
		"snapshotId":    snapshotID,
		"newGeneration": strconv.FormatUint(generation, 10),
		"elapsedMs":     elapsed.Milliseconds(),
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	})
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status       int    `json:"status"`
	Message      string `json:"message"`
	Ok           bool   `json:"ok"`
	Timestamp    string `json:"timestamp"`
	URL          string `json:"url"`
	Type         string `json:"type,omitempty"`
	VersionError bool   `json:"versionError,omitempty"`
	Generation   string `json:"generation,omitempty"`
}

// ReloadResponseStruct defines the schema for reload success responses
type ReloadResponseStruct struct {
	Message       string `json:"message"`
	Ok            bool   `json:"ok"`
	SnapshotID    string `json:"snapshotId"`
	NewGeneration string `json:"newGeneration"`
	ElapsedMs     int64  `json:"elapsedMs"`
	Timestamp     string `json:"timestamp"`
}
