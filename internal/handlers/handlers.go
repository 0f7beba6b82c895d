// Package handlers contains the HTTP request handlers for the PWA shell:
// share ingestion, catalog forwarding, auth probes, and debug endpoints.
package handlers

import (
	"github.com/gofiber/fiber/v3"
)

// field reads a named value from the request body form (multipart or
// urlencoded) falling back to the query string. The share-target contract is
// transport-shape agnostic: POST multipart and GET query must behave the same.
func field(c fiber.Ctx, name string) string {
	if v := c.FormValue(name); v != "" {
		return v
	}
	return c.Query(name)
}

// jsonFailure writes the {error, details} failure envelope with the given
// HTTP status.
func jsonFailure(c fiber.Ctx, status int, code, details string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   code,
		"details": details,
	})
}
