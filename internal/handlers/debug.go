package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v3"

	"github.com/Mrlopezio/homelabpwa/internal/catalog"
	"github.com/Mrlopezio/homelabpwa/internal/config"
)

// DebugHandler exposes operator-facing configuration and connectivity checks.
// Responses report presence and shape of secrets, never their values.
type DebugHandler struct {
	cfg       *config.Config
	forwarder *catalog.Forwarder
}

// NewDebugHandler creates a new debug handler.
func NewDebugHandler(cfg *config.Config, forwarder *catalog.Forwarder) *DebugHandler {
	return &DebugHandler{cfg: cfg, forwarder: forwarder}
}

// EnvCheck reports whether the upstream URL and API key are configured and
// whether the URL parses, with a hint for the common bare-path mistake.
func (h *DebugHandler) EnvCheck(c fiber.Ctx) error {
	urlInfo := fiber.Map{"valid": false}
	var hint any

	if h.cfg.ToolsAPIURL != "" {
		parsed, err := url.Parse(h.cfg.ToolsAPIURL)
		if err != nil || parsed.Host == "" {
			urlInfo["error"] = "Invalid URL format"
		} else {
			urlInfo = fiber.Map{
				"host":     parsed.Host,
				"pathname": parsed.Path,
				"valid":    true,
			}
			if parsed.Path == "" || parsed.Path == "/" {
				hint = "WARNING: URL path is '/' - should be '/api/tools' or similar"
			}
		}
	}

	return c.JSON(fiber.Map{
		"hasApiUrl":    h.cfg.ToolsAPIURL != "",
		"hasApiKey":    h.cfg.ToolsAPIKey != "",
		"apiKeyLength": len(h.cfg.ToolsAPIKey),
		"urlInfo":      urlInfo,
		"hint":         hint,
	})
}

// TestAPI performs a single connectivity probe against the upstream.
func (h *DebugHandler) TestAPI(c fiber.Ctx) error {
	return c.JSON(h.forwarder.Probe(c.Context()))
}
