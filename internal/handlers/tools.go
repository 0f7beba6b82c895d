package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"

	"github.com/Mrlopezio/homelabpwa/internal/catalog"
	"github.com/Mrlopezio/homelabpwa/internal/config"
	"github.com/Mrlopezio/homelabpwa/internal/metrics"
	"github.com/Mrlopezio/homelabpwa/internal/models"
	"github.com/Mrlopezio/homelabpwa/internal/validation"
)

// ToolsHandler exposes the same-origin endpoints the shell calls when the
// user confirms a staged share: the catalog forward and the metadata lookup.
type ToolsHandler struct {
	cfg        *config.Config
	categories *config.CategoriesConfig
	forwarder  *catalog.Forwarder
}

// NewToolsHandler creates a new tools API handler.
func NewToolsHandler(cfg *config.Config, categories *config.CategoriesConfig, forwarder *catalog.Forwarder) *ToolsHandler {
	return &ToolsHandler{cfg: cfg, categories: categories, forwarder: forwarder}
}

// Send forwards a confirmed tool to the upstream catalog API.
// Responds {success:true, data} or {error, details} with a mirrored status.
func (h *ToolsHandler) Send(c fiber.Ctx) error {
	var body struct {
		URL         string   `json:"url"`
		Name        string   `json:"name"`
		Description string   `json:"description"`
		CategoryID  int      `json:"category_id"`
		Tags        []string `json:"tags"`
		IsFavorite  bool     `json:"is_favorite"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonFailure(c, fiber.StatusBadRequest, catalog.CodeUnexpected, "invalid request body")
	}

	if body.URL == "" {
		return jsonFailure(c, fiber.StatusBadRequest, catalog.CodeMissingURL, "URL is required")
	}

	tags := validation.NormalizeTags(body.Tags)
	categoryID := body.CategoryID
	if categoryID == 0 {
		categoryID = h.categories.Resolve(tags)
	}

	tool := models.NormalizedTool{
		URL:         body.URL,
		Name:        body.Name,
		Description: body.Description,
		Tags:        tags,
		CategoryID:  categoryID,
		IsFavorite:  body.IsFavorite,
	}

	result := h.forwarder.Forward(c.Context(), tool)
	metrics.RecordForward(result.Success, result.Code)

	if !result.Success {
		return jsonFailure(c, result.Status, result.Code, result.Details)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    result.Data,
	})
}

// FetchMeta asks the upstream for page metadata for a URL, so the shell can
// prefill name and description before the user confirms.
func (h *ToolsHandler) FetchMeta(c fiber.Ctx) error {
	var body struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonFailure(c, fiber.StatusBadRequest, catalog.CodeUnexpected, "invalid request body")
	}
	if body.URL == "" {
		return jsonFailure(c, fiber.StatusBadRequest, catalog.CodeMissingURL, "URL is required")
	}

	result := h.forwarder.FetchMeta(c.Context(), body.URL)
	if !result.Success {
		return jsonFailure(c, result.Status, result.Code, result.Details)
	}
	if result.Data == nil {
		return c.JSON(fiber.Map{})
	}
	return c.Type("json").Send(result.Data)
}
