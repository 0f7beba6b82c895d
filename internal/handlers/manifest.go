package handlers

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Mrlopezio/homelabpwa/internal/config"
)

// manifest is the Web App Manifest served at /manifest.json. The share_target
// member is what registers the app in the OS share sheet.
type manifest struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	StartURL        string         `json:"start_url"`
	Display         string         `json:"display"`
	BackgroundColor string         `json:"background_color"`
	ThemeColor      string         `json:"theme_color"`
	Icons           []manifestIcon `json:"icons"`
	ShareTarget     shareTarget    `json:"share_target"`
}

type manifestIcon struct {
	Src     string `json:"src"`
	Sizes   string `json:"sizes"`
	Type    string `json:"type"`
	Purpose string `json:"purpose,omitempty"`
}

type shareTarget struct {
	Action  string            `json:"action"`
	Method  string            `json:"method"`
	Enctype string            `json:"enctype"`
	Params  shareTargetParams `json:"params"`
}

type shareTargetParams struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

// ManifestHandler serves the generated Web App Manifest.
type ManifestHandler struct {
	cfg *config.Config
}

// NewManifestHandler creates a new manifest handler.
func NewManifestHandler(cfg *config.Config) *ManifestHandler {
	return &ManifestHandler{cfg: cfg}
}

// Show serves the manifest built from configuration.
func (h *ManifestHandler) Show(c fiber.Ctx) error {
	return c.JSON(manifest{
		Name:            h.cfg.AppName,
		ShortName:       h.cfg.AppShortName,
		StartURL:        "/",
		Display:         "standalone",
		BackgroundColor: h.cfg.BackgroundColor,
		ThemeColor:      h.cfg.ThemeColor,
		Icons: []manifestIcon{
			{Src: "/icons/icon-192x192.png", Sizes: "192x192", Type: "image/png", Purpose: "any maskable"},
			{Src: "/icons/icon-512x512.png", Sizes: "512x512", Type: "image/png", Purpose: "any maskable"},
		},
		ShareTarget: shareTarget{
			Action:  "/share-target",
			Method:  "POST",
			Enctype: "multipart/form-data",
			Params:  shareTargetParams{Title: "title", Text: "text", URL: "url"},
		},
	}, "application/manifest+json")
}
