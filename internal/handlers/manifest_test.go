package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"

	"github.com/Mrlopezio/homelabpwa/internal/config"
)

func TestManifestRegistersShareTarget(t *testing.T) {
	cfg := &config.Config{
		AppName:         "HomeLab",
		AppShortName:    "HomeLab",
		ThemeColor:      "#2563eb",
		BackgroundColor: "#ffffff",
	}
	app := fiber.New()
	app.Get("/manifest.json", NewManifestHandler(cfg).Show)

	req, _ := http.NewRequest("GET", "/manifest.json", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/manifest+json") {
		t.Errorf("Content-Type = %q, want application/manifest+json", ct)
	}

	var m manifest
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.Name != "HomeLab" {
		t.Errorf("name = %q, want HomeLab", m.Name)
	}
	if m.ShareTarget.Action != "/share-target" {
		t.Errorf("share_target action = %q, want /share-target", m.ShareTarget.Action)
	}
	if m.ShareTarget.Method != "POST" || m.ShareTarget.Enctype != "multipart/form-data" {
		t.Errorf("share_target = %+v", m.ShareTarget)
	}
	if m.ShareTarget.Params.URL != "url" || m.ShareTarget.Params.Title != "title" {
		t.Errorf("share_target params = %+v", m.ShareTarget.Params)
	}
}
