package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"

	"github.com/Mrlopezio/homelabpwa/internal/auth"
	"github.com/Mrlopezio/homelabpwa/internal/config"
	"github.com/Mrlopezio/homelabpwa/internal/models"
)

func authApp(cfg *config.Config) *fiber.App {
	handler := NewAuthHandler(cfg, auth.NewVerifier(cfg))
	app := fiber.New()
	app.Get("/api/auth/me", handler.Me)
	app.Get("/auth/login", handler.Login)
	app.Get("/auth/logout", handler.Logout)
	return app
}

func TestMeAuthenticated(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"email":"alice@example.com","groups":["admins"]}`))
	}))
	defer provider.Close()

	cfg := &config.Config{AuthURL: provider.URL, SessionCookie: "tinyauth"}
	app := authApp(cfg)

	req, _ := http.NewRequest("GET", "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "tinyauth", Value: "good"})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var result models.AuthResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !result.Authenticated || result.User == nil || result.User.Email != "alice@example.com" {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestMeUnauthenticated(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer provider.Close()

	cfg := &config.Config{AuthURL: provider.URL, SessionCookie: "tinyauth"}
	app := authApp(cfg)

	req, _ := http.NewRequest("GET", "/api/auth/me", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}

	var result models.AuthResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Authenticated || result.User != nil {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestMeProviderDownReadsUnauthenticated(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	provider.Close()

	cfg := &config.Config{AuthURL: provider.URL, SessionCookie: "tinyauth"}
	app := authApp(cfg)

	req, _ := http.NewRequest("GET", "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "tinyauth", Value: "any"})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 (outage reads as unauthenticated here)", resp.StatusCode)
	}
}

func TestLoginRedirectsToProvider(t *testing.T) {
	cfg := &config.Config{
		AuthURL:       "https://auth.example.com",
		BaseURL:       "https://app.example.com",
		SessionCookie: "tinyauth",
	}
	app := authApp(cfg)

	req, _ := http.NewRequest("GET", "/auth/login", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("status = %d, want 302", resp.StatusCode)
	}
	loc := resp.Header.Get("Location")
	if !strings.HasPrefix(loc, "https://auth.example.com?redirect=") {
		t.Errorf("Location = %q", loc)
	}
}

func TestLogoutRedirectsToProvider(t *testing.T) {
	cfg := &config.Config{
		AuthURL:       "https://auth.example.com",
		BaseURL:       "https://app.example.com",
		SessionCookie: "tinyauth",
	}
	app := authApp(cfg)

	req, _ := http.NewRequest("GET", "/auth/logout", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	loc := resp.Header.Get("Location")
	if !strings.HasPrefix(loc, "https://auth.example.com/api/logout?redirect=") {
		t.Errorf("Location = %q", loc)
	}
}
