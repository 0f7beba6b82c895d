package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/Mrlopezio/homelabpwa/internal/catalog"
	"github.com/Mrlopezio/homelabpwa/internal/config"
	"github.com/Mrlopezio/homelabpwa/internal/models"
)

func toolsApp(cfg *config.Config, categories *config.CategoriesConfig) *fiber.App {
	handler := NewToolsHandler(cfg, categories, catalog.NewForwarder(cfg))
	app := fiber.New()
	app.Post("/api/tools/send", handler.Send)
	app.Post("/api/tools/fetch-meta", handler.FetchMeta)
	return app
}

func upstreamConfig(apiURL string) *config.Config {
	return &config.Config{
		ToolsAPIURL:    apiURL,
		ToolsAPIKey:    "secret",
		ForwardTimeout: 5 * time.Second,
	}
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (*http.Response, map[string]any) {
	t.Helper()

	req, _ := http.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	var decoded map[string]any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("response not JSON: %v (%q)", err, raw)
		}
	}
	return resp, decoded
}

func TestSendForwardsTool(t *testing.T) {
	var got models.NormalizedTool
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"id":7}`))
	}))
	defer upstream.Close()

	app := toolsApp(upstreamConfig(upstream.URL), nil)
	resp, body := postJSON(t, app, "/api/tools/send",
		`{"url":"https://a.com","name":"A","tags":["Go","#Tools"],"category_id":2,"is_favorite":true}`)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%v)", resp.StatusCode, body)
	}
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
	if got.URL != "https://a.com" || got.CategoryID != 2 || !got.IsFavorite {
		t.Errorf("upstream received %+v", got)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "go" || got.Tags[1] != "tools" {
		t.Errorf("tags = %v, want normalized [go tools]", got.Tags)
	}
}

func TestSendMissingURL(t *testing.T) {
	calls := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer upstream.Close()

	app := toolsApp(upstreamConfig(upstream.URL), nil)
	resp, body := postJSON(t, app, "/api/tools/send", `{"name":"no url"}`)

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if body["error"] != "MISSING_URL" {
		t.Errorf("error = %v, want MISSING_URL", body["error"])
	}
	if calls != 0 {
		t.Errorf("upstream called %d times, want 0", calls)
	}
}

func TestSendConfigError(t *testing.T) {
	app := toolsApp(&config.Config{ForwardTimeout: time.Second}, nil)
	resp, body := postJSON(t, app, "/api/tools/send", `{"url":"https://a.com"}`)

	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
	if body["error"] != "CONFIG_ERROR" {
		t.Errorf("error = %v, want CONFIG_ERROR", body["error"])
	}
}

func TestSendMirrorsUpstreamStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte("duplicate url"))
	}))
	defer upstream.Close()

	app := toolsApp(upstreamConfig(upstream.URL), nil)
	resp, body := postJSON(t, app, "/api/tools/send", `{"url":"https://a.com"}`)

	if resp.StatusCode != http.StatusConflict {
		t.Errorf("status = %d, want 409 (mirrored)", resp.StatusCode)
	}
	if body["error"] != "HTTP_409" {
		t.Errorf("error = %v, want HTTP_409", body["error"])
	}
	if body["details"] != "duplicate url" {
		t.Errorf("details = %v, want duplicate url", body["details"])
	}
}

func TestSendInvalidBody(t *testing.T) {
	app := toolsApp(upstreamConfig("https://unused.example"), nil)
	resp, body := postJSON(t, app, "/api/tools/send", `{not json`)

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if body["error"] != "UNEXPECTED" {
		t.Errorf("error = %v, want UNEXPECTED", body["error"])
	}
}

func TestSendCategoryDefaultFromMapping(t *testing.T) {
	var got models.NormalizedTool
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{}`))
	}))
	defer upstream.Close()

	categories := &config.CategoriesConfig{
		DefaultCategoryID: 9,
		Tags:              map[string]int{"homelab": 4},
	}
	app := toolsApp(upstreamConfig(upstream.URL), categories)

	_, _ = postJSON(t, app, "/api/tools/send", `{"url":"https://a.com","tags":["homelab"]}`)
	if got.CategoryID != 4 {
		t.Errorf("category_id = %d, want 4 (tag mapping)", got.CategoryID)
	}

	_, _ = postJSON(t, app, "/api/tools/send", `{"url":"https://a.com","tags":["other"]}`)
	if got.CategoryID != 9 {
		t.Errorf("category_id = %d, want 9 (default)", got.CategoryID)
	}
}

func TestSendExplicitCategoryWins(t *testing.T) {
	var got models.NormalizedTool
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{}`))
	}))
	defer upstream.Close()

	categories := &config.CategoriesConfig{DefaultCategoryID: 9}
	app := toolsApp(upstreamConfig(upstream.URL), categories)

	_, _ = postJSON(t, app, "/api/tools/send", `{"url":"https://a.com","category_id":5}`)
	if got.CategoryID != 5 {
		t.Errorf("category_id = %d, want 5 (explicit)", got.CategoryID)
	}
}

func TestFetchMetaForwards(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"url":"https://a.com","title":"A","description":"desc"}`))
	}))
	defer upstream.Close()

	app := toolsApp(upstreamConfig(upstream.URL+"/api/tools"), nil)
	resp, body := postJSON(t, app, "/api/tools/fetch-meta", `{"url":"https://a.com"}`)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body["title"] != "A" {
		t.Errorf("title = %v, want A", body["title"])
	}
}

func TestFetchMetaMissingURL(t *testing.T) {
	app := toolsApp(upstreamConfig("https://unused.example"), nil)
	resp, body := postJSON(t, app, "/api/tools/fetch-meta", `{}`)

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if body["error"] != "MISSING_URL" {
		t.Errorf("error = %v, want MISSING_URL", body["error"])
	}
}
