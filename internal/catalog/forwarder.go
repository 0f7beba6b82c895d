// Package catalog forwards normalized tool payloads to the upstream tools
// catalog API. The upstream is the system of record; nothing is persisted
// here and no retries are attempted.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Mrlopezio/homelabpwa/internal/config"
	"github.com/Mrlopezio/homelabpwa/internal/models"
	"github.com/Mrlopezio/homelabpwa/internal/validation"
)

// Closed error code set surfaced to clients.
const (
	CodeConfigError = "CONFIG_ERROR"
	CodeFetchError  = "FETCH_ERROR"
	CodeMissingURL  = "MISSING_URL"
	CodeUnexpected  = "UNEXPECTED"
)

// DetailsCap bounds error details in JSON responses. Details re-serialized
// into redirect URLs use the tighter cap in the share handler.
const DetailsCap = 200

// Upstream error bodies are read best-effort and capped well above DetailsCap.
const maxErrorBody = 4096

const headerAPIKey = "X-API-Key"

// HTTPCode builds the taxonomy code for an upstream rejection, e.g. "HTTP_500".
func HTTPCode(status int) string {
	return fmt.Sprintf("HTTP_%d", status)
}

// Result is the outcome of a single forward attempt. Exactly one of the
// success and failure halves is meaningful.
type Result struct {
	Success bool
	Data    json.RawMessage // upstream response body on success, shape owned by the upstream

	Code    string // one of the Code* constants or HTTP_<status>
	Details string // truncated, transport-safe
	Status  int    // HTTP status to mirror when surfacing the failure
}

// Forwarder sends payloads to the upstream catalog API with the configured
// API key. Single attempt, fail-fast, bounded by cfg.ForwardTimeout.
type Forwarder struct {
	cfg    *config.Config
	client *http.Client
}

// NewForwarder creates a forwarder for the configured upstream.
func NewForwarder(cfg *config.Config) *Forwarder {
	return &Forwarder{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.ForwardTimeout,
		},
	}
}

// Forward POSTs the JSON-encoded tool to the upstream catalog API.
// All failure modes come back as a Result; the error taxonomy is the
// contract, not Go errors.
func (f *Forwarder) Forward(ctx context.Context, tool models.NormalizedTool) Result {
	if r, ok := f.checkConfig(); !ok {
		return r
	}
	if tool.URL == "" {
		return failure(CodeMissingURL, "URL is required", http.StatusBadRequest)
	}

	return f.post(ctx, f.cfg.ToolsAPIURL, tool)
}

// FetchMeta asks the upstream for page metadata (title, description, logo)
// for a URL. The endpoint lives at <base>/tools/fetch-meta relative to the
// configured tools URL.
func (f *Forwarder) FetchMeta(ctx context.Context, rawURL string) Result {
	if r, ok := f.checkConfig(); !ok {
		return r
	}
	if rawURL == "" {
		return failure(CodeMissingURL, "URL is required", http.StatusBadRequest)
	}

	return f.post(ctx, f.fetchMetaURL(), map[string]string{"url": rawURL})
}

// ProbeResult reports upstream connectivity for the debug endpoint.
type ProbeResult struct {
	Success    bool   `json:"success"`
	Status     int    `json:"status,omitempty"`
	StatusText string `json:"statusText,omitempty"`
	Error      string `json:"error,omitempty"`
	ErrorType  string `json:"errorType,omitempty"`
}

// Probe issues a single OPTIONS request against the upstream to check
// connectivity without creating data. Hard 10 second cutoff.
func (f *Forwarder) Probe(ctx context.Context) ProbeResult {
	if !f.cfg.HasUpstream() {
		return ProbeResult{Success: false, Error: "Missing environment variables", ErrorType: CodeConfigError}
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodOptions, f.cfg.ToolsAPIURL, nil)
	if err != nil {
		return ProbeResult{Success: false, Error: err.Error(), ErrorType: CodeUnexpected}
	}
	req.Header.Set(headerAPIKey, f.cfg.ToolsAPIKey)

	resp, err := f.client.Do(req)
	if err != nil {
		return ProbeResult{Success: false, Error: err.Error(), ErrorType: CodeFetchError}
	}
	defer resp.Body.Close()

	return ProbeResult{
		Success:    true,
		Status:     resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
	}
}

func (f *Forwarder) checkConfig() (Result, bool) {
	if f.cfg.ToolsAPIKey == "" {
		return failure(CodeConfigError, "TOOLS_API_KEY not configured", http.StatusInternalServerError), false
	}
	if f.cfg.ToolsAPIURL == "" {
		return failure(CodeConfigError, "TOOLS_API_URL not configured", http.StatusInternalServerError), false
	}
	return Result{}, true
}

func (f *Forwarder) post(ctx context.Context, url string, payload any) Result {
	body, err := json.Marshal(payload)
	if err != nil {
		return failure(CodeUnexpected, err.Error(), http.StatusInternalServerError)
	}

	ctx, cancel := context.WithTimeout(ctx, f.cfg.ForwardTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return failure(CodeUnexpected, err.Error(), http.StatusInternalServerError)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerAPIKey, f.cfg.ToolsAPIKey)

	resp, err := f.client.Do(req)
	if err != nil {
		// DNS, connection refused, timeout, abort.
		return failure(CodeFetchError, err.Error(), http.StatusBadGateway)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := readErrorBody(resp.Body)
		slog.Error("upstream catalog rejected request", "status", resp.StatusCode, "details", detail)
		return failure(HTTPCode(resp.StatusCode), detail, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil || !json.Valid(data) {
		// A 2xx with an unparseable body is still a success; the write
		// happened upstream. Surfaced as success with empty data.
		return Result{Success: true}
	}

	return Result{Success: true, Data: json.RawMessage(data)}
}

// fetchMetaURL derives the metadata endpoint from the tools URL, trimming a
// trailing /tools segment so both ".../api/tools" and ".../api" work.
func (f *Forwarder) fetchMetaURL() string {
	base := strings.TrimRight(f.cfg.ToolsAPIURL, "/")
	base = strings.TrimSuffix(base, "/tools")
	return base + "/tools/fetch-meta"
}

func readErrorBody(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return "Could not read response"
	}
	return validation.Truncate(string(data), DetailsCap)
}

func failure(code, details string, status int) Result {
	return Result{
		Code:    code,
		Details: validation.Truncate(details, DetailsCap),
		Status:  status,
	}
}
