package handlers

import (
	"log"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/Mrlopezio/homelabpwa/internal/catalog"
	"github.com/Mrlopezio/homelabpwa/internal/config"
	"github.com/Mrlopezio/homelabpwa/internal/metrics"
	"github.com/Mrlopezio/homelabpwa/internal/models"
	"github.com/Mrlopezio/homelabpwa/internal/validation"
)

// URLDetailsCap bounds error details carried in redirect URLs; tighter than
// the JSON cap to keep the final URL within practical length limits.
const URLDetailsCap = 100

// ShareHandler receives OS-level share payloads, normalizes them, and stages
// them for user confirmation. It never contacts the upstream API: the write
// only happens after the user confirms from the shell.
type ShareHandler struct {
	cfg *config.Config
}

// NewShareHandler creates a new share ingestion handler.
func NewShareHandler(cfg *config.Config) *ShareHandler {
	return &ShareHandler{cfg: cfg}
}

// Receive handles POST (multipart form) and GET (query) share submissions
// with identical semantics, redirecting 303 to the shell with the staged
// state encoded as query parameters.
func (h *ShareHandler) Receive(c fiber.Ctx) error {
	payload := models.SharePayload{
		Title: field(c, "title"),
		Text:  field(c, "text"),
		URL:   field(c, "url"),
	}
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, files := range form.File {
			payload.FileCount += len(files)
		}
	}

	log.Printf("Received share: title=%q text=%d bytes url=%q files=%d",
		payload.Title, len(payload.Text), payload.URL, payload.FileCount)

	state := normalize(payload)
	if state.Status == models.ShareStatusError {
		metrics.SharesReceived.WithLabelValues("error").Inc()
	} else {
		metrics.SharesReceived.WithLabelValues("pending").Inc()
	}

	// See-other: the follow-up request is a GET against the shell regardless
	// of how the share arrived.
	return c.Redirect().Status(fiber.StatusSeeOther).To("/?" + encodeShareState(state))
}

// normalize resolves the effective URL, description, and tags from a raw
// share payload. A share that resolves no URL is a terminal error; the
// upstream API is never contacted for it.
func normalize(payload models.SharePayload) models.ShareState {
	effectiveURL := payload.URL
	if valid, _ := validation.ValidateURL(effectiveURL); !valid {
		effectiveURL = validation.ExtractURL(payload.Text)
	}

	if effectiveURL == "" {
		detail := "no URL found in shared content"
		if payload.IsEmpty() {
			detail = "empty share: no title, text, or URL"
		}
		return models.ShareState{
			Status:  models.ShareStatusError,
			Title:   payload.Title,
			Text:    payload.Text,
			Error:   catalog.CodeMissingURL,
			Details: detail,
		}
	}

	description := validation.RemoveURL(payload.Text, effectiveURL)
	if description == "" {
		description = payload.Title
	}

	return models.ShareState{
		Status: models.ShareStatusPending,
		Title:  payload.Title,
		Text:   description,
		URL:    effectiveURL,
		Files:  payload.FileCount,
		Tags:   validation.ExtractTags(payload.Text),
	}
}

// encodeShareState serializes a ShareState into the shared_* query
// parameters. Field names and size caps are a documented contract with the
// shell; see ParseShareState for the inverse.
func encodeShareState(state models.ShareState) string {
	params := url.Values{}
	if state.Title != "" {
		params.Set(models.ParamSharedTitle, state.Title)
	}
	if state.Text != "" {
		params.Set(models.ParamSharedText, state.Text)
	}
	if state.URL != "" {
		params.Set(models.ParamSharedURL, state.URL)
	}
	if state.Files > 0 {
		params.Set(models.ParamSharedFiles, strconv.Itoa(state.Files))
	}
	if len(state.Tags) > 0 {
		params.Set(models.ParamSharedTags, strings.Join(state.Tags, ","))
	}
	params.Set(models.ParamSharedStatus, string(state.Status))
	if state.Error != "" {
		params.Set(models.ParamSharedError, state.Error)
		params.Set(models.ParamSharedDetails, validation.Truncate(state.Details, URLDetailsCap))
	}
	return params.Encode()
}

// ParseShareState reconstructs a ShareState from the shell's query
// parameters. Returns nil when the URL carries no share state.
func ParseShareState(query func(string) string) *models.ShareState {
	status := query(models.ParamSharedStatus)
	if status == "" {
		return nil
	}

	state := &models.ShareState{
		Status:  models.ShareStatus(status),
		Title:   query(models.ParamSharedTitle),
		Text:    query(models.ParamSharedText),
		URL:     query(models.ParamSharedURL),
		Error:   query(models.ParamSharedError),
		Details: query(models.ParamSharedDetails),
	}
	if raw := query(models.ParamSharedFiles); raw != "" {
		state.Files, _ = strconv.Atoi(raw)
	}
	if raw := query(models.ParamSharedTags); raw != "" {
		state.Tags = strings.Split(raw, ",")
	}
	return state
}
