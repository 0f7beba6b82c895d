package handlers

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Mrlopezio/homelabpwa/internal/config"
)

// ShellHandler renders the client shell page. The staged share card renders
// server-side from the shared_* query parameters; install, share, push, and
// the confirm action live in static/app.js.
type ShellHandler struct {
	cfg *config.Config
}

// NewShellHandler creates a new shell handler.
func NewShellHandler(cfg *config.Config) *ShellHandler {
	return &ShellHandler{cfg: cfg}
}

// Index renders the shell.
func (h *ShellHandler) Index(c fiber.Ctx) error {
	share := ParseShareState(func(name string) string {
		return c.Query(name)
	})

	return c.Render("index", fiber.Map{
		"Title":    h.cfg.AppName,
		"AppName":  h.cfg.AppName,
		"AuthURL":  h.cfg.AuthURL,
		"Share":    share,
		"HasShare": share != nil,
	})
}
