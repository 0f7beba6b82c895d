package handlers

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Mrlopezio/homelabpwa/internal/auth"
	"github.com/Mrlopezio/homelabpwa/internal/config"
	"github.com/Mrlopezio/homelabpwa/internal/models"
)

// AuthHandler exposes the identity probe and the provider redirect endpoints.
// Authentication itself is owned by the external identity provider; this
// handler only relays its verdict.
type AuthHandler struct {
	cfg      *config.Config
	verifier *auth.Verifier
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(cfg *config.Config, verifier *auth.Verifier) *AuthHandler {
	return &AuthHandler{cfg: cfg, verifier: verifier}
}

// Me returns the current authenticated user, or 401 with a null user.
// A provider outage reads as unauthenticated here so the shell can show its
// login button; only the edge gate converts outages into 503.
func (h *AuthHandler) Me(c fiber.Ctx) error {
	cookie := c.Cookies(h.cfg.SessionCookie)

	result, err := h.verifier.Verify(c.Context(), cookie)
	if err != nil || !result.Authenticated {
		return c.Status(fiber.StatusUnauthorized).JSON(models.AuthResult{Authenticated: false})
	}

	return c.JSON(result)
}

// Login redirects to the identity provider's login page with a return URL.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	returnTo := c.Query("redirect", h.cfg.BaseURL+"/")
	return c.Redirect().To(auth.LoginURL(h.cfg.AuthURL, returnTo))
}

// Logout redirects to the identity provider's logout endpoint.
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	returnTo := c.Query("redirect", h.cfg.BaseURL+"/")
	return c.Redirect().To(auth.LogoutURL(h.cfg.AuthURL, returnTo))
}
