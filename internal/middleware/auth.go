package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/Mrlopezio/homelabpwa/internal/auth"
	"github.com/Mrlopezio/homelabpwa/internal/config"
	"github.com/Mrlopezio/homelabpwa/internal/metrics"
)

// Identity headers propagated to downstream handlers for verified sessions.
const (
	HeaderUserEmail = "x-user-email"
	HeaderUserName  = "x-user-name"
)

// LocalsIdentity is the Locals key holding the *models.SessionIdentity for
// an authorized request.
const LocalsIdentity = "identity"

// publicPrefixes pass through the gate untouched: static assets, the share
// ingestion endpoint, health/debug, and the manifest.
var publicPrefixes = []string{
	"/api/auth/me",
	"/api/debug",
	"/auth/",
	"/share-target",
	"/static",
	"/icons",
	"/manifest.json",
	"/favicon.ico",
	"/sw.js",
	"/custom-sw.js",
	"/healthz",
	"/readyz",
	"/metrics",
}

// protectedPrefixes require a verified session before the handler runs.
var protectedPrefixes = []string{
	"/api/tools/send",
	"/api/tools/fetch-meta",
}

// Gate verifies sessions at the edge for protected paths. Unprotected,
// non-public paths pass through unchecked; the shell prompts for login
// interactively instead of being redirected server-side.
type Gate struct {
	verifier   *auth.Verifier
	cookieName string
}

// NewGate creates the edge gate backed by the given session verifier.
func NewGate(verifier *auth.Verifier, cfg *config.Config) *Gate {
	return &Gate{verifier: verifier, cookieName: cfg.SessionCookie}
}

// Handler runs before every request.
func (g *Gate) Handler(c fiber.Ctx) error {
	path := c.Path()

	if hasPrefix(path, publicPrefixes) {
		return c.Next()
	}
	if !hasPrefix(path, protectedPrefixes) {
		return c.Next()
	}

	cookie := c.Cookies(g.cookieName)
	if cookie == "" {
		metrics.AuthChecks.WithLabelValues("rejected").Inc()
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "Unauthorized",
			"message": "Authentication required",
		})
	}

	result, err := g.verifier.Verify(c.Context(), cookie)
	if err != nil {
		metrics.AuthChecks.WithLabelValues("unavailable").Inc()
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":   "Unauthorized",
			"message": "Authentication service unavailable",
		})
	}
	if !result.Authenticated {
		metrics.AuthChecks.WithLabelValues("rejected").Inc()
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "Unauthorized",
			"message": "Invalid or expired session",
		})
	}

	metrics.AuthChecks.WithLabelValues("authorized").Inc()
	c.Locals(LocalsIdentity, result.User)
	c.Request().Header.Set(HeaderUserEmail, result.User.Email)
	if result.User.Name != "" {
		c.Request().Header.Set(HeaderUserName, result.User.Name)
	}

	return c.Next()
}

func hasPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
