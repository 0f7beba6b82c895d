package server

import (
	"log"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Mrlopezio/homelabpwa/internal/auth"
	"github.com/Mrlopezio/homelabpwa/internal/catalog"
	"github.com/Mrlopezio/homelabpwa/internal/config"
	"github.com/Mrlopezio/homelabpwa/internal/handlers"
	"github.com/Mrlopezio/homelabpwa/internal/middleware"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes() error {
	categories, err := config.LoadCategories(s.Cfg.CategoriesFile)
	if err != nil {
		return err
	}
	if categories == nil {
		log.Println("No category mapping file found; shares default to the upstream category")
	}

	// Outbound clients
	verifier := auth.NewVerifier(s.Cfg)
	forwarder := catalog.NewForwarder(s.Cfg)

	// Edge gate runs before every route
	gate := middleware.NewGate(verifier, s.Cfg)
	s.App.Use(gate.Handler)

	// Initialize handlers
	shellHandler := handlers.NewShellHandler(s.Cfg)
	shareHandler := handlers.NewShareHandler(s.Cfg)
	toolsHandler := handlers.NewToolsHandler(s.Cfg, categories, forwarder)
	authHandler := handlers.NewAuthHandler(s.Cfg, verifier)
	debugHandler := handlers.NewDebugHandler(s.Cfg, forwarder)
	manifestHandler := handlers.NewManifestHandler(s.Cfg)
	probeHandler := handlers.NewProbeHandler(s.Cfg)

	// Client shell
	s.App.Get("/", shellHandler.Index)
	s.App.Get("/manifest.json", manifestHandler.Show)

	// Share target - both methods carry identical semantics
	s.App.Post("/share-target", shareHandler.Receive)
	s.App.Get("/share-target", shareHandler.Receive)

	// Same-origin tools API (protected by the gate)
	s.App.Post("/api/tools/send", toolsHandler.Send)
	s.App.Post("/api/tools/fetch-meta", toolsHandler.FetchMeta)

	// Auth boundary - the identity provider owns authentication
	s.App.Get("/api/auth/me", authHandler.Me)
	s.App.Get("/auth/login", authHandler.Login)
	s.App.Get("/auth/logout", authHandler.Logout)

	// Debug endpoints
	s.App.Get("/api/debug/env-check", debugHandler.EnvCheck)
	s.App.Get("/api/debug/test-api", debugHandler.TestAPI)

	// Probes and metrics
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return nil
}
