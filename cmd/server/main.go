package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Mrlopezio/homelabpwa/internal/config"
	"github.com/Mrlopezio/homelabpwa/internal/metrics"
	"github.com/Mrlopezio/homelabpwa/internal/server"
)

func main() {
	cfg := config.Load()

	if !cfg.HasUpstream() {
		log.Println("Warning: TOOLS_API_URL / TOOLS_API_KEY not fully configured")
		log.Println("Share confirmations will fail with CONFIG_ERROR until both are set")
	}

	metrics.Init()

	srv := server.New(cfg)
	if err := srv.RegisterRoutes(); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
