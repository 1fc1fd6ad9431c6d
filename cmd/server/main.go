package main

import (
	"fmt"
	"log"
	"os"

	"github.com/valuecompare/backend/config"
	httpDelivery "github.com/valuecompare/backend/internal/delivery/http"
	"github.com/valuecompare/backend/internal/infrastructure/cache"
	"github.com/valuecompare/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting ValueCompare Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	store := cache.NewMemoryStore(cfg.Session.TTL)
	defer store.Close()
	log.Printf("Session TTL: %s, max items: %d", cfg.Session.TTL, cfg.Session.MaxItems)

	// Initialize usecase layer
	sessionService := usecase.NewSessionService(store, usecase.SessionServiceConfig{
		MaxItems: cfg.Session.MaxItems,
	})

	// Debug logging for label parsing in development
	labelParser := usecase.NewLabelParser(cfg.Server.Environment == "development")

	log.Printf("Rate limit: %d/min per client, burst %d", cfg.RateLimit.PerMinute, cfg.RateLimit.Burst)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(sessionService, labelParser)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
