package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scenariod/internal/adapter/llm"
	"scenariod/internal/config"
	store "scenariod/internal/repository"
	"scenariod/internal/schema"
	"scenariod/internal/service"
	transport "scenariod/internal/transport/http"
	"scenariod/policy"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log.Printf("Starting scenariod...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", cfg.DatabaseURL)
	log.Printf("LLM mode: %s, model: %s", cfg.LLMMode, cfg.LLMModel)

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Initialize LLM client
	var client llm.LLMClient
	if cfg.LLMMode == "mock" {
		client = llm.NewMockClient()
	} else {
		client = llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMTimeout)
	}
	gateway := llm.NewGateway(client, cfg.LLMModel, cfg.MaxOutputTokens, cfg.Temperature)

	// Initialize policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Initialize schema loader
	schemaLoader := schema.NewLoader(cfg.SchemaPath)

	// Initialize service
	svc := service.New(db, gateway, policyEngine, schemaLoader, cfg)
	defer svc.Close()

	// Create echo server
	e := transport.NewServer(cfg, svc)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("API started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down scenariod...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
}
