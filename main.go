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

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/saikrishna2003/automated-pr-chatbot/api"
	"github.com/saikrishna2003/automated-pr-chatbot/bot"
	"github.com/saikrishna2003/automated-pr-chatbot/config"
	"github.com/saikrishna2003/automated-pr-chatbot/gh"
	"github.com/saikrishna2003/automated-pr-chatbot/llm"
	"github.com/saikrishna2003/automated-pr-chatbot/policy"
	"github.com/saikrishna2003/automated-pr-chatbot/store"
	"github.com/saikrishna2003/automated-pr-chatbot/tools"
	"github.com/saikrishna2003/automated-pr-chatbot/web"
)

const githubAPIURL = "https://api.github.com"

func main() {
	// Load configuration
	cfg := config.Load()

	log.Printf("Starting intake bot...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Database: %s", cfg.DatabaseURL)
	log.Printf("LLM: %s (%s)", cfg.LLMBaseURL, cfg.LLMModel)
	log.Printf("Repository: %s (base %s)", cfg.GitHubRepo, cfg.BaseBranch)

	// Initialize store
	db, err := store.NewSQLiteStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer db.Close()

	// Initialize LLM client
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMTimeout)

	// Initialize GitHub client
	ghClient := gh.NewClient(githubAPIURL, cfg.GitHubToken, cfg.GitHubRepo, cfg.BaseBranch, cfg.RequestTimeout)

	// Initialize policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Register tools
	registry := tools.NewRegistry()
	registry.MustRegister(tools.NewGlueDBPRTool(ghClient, policyEngine, cfg))
	registry.MustRegister(tools.NewS3BucketTool())

	// Initialize service
	svc := bot.New(db, llmClient, registry, cfg)

	// Initialize handler
	h := api.NewHandler(svc, cfg)

	// Create Echo server
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Register routes
	h.RegisterRoutes(e)
	web.RegisterRoutes(e)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Intake bot started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down intake bot...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Intake bot stopped")
}
