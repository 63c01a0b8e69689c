// Package api provides HTTP handlers for the intake bot.
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/saikrishna2003/automated-pr-chatbot/bot"
	"github.com/saikrishna2003/automated-pr-chatbot/config"
)

// Handler handles HTTP requests.
type Handler struct {
	service *bot.Service
	config  *config.Config
}

// NewHandler creates a new handler.
func NewHandler(service *bot.Service, config *config.Config) *Handler {
	return &Handler{
		service: service,
		config:  config,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Status)
	e.GET("/health", h.Health)

	// Chat API
	e.POST("/chat", h.Chat)
	e.POST("/reset", h.Reset)
	e.GET("/tools", h.ListTools)

	// Transcript API (used by the UI and for debugging)
	e.GET("/v1/sessions/:session_id/messages", h.GetSessionMessages)
}

// Status returns basic service information.
func (h *Handler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "online",
		"service":   "Data Platform Intake Bot",
		"version":   "0.1.0",
		"llm_model": h.config.LLMModel,
	})
}

// Health reports whether the credentials the bot depends on are present.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":            "healthy",
		"llm_configured":    h.config.LLMAPIKey != "",
		"github_configured": h.config.GitHubToken != "",
		"repo_configured":   h.config.GitHubRepo != "",
	})
}
