package api

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/saikrishna2003/automated-pr-chatbot/domain"
)

// Chat handles one conversation turn.
// POST /chat
func (h *Handler) Chat(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	resp, err := h.service.Chat(ctx, &req)
	if err != nil {
		log.Printf("ERROR: chat turn failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}

	return c.JSON(http.StatusOK, resp)
}

// Reset discards a session, its transcript and its collected fields.
// POST /reset
func (h *Handler) Reset(c echo.Context) error {
	ctx := c.Request().Context()

	var req domain.ResetRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.SessionID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "session_id is required"})
	}

	if err := h.service.Reset(ctx, req.SessionID); err != nil {
		log.Printf("ERROR: failed to reset session: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to reset session"})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Conversation reset",
	})
}

// ListTools lists the registered tool definitions.
// GET /tools
func (h *Handler) ListTools(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"tools": h.service.Tools(),
	})
}
