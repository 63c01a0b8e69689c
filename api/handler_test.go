package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/saikrishna2003/automated-pr-chatbot/bot"
	"github.com/saikrishna2003/automated-pr-chatbot/config"
	"github.com/saikrishna2003/automated-pr-chatbot/domain"
	"github.com/saikrishna2003/automated-pr-chatbot/llm"
	"github.com/saikrishna2003/automated-pr-chatbot/store"
	"github.com/saikrishna2003/automated-pr-chatbot/tools"
)

func newTestHandler(t *testing.T) (*Handler, store.Store) {
	t.Helper()

	st := store.NewMemoryStore()
	registry := tools.NewRegistry()
	registry.MustRegister(tools.NewS3BucketTool())

	cfg := &config.Config{
		LLMModel:   "llama-3.1-8b-instant",
		LLMAPIKey:  "test-key",
		ConfigDir:  "intake_configs",
		BaseBranch: "dev",
	}
	service := bot.New(st, llm.NewMockClient(), registry, cfg)
	return NewHandler(service, cfg), st
}

func TestStatus(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Status(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["status"] != "online" || resp["service"] != "Data Platform Intake Bot" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestHealth(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Health(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Status           string `json:"status"`
		LLMConfigured    bool   `json:"llm_configured"`
		GitHubConfigured bool   `json:"github_configured"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "healthy" || !resp.LLMConfigured {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.GitHubConfigured {
		t.Fatal("github token is not set in the test config")
	}
}

func TestChatBadBody(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader("{not json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Chat(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestChatFreshSession(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"messages":[]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Chat(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp domain.ChatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.SessionID == "" {
		t.Fatal("expected a generated session id")
	}
	if resp.ToolUsed || resp.PRURL != "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestChatTurn(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	body := `{"session_id":"s1","messages":[{"role":"user","content":"hello there"}]}`
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Chat(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp domain.ChatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.SessionID != "s1" {
		t.Fatalf("expected session id s1, got %q", resp.SessionID)
	}
	if !strings.Contains(resp.Response, "hello there") {
		t.Fatalf("expected echo of the user message, got %q", resp.Response)
	}
}

func TestResetRequiresSessionID(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/reset", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Reset(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestResetDeletesSession(t *testing.T) {
	e := echo.New()
	h, st := newTestHandler(t)

	// Seed a session via a chat turn.
	chatReq := httptest.NewRequest(http.MethodPost, "/chat",
		strings.NewReader(`{"session_id":"s1","messages":[{"role":"user","content":"hi"}]}`))
	chatReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	chatRec := httptest.NewRecorder()
	if err := h.Chat(e.NewContext(chatReq, chatRec)); err != nil {
		t.Fatalf("chat handler error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/reset", strings.NewReader(`{"session_id":"s1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Reset(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	session, err := st.GetSession(req.Context(), "s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if session != nil {
		t.Fatal("session still present after reset")
	}
}

func TestListTools(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/tools", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListTools(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Tools []tools.Definition `json:"tools"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Tools) != 1 || resp.Tools[0].Name != tools.S3BucketToolName {
		t.Fatalf("unexpected tools: %+v", resp.Tools)
	}
}
