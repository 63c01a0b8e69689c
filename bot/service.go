// Package bot orchestrates one chat turn: session bookkeeping, the LLM
// call with bound tools, tool execution, and intake state tracking.
package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/saikrishna2003/automated-pr-chatbot/config"
	"github.com/saikrishna2003/automated-pr-chatbot/domain"
	"github.com/saikrishna2003/automated-pr-chatbot/intake"
	"github.com/saikrishna2003/automated-pr-chatbot/llm"
	"github.com/saikrishna2003/automated-pr-chatbot/store"
	"github.com/saikrishna2003/automated-pr-chatbot/tools"
)

// Service runs intake conversations.
type Service struct {
	store    store.Store
	llm      llm.Client
	registry *tools.Registry
	cfg      *config.Config
}

// New creates the intake service.
func New(st store.Store, llmClient llm.Client, registry *tools.Registry, cfg *config.Config) *Service {
	return &Service{
		store:    st,
		llm:      llmClient,
		registry: registry,
		cfg:      cfg,
	}
}

// Chat handles one turn. The client sends its full transcript every time;
// the session id links the turn to the accumulated intake state.
func (s *Service) Chat(ctx context.Context, req *domain.ChatRequest) (*domain.ChatResponse, error) {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = "sess_" + uuid.New().String()[:8]
	}

	if _, err := s.store.GetOrCreateSession(ctx, sessionID, "ui"); err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	// An empty transcript is a fresh session start, not an error.
	if len(req.Messages) == 0 {
		if err := s.persistMessage(ctx, sessionID, "assistant", greeting); err != nil {
			log.Printf("WARN: failed to persist greeting: %v", err)
		}
		return &domain.ChatResponse{SessionID: sessionID, Response: greeting}, nil
	}

	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Harvest key-value answers from the newest user turn before calling
	// the model, so the missing-fields note stays current.
	last := req.Messages[len(req.Messages)-1]
	if last.Role == "user" {
		if err := s.persistMessage(ctx, sessionID, "user", last.Content); err != nil {
			log.Printf("WARN: failed to persist user message: %v", err)
		}
		for field, value := range parseFieldAnswers(last.Content, domain.GlueDBFields) {
			if err := state.Record(field, value); err != nil {
				log.Printf("WARN: failed to record %s: %v", field, err)
			}
		}
		if err := s.store.PutIntakeState(ctx, sessionID, state.Values()); err != nil {
			return nil, fmt.Errorf("failed to store intake state: %w", err)
		}
	}

	llmReq := s.buildRequest(req.Messages, state)
	resp, err := s.llm.CreateChatCompletion(ctx, llmReq)
	if err != nil {
		return nil, fmt.Errorf("LLM call failed: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil {
		return nil, fmt.Errorf("LLM returned no choices")
	}
	msg := resp.Choices[0].Message

	if len(msg.ToolCalls) > 0 {
		return s.handleToolCall(ctx, sessionID, state, msg.ToolCalls[0])
	}

	if err := s.persistMessage(ctx, sessionID, "assistant", msg.Content); err != nil {
		log.Printf("WARN: failed to persist assistant message: %v", err)
	}
	return &domain.ChatResponse{SessionID: sessionID, Response: msg.Content}, nil
}

// Reset discards a session and its accumulated state.
func (s *Service) Reset(ctx context.Context, sessionID string) error {
	return s.store.DeleteSession(ctx, sessionID)
}

// Tools lists the registered tool definitions.
func (s *Service) Tools() []tools.Definition {
	return s.registry.Definitions()
}

// Transcript returns the stored messages for a session.
func (s *Service) Transcript(ctx context.Context, sessionID string, limit int, before string) ([]domain.Message, error) {
	return s.store.GetMessages(ctx, sessionID, limit, before)
}

func (s *Service) loadState(ctx context.Context, sessionID string) (*intake.State, error) {
	stored, err := s.store.GetIntakeState(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load intake state: %w", err)
	}
	if stored == nil {
		return intake.NewState(), nil
	}
	return intake.FromMap(domain.GlueDBFields, stored), nil
}

func (s *Service) buildRequest(transcript []domain.InputMessage, state *intake.State) *llm.ChatCompletionRequest {
	messages := make([]llm.ChatMessage, 0, len(transcript)+1)
	messages = append(messages, llm.ChatMessage{
		Role:    "system",
		Content: systemPrompt + missingFieldsNote(state.Missing()),
	})
	for _, m := range transcript {
		messages = append(messages, llm.ChatMessage{Role: m.Role, Content: m.Content})
	}

	temperature := 0.1
	return &llm.ChatCompletionRequest{
		Model:       s.cfg.LLMModel,
		Messages:    messages,
		Temperature: &temperature,
		Tools:       s.registry.LLMTools(),
	}
}

func (s *Service) handleToolCall(ctx context.Context, sessionID string, state *intake.State, call llm.ToolCall) (*domain.ChatResponse, error) {
	// Tool arguments are the model's consolidated view of the collected
	// fields; fold them into the session state before executing.
	var args map[string]string
	if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err == nil {
		for field, value := range args {
			// Fields outside the Glue set (S3 tool args) are ignored.
			_ = state.Record(field, value)
		}
		if err := s.store.PutIntakeState(ctx, sessionID, state.Values()); err != nil {
			log.Printf("WARN: failed to store intake state: %v", err)
		}
	}

	result, err := s.registry.Execute(ctx, call.Function.Name, json.RawMessage(call.Function.Arguments))
	if err != nil {
		response := fmt.Sprintf("PR creation failed: %v\n\nPlease verify all information and try again.", err)
		if persistErr := s.persistMessage(ctx, sessionID, "assistant", response); persistErr != nil {
			log.Printf("WARN: failed to persist assistant message: %v", persistErr)
		}
		return &domain.ChatResponse{
			SessionID: sessionID,
			Response:  response,
			ToolUsed:  true,
		}, nil
	}

	response, prURL := formatToolResult(call.Function.Name, result)
	if err := s.persistMessage(ctx, sessionID, "assistant", response); err != nil {
		log.Printf("WARN: failed to persist assistant message: %v", err)
	}

	// The intake is complete once the PR exists; drop the slot state so a
	// follow-up conversation starts clean.
	if prURL != "" {
		if err := s.store.PutIntakeState(ctx, sessionID, map[string]string{}); err != nil {
			log.Printf("WARN: failed to clear intake state: %v", err)
		}
	}

	return &domain.ChatResponse{
		SessionID: sessionID,
		Response:  response,
		ToolUsed:  true,
		PRURL:     prURL,
	}, nil
}

func formatToolResult(toolName string, result json.RawMessage) (string, string) {
	switch toolName {
	case tools.GlueDBToolName:
		var r tools.GlueDBResult
		if err := json.Unmarshal(result, &r); err == nil && r.PRURL != "" {
			return fmt.Sprintf("**Pull Request created successfully!**\n\nFile: %s\nLink: %s", r.File, r.PRURL), r.PRURL
		}
	case tools.S3BucketToolName:
		var r tools.S3BucketResult
		if err := json.Unmarshal(result, &r); err == nil {
			return fmt.Sprintf("Here is the rendered S3 bucket configuration (`%s`):\n\n%s", r.File, r.YAML), ""
		}
	}
	return string(result), ""
}

func (s *Service) persistMessage(ctx context.Context, sessionID, role, content string) error {
	return s.store.CreateMessage(ctx, &domain.Message{
		MessageID: "msg_" + uuid.New().String()[:8],
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	})
}
