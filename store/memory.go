package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/saikrishna2003/automated-pr-chatbot/domain"
)

// MemoryStore implements Store with in-process maps. It backs tests and
// ephemeral deployments where intake state need not survive a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	messages map[string][]domain.Message
	states   map[string]map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*domain.Session),
		messages: make(map[string][]domain.Message),
		states:   make(map[string]map[string]string),
	}
}

// CreateSession creates a new session.
func (s *MemoryStore) CreateSession(ctx context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *session
	s.sessions[session.SessionID] = &cp
	return nil
}

// GetSession retrieves a session by ID.
func (s *MemoryStore) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	cp := *session
	return &cp, nil
}

// GetOrCreateSession gets an existing session or creates a new one.
func (s *MemoryStore) GetOrCreateSession(ctx context.Context, sessionID, userID string) (*domain.Session, error) {
	if session, err := s.GetSession(ctx, sessionID); err != nil || session != nil {
		return session, err
	}
	session := &domain.Session{
		SessionID: sessionID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	if err := s.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// DeleteSession removes a session and its messages and intake state.
func (s *MemoryStore) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	delete(s.messages, sessionID)
	delete(s.states, sessionID)
	return nil
}

// CreateMessage creates a new message.
func (s *MemoryStore) CreateMessage(ctx context.Context, message *domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[message.SessionID] = append(s.messages[message.SessionID], *message)
	return nil
}

// GetMessages retrieves messages for a session in chronological order.
func (s *MemoryStore) GetMessages(ctx context.Context, sessionID string, limit int, before string) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var messages []domain.Message
	for _, msg := range s.messages[sessionID] {
		if before != "" && msg.MessageID >= before {
			continue
		}
		messages = append(messages, msg)
	}
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	if limit > 0 && len(messages) > limit {
		messages = messages[:limit]
	}
	return messages, nil
}

// GetIntakeState retrieves the accumulated field map for a session.
func (s *MemoryStore) GetIntakeState(ctx context.Context, sessionID string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[sessionID]
	if !ok {
		return nil, nil
	}
	cp := make(map[string]string, len(state))
	for k, v := range state {
		cp[k] = v
	}
	return cp, nil
}

// PutIntakeState stores the accumulated field map for a session.
func (s *MemoryStore) PutIntakeState(ctx context.Context, sessionID string, fields map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make(map[string]string, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	s.states[sessionID] = cp
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
