// Package store defines the storage interface and implementations.
package store

import (
	"context"

	"github.com/saikrishna2003/automated-pr-chatbot/domain"
)

// Store defines the interface for data persistence.
type Store interface {
	// Session operations
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)
	GetOrCreateSession(ctx context.Context, sessionID, userID string) (*domain.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Message operations
	CreateMessage(ctx context.Context, message *domain.Message) error
	GetMessages(ctx context.Context, sessionID string, limit int, before string) ([]domain.Message, error)

	// Intake state operations. The state is the per-session field map
	// accumulated across turns; nil means no state recorded yet.
	GetIntakeState(ctx context.Context, sessionID string) (map[string]string, error)
	PutIntakeState(ctx context.Context, sessionID string, fields map[string]string) error

	// Lifecycle
	Close() error
}
