package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/saikrishna2003/automated-pr-chatbot/domain"
)

func newTestStores(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = sqlite.Close() })
	return map[string]Store{
		"sqlite": sqlite,
		"memory": NewMemoryStore(),
	}
}

func TestStoreSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	for name, s := range newTestStores(t) {
		t.Run(name, func(t *testing.T) {
			session := &domain.Session{
				SessionID: "s1",
				UserID:    "u1",
				CreatedAt: time.Now(),
				Metadata:  json.RawMessage(`{"source":"ui"}`),
			}
			if err := s.CreateSession(ctx, session); err != nil {
				t.Fatalf("CreateSession failed: %v", err)
			}

			got, err := s.GetSession(ctx, "s1")
			if err != nil {
				t.Fatalf("GetSession failed: %v", err)
			}
			if got == nil || got.UserID != "u1" {
				t.Fatalf("unexpected session: %+v", got)
			}

			if err := s.DeleteSession(ctx, "s1"); err != nil {
				t.Fatalf("DeleteSession failed: %v", err)
			}
			got, err = s.GetSession(ctx, "s1")
			if err != nil {
				t.Fatalf("GetSession after delete failed: %v", err)
			}
			if got != nil {
				t.Fatalf("expected session to be gone, got %+v", got)
			}
		})
	}
}

func TestStoreGetOrCreateSession(t *testing.T) {
	ctx := context.Background()
	for name, s := range newTestStores(t) {
		t.Run(name, func(t *testing.T) {
			first, err := s.GetOrCreateSession(ctx, "s1", "u1")
			if err != nil {
				t.Fatalf("GetOrCreateSession failed: %v", err)
			}
			second, err := s.GetOrCreateSession(ctx, "s1", "other")
			if err != nil {
				t.Fatalf("GetOrCreateSession (existing) failed: %v", err)
			}
			if second.UserID != first.UserID {
				t.Fatalf("expected existing session to be returned, got %+v", second)
			}
		})
	}
}

func TestStoreMessages(t *testing.T) {
	ctx := context.Background()
	for name, s := range newTestStores(t) {
		t.Run(name, func(t *testing.T) {
			session := &domain.Session{SessionID: "s1", UserID: "u1", CreatedAt: time.Now()}
			if err := s.CreateSession(ctx, session); err != nil {
				t.Fatalf("CreateSession failed: %v", err)
			}

			base := time.Now()
			for i, content := range []string{"hello", "hi there", "create a PR"} {
				msg := &domain.Message{
					MessageID: "m" + string(rune('1'+i)),
					SessionID: "s1",
					Role:      "user",
					Content:   content,
					CreatedAt: base.Add(time.Duration(i) * time.Second),
				}
				if err := s.CreateMessage(ctx, msg); err != nil {
					t.Fatalf("CreateMessage failed: %v", err)
				}
			}

			messages, err := s.GetMessages(ctx, "s1", 10, "")
			if err != nil {
				t.Fatalf("GetMessages failed: %v", err)
			}
			if len(messages) != 3 {
				t.Fatalf("expected 3 messages, got %d", len(messages))
			}
			if messages[0].Content != "hello" || messages[2].Content != "create a PR" {
				t.Fatalf("messages out of order: %+v", messages)
			}

			limited, err := s.GetMessages(ctx, "s1", 2, "")
			if err != nil {
				t.Fatalf("GetMessages with limit failed: %v", err)
			}
			if len(limited) != 2 {
				t.Fatalf("expected 2 messages, got %d", len(limited))
			}
		})
	}
}

func TestStoreIntakeState(t *testing.T) {
	ctx := context.Background()
	for name, s := range newTestStores(t) {
		t.Run(name, func(t *testing.T) {
			session := &domain.Session{SessionID: "s1", UserID: "u1", CreatedAt: time.Now()}
			if err := s.CreateSession(ctx, session); err != nil {
				t.Fatalf("CreateSession failed: %v", err)
			}

			state, err := s.GetIntakeState(ctx, "s1")
			if err != nil {
				t.Fatalf("GetIntakeState failed: %v", err)
			}
			if state != nil {
				t.Fatalf("expected no state, got %+v", state)
			}

			fields := map[string]string{"intake_id": "M0000562", "region": "us-east-1"}
			if err := s.PutIntakeState(ctx, "s1", fields); err != nil {
				t.Fatalf("PutIntakeState failed: %v", err)
			}

			// Overwrite one field and add another
			fields["region"] = "us-west-2"
			fields["data_env"] = "dev"
			if err := s.PutIntakeState(ctx, "s1", fields); err != nil {
				t.Fatalf("PutIntakeState (update) failed: %v", err)
			}

			state, err = s.GetIntakeState(ctx, "s1")
			if err != nil {
				t.Fatalf("GetIntakeState failed: %v", err)
			}
			if state["region"] != "us-west-2" || state["data_env"] != "dev" || state["intake_id"] != "M0000562" {
				t.Fatalf("unexpected state: %+v", state)
			}

			// Deleting the session drops the state with it
			if err := s.DeleteSession(ctx, "s1"); err != nil {
				t.Fatalf("DeleteSession failed: %v", err)
			}
			state, err = s.GetIntakeState(ctx, "s1")
			if err != nil {
				t.Fatalf("GetIntakeState after delete failed: %v", err)
			}
			if state != nil {
				t.Fatalf("expected state to be gone, got %+v", state)
			}
		})
	}
}
