package ports

import (
	"context"
	"time"

	"mealbot/internal/core/domain/model/kernel"
	"mealbot/internal/core/domain/model/session"
)

// SessionRepository defines the persistence contract for conversation
// sessions. Upsert semantics: a session is keyed by phone and rewritten on
// every message.
type SessionRepository interface {
	// Save persists the session, inserting or replacing by phone.
	Save(ctx context.Context, aggregate *session.Session) error

	// Get retrieves the session for a phone number.
	// Returns errs.ErrObjectNotFound when no session exists.
	Get(ctx context.Context, phone kernel.Phone) (*session.Session, error)

	// DeleteStale removes sessions untouched since the cutoff and returns
	// how many were removed.
	DeleteStale(ctx context.Context, cutoff time.Time) (int64, error)
}
