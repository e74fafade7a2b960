package model

import (
	"context"
	"time"

	"github.com/cloudwego/eino/schema"
)

// Session is the persisted state of one conversation. Slots carry the
// in-progress slot values of an unfinished flow across turns, so an order id
// given on one turn is still known when the next turn supplies the invoice
// title. They are cleared once a tool has been dispatched.
type Session struct {
	History      []*schema.Message
	Slots        map[string]*string
	LastActivity time.Time
}

// SessionInfo is the administration view of an active session.
type SessionInfo struct {
	ID           string    `json:"id"`
	LastActivity time.Time `json:"last_activity"`
	MessageCount int       `json:"message_count"`
}

// SessionStore persists conversation state per session id. Implementations
// guarantee last-writer-wins per id and nothing stronger; concurrent turns for
// the same id can lose one turn's update.
type SessionStore interface {
	// Get returns the session for the given id, or nil when absent.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Upsert replaces the session's history and pending slots and stamps last
	// activity with now. The caller's LastActivity is ignored.
	Upsert(ctx context.Context, sessionID string, sess *Session) error

	// SweepExpired removes every session idle for longer than timeout. It is
	// invoked at the start of every Process call; callers consume no result.
	SweepExpired(ctx context.Context, now time.Time, timeout time.Duration) error

	// Delete removes a session, reporting whether it existed.
	Delete(ctx context.Context, sessionID string) (bool, error)

	// List enumerates active sessions for the administration surface.
	List(ctx context.Context) ([]SessionInfo, error)
}
