package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cloudwego/eino/schema"

	"github.com/smartcs-core/server/internal/agent/model"
	logx "github.com/smartcs-core/server/pkg/logger"
)

// MemorySessionStore keeps sessions in process memory. It is the default when
// no Redis URL is configured and the store used throughout the tests. Expiry
// is sweep-on-access: idle sessions linger until the next SweepExpired call.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*memorySession

	// now is swappable in tests to drive expiry without sleeping.
	now func() time.Time
}

type memorySession struct {
	history      []*schema.Message
	slots        map[string]*string
	lastActivity time.Time
}

// cloneSlots deep-copies a slot map so callers and the store never share
// pointer values.
func cloneSlots(slots map[string]*string) map[string]*string {
	if slots == nil {
		return nil
	}
	cloned := make(map[string]*string, len(slots))
	for name, value := range slots {
		if value == nil {
			cloned[name] = nil
			continue
		}
		v := *value
		cloned[name] = &v
	}
	return cloned
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*memorySession),
		now:      time.Now,
	}
}

func (m *MemorySessionStore) Get(ctx context.Context, sessionID string) (*model.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, ok := m.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	history := make([]*schema.Message, len(sess.history))
	copy(history, sess.history)
	return &model.Session{
		History:      history,
		Slots:        cloneSlots(sess.slots),
		LastActivity: sess.lastActivity,
	}, nil
}

func (m *MemorySessionStore) Upsert(ctx context.Context, sessionID string, sess *model.Session) error {
	history := make([]*schema.Message, len(sess.History))
	copy(history, sess.History)
	slots := cloneSlots(sess.Slots)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = &memorySession{history: history, slots: slots, lastActivity: m.now()}
	return nil
}

func (m *MemorySessionStore) SweepExpired(ctx context.Context, now time.Time, timeout time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, sess := range m.sessions {
		if now.Sub(sess.lastActivity) > timeout {
			delete(m.sessions, id)
			logx.Info().Str("session_id", id).Msg("evicted expired session")
		}
	}
	return nil
}

func (m *MemorySessionStore) Delete(ctx context.Context, sessionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[sessionID]; !ok {
		return false, nil
	}
	delete(m.sessions, sessionID)
	return true, nil
}

func (m *MemorySessionStore) List(ctx context.Context) ([]model.SessionInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	infos := make([]model.SessionInfo, 0, len(m.sessions))
	for id, sess := range m.sessions {
		infos = append(infos, model.SessionInfo{
			ID:           id,
			LastActivity: sess.lastActivity,
			MessageCount: len(sess.history),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos, nil
}

var _ model.SessionStore = (*MemorySessionStore)(nil)
