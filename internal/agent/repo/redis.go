package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/redis/go-redis/v9"

	"github.com/smartcs-core/server/internal/agent/model"
	errx "github.com/smartcs-core/server/internal/core/error"
	logx "github.com/smartcs-core/server/pkg/logger"
)

const (
	messagesKeyFormat = "session:%s:messages"
	metaKeyFormat     = "session:%s:meta"
)

// RedisSessionStore persists each session as a list of marshalled messages
// plus a meta key holding the last-activity timestamp and the pending slots.
// Expiry is delegated to key TTLs, so SweepExpired has nothing to do here.
type RedisSessionStore struct {
	rdb     redis.Cmdable
	timeout time.Duration
}

type sessionMeta struct {
	LastActivity int64              `json:"last_activity"`
	Slots        map[string]*string `json:"slots,omitempty"`
}

func NewRedisSessionStore(rdb redis.Cmdable, timeout time.Duration) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb, timeout: timeout}
}

func messagesKey(sessionID string) string {
	return fmt.Sprintf(messagesKeyFormat, sessionID)
}

func metaKey(sessionID string) string {
	return fmt.Sprintf(metaKeyFormat, sessionID)
}

func (r *RedisSessionStore) Get(ctx context.Context, sessionID string) (*model.Session, error) {
	key := messagesKey(sessionID)

	rows, err := r.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load session history from redis")
		return nil, errx.WrapRedis(err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	msgs := make([]*schema.Message, 0, len(rows))
	for i, s := range rows {
		var m schema.Message
		if err := json.Unmarshal([]byte(s), &m); err != nil {
			logx.Error().Err(err).Str("sessionID", sessionID).Int("index", i).Msg("failed to unmarshal message")
			return nil, fmt.Errorf("unmarshal message at index %d: %w", i, err)
		}
		msgs = append(msgs, &m)
	}

	sess := &model.Session{History: msgs}
	if raw, err := r.rdb.Get(ctx, metaKey(sessionID)).Result(); err == nil {
		var meta sessionMeta
		if err := json.Unmarshal([]byte(raw), &meta); err == nil {
			sess.LastActivity = time.Unix(meta.LastActivity, 0)
			sess.Slots = meta.Slots
		}
	} else if err != redis.Nil {
		return nil, errx.WrapRedis(err)
	}
	return sess, nil
}

func (r *RedisSessionStore) Upsert(ctx context.Context, sessionID string, sess *model.Session) error {
	key := messagesKey(sessionID)
	meta := metaKey(sessionID)

	payload := make([]any, 0, len(sess.History))
	for _, m := range sess.History {
		b, err := json.Marshal(m)
		if err != nil {
			logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to marshal message")
			return fmt.Errorf("marshal message: %w", err)
		}
		payload = append(payload, b)
	}

	metaPayload, err := json.Marshal(sessionMeta{
		LastActivity: time.Now().Unix(),
		Slots:        sess.Slots,
	})
	if err != nil {
		return fmt.Errorf("marshal session meta: %w", err)
	}

	pipe := r.rdb.TxPipeline()
	pipe.Del(ctx, key)
	if len(payload) > 0 {
		pipe.RPush(ctx, key, payload...)
	}
	pipe.Set(ctx, meta, metaPayload, r.timeout)
	if r.timeout > 0 {
		pipe.Expire(ctx, key, r.timeout)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to persist session to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

// SweepExpired is a no-op: redis evicts idle sessions via key TTL.
func (r *RedisSessionStore) SweepExpired(ctx context.Context, now time.Time, timeout time.Duration) error {
	return nil
}

func (r *RedisSessionStore) Delete(ctx context.Context, sessionID string) (bool, error) {
	n, err := r.rdb.Del(ctx, messagesKey(sessionID), metaKey(sessionID)).Result()
	if err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to delete session from redis")
		return false, errx.WrapRedis(err)
	}
	return n > 0, nil
}

func (r *RedisSessionStore) List(ctx context.Context) ([]model.SessionInfo, error) {
	pattern := fmt.Sprintf(metaKeyFormat, "*")
	prefix := strings.SplitN(pattern, "*", 2)[0]
	suffix := strings.SplitN(pattern, "*", 2)[1]

	var infos []model.SessionInfo
	var cursor uint64
	for {
		keys, next, err := r.rdb.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			logx.Error().Err(err).Msg("failed to scan session keys")
			return nil, errx.WrapRedis(err)
		}
		for _, key := range keys {
			id := strings.TrimSuffix(strings.TrimPrefix(key, prefix), suffix)
			info := model.SessionInfo{ID: id}
			if raw, err := r.rdb.Get(ctx, key).Result(); err == nil {
				var meta sessionMeta
				if err := json.Unmarshal([]byte(raw), &meta); err == nil {
					info.LastActivity = time.Unix(meta.LastActivity, 0)
				}
			}
			if n, err := r.rdb.LLen(ctx, messagesKey(id)).Result(); err == nil {
				info.MessageCount = int(n)
			}
			infos = append(infos, info)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return infos, nil
}

var _ model.SessionStore = (*RedisSessionStore)(nil)
