package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/KarthikeyanSA369/LearnExa/internal/model"
	"github.com/KarthikeyanSA369/LearnExa/pkg/redis"
)

// ErrSessionNotFound 会话不存在或已过期
var ErrSessionNotFound = errors.New("会话不存在或已过期")

// SessionData 服务端会话内容
// 只保存身份 ID 与角色，实体在每次请求时重新加载
type SessionData struct {
	SubjectID uint       `json:"sub"`
	Role      model.Role `json:"role"`
}

// SessionStore 服务端会话存储
type SessionStore interface {
	Save(ctx context.Context, sid string, data SessionData, ttl time.Duration) error
	Load(ctx context.Context, sid string) (*SessionData, error)
	Delete(ctx context.Context, sid string) error
}

// ── Redis 实现 ──

type redisSessionStore struct {
	rdb *redis.Client
}

// NewRedisSessionStore 基于 Redis 的会话存储，TTL 由 Redis 负责过期
func NewRedisSessionStore(rdb *redis.Client) SessionStore {
	return &redisSessionStore{rdb: rdb}
}

func (s *redisSessionStore) Save(ctx context.Context, sid string, data SessionData, ttl time.Duration) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return s.rdb.SetSession(ctx, sid, string(payload), ttl)
}

func (s *redisSessionStore) Load(ctx context.Context, sid string) (*SessionData, error) {
	payload, err := s.rdb.GetSession(ctx, sid)
	if err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	var data SessionData
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return nil, ErrSessionNotFound
	}
	return &data, nil
}

func (s *redisSessionStore) Delete(ctx context.Context, sid string) error {
	return s.rdb.DeleteSession(ctx, sid)
}

// ── 进程内实现 ──

type memorySession struct {
	data      SessionData
	expiresAt time.Time
}

type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	now      func() time.Time
}

// NewMemorySessionStore 进程内会话存储
// Redis 不可用时的降级方案；多实例部署下会话不共享
func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{
		sessions: make(map[string]memorySession),
		now:      time.Now,
	}
}

func (s *memorySessionStore) Save(_ context.Context, sid string, data SessionData, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	// 写入时顺带清理过期会话
	for k, v := range s.sessions {
		if !now.Before(v.expiresAt) {
			delete(s.sessions, k)
		}
	}
	s.sessions[sid] = memorySession{data: data, expiresAt: now.Add(ttl)}
	return nil
}

func (s *memorySessionStore) Load(_ context.Context, sid string) (*SessionData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sid]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if !s.now().Before(sess.expiresAt) {
		delete(s.sessions, sid)
		return nil, ErrSessionNotFound
	}
	data := sess.data
	return &data, nil
}

func (s *memorySessionStore) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	return nil
}
