package session

import (
	"context"
	"sync"
	"time"
)

type memorySession struct {
	values   map[string]string
	deadline time.Time
}

// MemoryStore 进程内会话存储（Redis 未启用时的兜底，测试也用它）。
// 过期会话在下次访问时惰性清理。
type MemoryStore struct {
	mu          sync.Mutex
	sessions    map[string]*memorySession
	idleTimeout time.Duration
	now         func() time.Time
}

// NewMemoryStore 创建内存会话存储
func NewMemoryStore(idleTimeout time.Duration) *MemoryStore {
	if idleTimeout <= 0 {
		idleTimeout = defaultIdleTimeout
	}
	return &MemoryStore{
		sessions:    make(map[string]*memorySession),
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

// Get 读取会话键并续期
func (s *MemoryStore) Get(_ context.Context, token, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.liveSession(token)
	if sess == nil {
		return "", false, nil
	}
	sess.deadline = s.now().Add(s.idleTimeout)
	value, ok := sess.values[key]
	return value, ok, nil
}

// Set 写入会话键并续期
func (s *MemoryStore) Set(_ context.Context, token, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.liveSession(token)
	if sess == nil {
		sess = &memorySession{values: make(map[string]string)}
		s.sessions[token] = sess
	}
	sess.values[key] = value
	sess.deadline = s.now().Add(s.idleTimeout)
	return nil
}

// Delete 删除会话键并续期
func (s *MemoryStore) Delete(_ context.Context, token, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.liveSession(token)
	if sess == nil {
		return nil
	}
	delete(sess.values, key)
	sess.deadline = s.now().Add(s.idleTimeout)
	return nil
}

// liveSession 返回未过期的会话，过期即删除。调用方需持有锁。
func (s *MemoryStore) liveSession(token string) *memorySession {
	sess, ok := s.sessions[token]
	if !ok {
		return nil
	}
	if s.now().After(sess.deadline) {
		delete(s.sessions, token)
		return nil
	}
	return sess
}
