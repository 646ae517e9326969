package session

import (
	"context"
)

// Session 绑定到单个请求的会话视图
type Session struct {
	token string
	store Store
}

// New 创建会话视图
func New(token string, store Store) *Session {
	return &Session{token: token, store: store}
}

// Token 返回会话令牌
func (s *Session) Token() string {
	return s.token
}

// Get 读取会话键
func (s *Session) Get(ctx context.Context, key string) (string, bool, error) {
	return s.store.Get(ctx, s.token, key)
}

// Set 写入会话键
func (s *Session) Set(ctx context.Context, key, value string) error {
	return s.store.Set(ctx, s.token, key, value)
}

// Delete 删除会话键
func (s *Session) Delete(ctx context.Context, key string) error {
	return s.store.Delete(ctx, s.token, key)
}
