package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultIdleTimeout = 30 * time.Minute

// RedisStore 基于 Redis Hash 的会话存储，每个会话一个 hash，
// 每次访问刷新过期时间实现滑动空闲超时。
type RedisStore struct {
	client      *redis.Client
	keyPrefix   string
	idleTimeout time.Duration
}

// NewRedisStore 创建 Redis 会话存储
func NewRedisStore(client *redis.Client, keyPrefix string, idleTimeout time.Duration) *RedisStore {
	if idleTimeout <= 0 {
		idleTimeout = defaultIdleTimeout
	}
	prefix := strings.TrimSpace(keyPrefix)
	if prefix == "" {
		prefix = "session"
	}
	return &RedisStore{
		client:      client,
		keyPrefix:   prefix,
		idleTimeout: idleTimeout,
	}
}

// Get 读取会话键并顺带续期
func (s *RedisStore) Get(ctx context.Context, token, key string) (string, bool, error) {
	sessionKey := s.sessionKey(token)
	value, err := s.client.HGet(ctx, sessionKey, key).Result()
	if err == redis.Nil {
		// 键不存在也算一次访问，续期已存在的会话
		s.client.Expire(ctx, sessionKey, s.idleTimeout)
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if err := s.client.Expire(ctx, sessionKey, s.idleTimeout).Err(); err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set 写入会话键并续期
func (s *RedisStore) Set(ctx context.Context, token, key, value string) error {
	sessionKey := s.sessionKey(token)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, sessionKey, key, value)
	pipe.Expire(ctx, sessionKey, s.idleTimeout)
	_, err := pipe.Exec(ctx)
	return err
}

// Delete 删除会话键并续期
func (s *RedisStore) Delete(ctx context.Context, token, key string) error {
	sessionKey := s.sessionKey(token)
	pipe := s.client.TxPipeline()
	pipe.HDel(ctx, sessionKey, key)
	pipe.Expire(ctx, sessionKey, s.idleTimeout)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) sessionKey(token string) string {
	return fmt.Sprintf("%s:%s", s.keyPrefix, token)
}
