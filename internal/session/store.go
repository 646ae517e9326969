package session

import (
	"context"
)

// Store 以会话令牌隔离的键值存储。
// 所有实现必须在每次访问时刷新会话的空闲过期时间（滑动过期）。
type Store interface {
	// Get 读取会话内指定键，第二个返回值表示键是否存在
	Get(ctx context.Context, token, key string) (string, bool, error)
	// Set 写入会话内指定键
	Set(ctx context.Context, token, key, value string) error
	// Delete 删除会话内指定键，键不存在时为空操作
	Delete(ctx context.Context, token, key string) error
}
