package session

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreSetGetDelete(t *testing.T) {
	store := NewMemoryStore(30 * time.Minute)
	ctx := context.Background()

	value, ok, err := store.Get(ctx, "token-1", "cart_id")
	if err != nil {
		t.Fatalf("get on empty store failed: %v", err)
	}
	if ok || value != "" {
		t.Fatalf("empty store should miss, got value=%q ok=%v", value, ok)
	}

	if err := store.Set(ctx, "token-1", "cart_id", "cart-abc"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	value, ok, err = store.Get(ctx, "token-1", "cart_id")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !ok || value != "cart-abc" {
		t.Fatalf("get want cart-abc got value=%q ok=%v", value, ok)
	}

	// 其他令牌读不到
	_, ok, err = store.Get(ctx, "token-2", "cart_id")
	if err != nil {
		t.Fatalf("get other token failed: %v", err)
	}
	if ok {
		t.Fatalf("other token should miss")
	}

	if err := store.Delete(ctx, "token-1", "cart_id"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	_, ok, err = store.Get(ctx, "token-1", "cart_id")
	if err != nil {
		t.Fatalf("get after delete failed: %v", err)
	}
	if ok {
		t.Fatalf("deleted key should miss")
	}
}

func TestMemoryStoreIdleExpiry(t *testing.T) {
	store := NewMemoryStore(30 * time.Minute)
	ctx := context.Background()
	current := time.Now()
	store.now = func() time.Time { return current }

	if err := store.Set(ctx, "token-1", "cart_id", "cart-abc"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	// 未超过空闲窗口，读取并续期
	current = current.Add(20 * time.Minute)
	value, ok, err := store.Get(ctx, "token-1", "cart_id")
	if err != nil {
		t.Fatalf("get within window failed: %v", err)
	}
	if !ok || value != "cart-abc" {
		t.Fatalf("value should survive within idle window")
	}

	// 刚才的读取续了期，再过 20 分钟仍然存活
	current = current.Add(20 * time.Minute)
	_, ok, err = store.Get(ctx, "token-1", "cart_id")
	if err != nil {
		t.Fatalf("get after refresh failed: %v", err)
	}
	if !ok {
		t.Fatalf("sliding expiry should keep session alive")
	}

	// 超过空闲窗口后会话整体过期
	current = current.Add(31 * time.Minute)
	_, ok, err = store.Get(ctx, "token-1", "cart_id")
	if err != nil {
		t.Fatalf("get after expiry failed: %v", err)
	}
	if ok {
		t.Fatalf("expired session should miss")
	}
}

func TestSessionDelegatesToStore(t *testing.T) {
	store := NewMemoryStore(30 * time.Minute)
	ctx := context.Background()
	sess := New("token-1", store)

	if sess.Token() != "token-1" {
		t.Fatalf("token want token-1 got %s", sess.Token())
	}
	if err := sess.Set(ctx, "cart_id", "cart-abc"); err != nil {
		t.Fatalf("session set failed: %v", err)
	}
	value, ok, err := sess.Get(ctx, "cart_id")
	if err != nil {
		t.Fatalf("session get failed: %v", err)
	}
	if !ok || value != "cart-abc" {
		t.Fatalf("session get want cart-abc got value=%q ok=%v", value, ok)
	}
	if err := sess.Delete(ctx, "cart_id"); err != nil {
		t.Fatalf("session delete failed: %v", err)
	}
	_, ok, err = sess.Get(ctx, "cart_id")
	if err != nil {
		t.Fatalf("session get after delete failed: %v", err)
	}
	if ok {
		t.Fatalf("deleted key should miss")
	}
}
