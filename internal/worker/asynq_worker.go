package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/agro-saffron/storefront/internal/logger"
	"github.com/agro-saffron/storefront/internal/provider"
	"github.com/agro-saffron/storefront/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskCartPurgeStale, c.handleCartPurgeStale)
}

// handleCartPurgeStale 清理会话早已过期的滞留购物车项
func (c *Consumer) handleCartPurgeStale(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_cart_purge_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CartPurgeStalePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_cart_purge_unmarshal_failed", "error", err)
		return err
	}
	retentionHours := payload.RetentionHours
	if retentionHours <= 0 {
		retentionHours = c.Config.Cart.StaleRetentionHours
	}
	if retentionHours <= 0 {
		logger.Debugw("worker_cart_purge_skip_invalid_retention", "retention_hours", retentionHours)
		return nil
	}
	before := time.Now().Add(-time.Duration(retentionHours) * time.Hour)
	deleted, err := c.CartRepo.DeleteStale(before)
	if err != nil {
		logger.Warnw("worker_cart_purge_failed", "before", before, "error", err)
		return err
	}
	if deleted > 0 {
		logger.Infow("worker_cart_purge_done", "deleted", deleted, "before", before)
	}
	return nil
}
