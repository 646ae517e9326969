package worker

import (
	"context"
	"errors"
	"time"

	"github.com/agro-saffron/storefront/internal/config"
	"github.com/agro-saffron/storefront/internal/logger"
	"github.com/agro-saffron/storefront/internal/queue"

	"github.com/hibiken/asynq"
)

const defaultPurgeInterval = time.Hour

// Service 异步队列服务
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.QueueClient.Enabled() {
		go s.runCartPurgeLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runCartPurgeLoop 周期性投递滞留购物车清理任务
func (s *Service) runCartPurgeLoop(ctx context.Context) {
	if s == nil || s.consumer == nil {
		return
	}
	interval := time.Duration(s.consumer.Config.Cart.PurgeIntervalMin) * time.Minute
	if interval <= 0 {
		interval = defaultPurgeInterval
	}
	enqueueOnce := func() {
		payload := queue.CartPurgeStalePayload{
			RetentionHours: s.consumer.Config.Cart.StaleRetentionHours,
		}
		if err := s.consumer.QueueClient.EnqueueCartPurgeStale(payload); err != nil {
			logger.Warnw("worker_cart_purge_enqueue_failed", "error", err)
		}
	}
	enqueueOnce()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			enqueueOnce()
		}
	}
}
