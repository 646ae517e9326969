package queue

import (
	"encoding/json"

	"github.com/agro-saffron/storefront/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskCartPurgeStale 清理滞留购物车项任务
	TaskCartPurgeStale = constants.TaskCartPurgeStale
)

// CartPurgeStalePayload 清理滞留购物车项任务载荷
type CartPurgeStalePayload struct {
	RetentionHours int `json:"retention_hours"`
}

// NewCartPurgeStaleTask 创建清理滞留购物车项任务
func NewCartPurgeStaleTask(payload CartPurgeStalePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCartPurgeStale, body), nil
}
