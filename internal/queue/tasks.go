package queue

import (
	"encoding/json"
	"fmt"

	"github.com/clickpath/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskConversionRecorded 转化入库后的异步处理任务
	TaskConversionRecorded = constants.TaskConversionRecorded
)

// ConversionRecordedPayload 转化入库任务载荷
type ConversionRecordedPayload struct {
	ConversionID uint  `json:"conversion_id"`
	LinkID       uint  `json:"link_id"`
	CampaignID   *uint `json:"campaign_id,omitempty"`
}

// NewConversionRecordedTask 创建转化入库任务
func NewConversionRecordedTask(payload ConversionRecordedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskConversionRecorded, body), nil
}

// ParseConversionRecordedPayload 解析转化入库任务载荷
func ParseConversionRecordedPayload(task *asynq.Task) (ConversionRecordedPayload, error) {
	var payload ConversionRecordedPayload
	if task == nil {
		return payload, fmt.Errorf("task is nil")
	}
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return payload, err
	}
	return payload, nil
}
