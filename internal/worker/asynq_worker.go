package worker

import (
	"context"
	"errors"

	"github.com/clickpath/internal/logger"
	"github.com/clickpath/internal/provider"
	"github.com/clickpath/internal/queue"
	"github.com/clickpath/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container

	// Invalidator 统计缓存失效入口，默认使用 AnalyticsService
	Invalidator service.CampaignCacheInvalidator
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	consumer := &Consumer{
		Container: c,
	}
	if c != nil && c.AnalyticsService != nil {
		consumer.Invalidator = c.AnalyticsService
	}
	return consumer
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskConversionRecorded, c.handleConversionRecorded)
}

func (c *Consumer) handleConversionRecorded(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_conversion_recorded_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseConversionRecordedPayload(task)
	if err != nil {
		logger.Warnw("worker_conversion_recorded_unmarshal_failed", "error", err)
		// 载荷损坏重试无意义
		return errors.Join(err, asynq.SkipRetry)
	}
	if payload.ConversionID == 0 && payload.LinkID == 0 {
		logger.Debugw("worker_conversion_recorded_skip_invalid_payload")
		return nil
	}

	campaignID, err := c.resolveCampaignID(payload)
	if err != nil {
		logger.Warnw("worker_conversion_recorded_fetch_link_failed", "link_id", payload.LinkID, "error", err)
		return err
	}
	if campaignID == 0 {
		logger.Debugw("worker_conversion_recorded_skip_no_campaign",
			"conversion_id", payload.ConversionID,
			"link_id", payload.LinkID,
		)
		return nil
	}
	if c.Invalidator == nil {
		logger.Warnw("worker_conversion_recorded_skip_invalidator_nil", "campaign_id", campaignID)
		return nil
	}
	if err := c.Invalidator.InvalidateCampaign(ctx, campaignID); err != nil {
		logger.Warnw("worker_conversion_recorded_invalidate_failed",
			"conversion_id", payload.ConversionID,
			"campaign_id", campaignID,
			"error", err,
		)
		return err
	}
	logger.Debugw("worker_conversion_recorded_cache_invalidated",
		"conversion_id", payload.ConversionID,
		"campaign_id", campaignID,
	)
	return nil
}

// resolveCampaignID 载荷未携带活动时回查链接归属
func (c *Consumer) resolveCampaignID(payload queue.ConversionRecordedPayload) (uint, error) {
	if payload.CampaignID != nil {
		return *payload.CampaignID, nil
	}
	if payload.LinkID == 0 || c.Container == nil || c.LinkRepo == nil {
		return 0, nil
	}
	link, err := c.LinkRepo.GetByID(payload.LinkID)
	if err != nil {
		return 0, err
	}
	if link == nil || link.CampaignID == nil {
		return 0, nil
	}
	return *link.CampaignID, nil
}
