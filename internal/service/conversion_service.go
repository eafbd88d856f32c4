package service

import (
	"context"
	"strings"
	"time"

	"github.com/clickpath/internal/attribution"
	"github.com/clickpath/internal/constants"
	"github.com/clickpath/internal/logger"
	"github.com/clickpath/internal/metrics"
	"github.com/clickpath/internal/models"
	"github.com/clickpath/internal/queue"
	"github.com/clickpath/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// conversionStatusTransitions 转化状态流转
var conversionStatusTransitions = map[string][]string{
	constants.ConversionStatusPending:  {constants.ConversionStatusApproved, constants.ConversionStatusRejected},
	constants.ConversionStatusApproved: {constants.ConversionStatusReversed},
}

// payoutStatusTransitions 结算状态只能单向推进
var payoutStatusTransitions = map[string][]string{
	constants.PayoutStatusUnpaid:     {constants.PayoutStatusProcessing},
	constants.PayoutStatusProcessing: {constants.PayoutStatusPaid},
}

// CampaignCacheInvalidator 活动统计缓存失效
type CampaignCacheInvalidator interface {
	InvalidateCampaign(ctx context.Context, campaignID uint) error
}

// ConversionService 转化记录服务
type ConversionService struct {
	linkRepo          repository.LinkRepository
	campaignRepo      repository.CampaignRepository
	clickRepo         repository.ClickRepository
	conversionRepo    repository.ConversionRepository
	queueClient       *queue.Client
	invalidator       CampaignCacheInvalidator
	metrics           *metrics.Metrics
	defaultCookieDays int
	now               func() time.Time
}

// ConversionServiceOptions 转化服务依赖
type ConversionServiceOptions struct {
	LinkRepo          repository.LinkRepository
	CampaignRepo      repository.CampaignRepository
	ClickRepo         repository.ClickRepository
	ConversionRepo    repository.ConversionRepository
	QueueClient       *queue.Client
	Invalidator       CampaignCacheInvalidator
	Metrics           *metrics.Metrics
	DefaultCookieDays int
}

// NewConversionService 创建转化记录服务
func NewConversionService(opts ConversionServiceOptions) *ConversionService {
	cookieDays := opts.DefaultCookieDays
	if cookieDays <= 0 {
		cookieDays = constants.DefaultCookieDays
	}
	return &ConversionService{
		linkRepo:          opts.LinkRepo,
		campaignRepo:      opts.CampaignRepo,
		clickRepo:         opts.ClickRepo,
		conversionRepo:    opts.ConversionRepo,
		queueClient:       opts.QueueClient,
		invalidator:       opts.Invalidator,
		metrics:           opts.Metrics,
		defaultCookieDays: cookieDays,
		now:               time.Now,
	}
}

// RecordConversionInput 转化记录输入
type RecordConversionInput struct {
	LinkID      uint
	ShortCode   string
	ExternalID  string
	ProductID   *uint
	SaleAmount  *float64
	ConvertedAt *time.Time
}

// RecordConversionResult 转化记录结果
type RecordConversionResult struct {
	Conversion *models.Conversion
	Replayed   bool
}

// Record 记录一次转化
// 佣金在此刻计算并固化；携带 external_id 的重复提交直接返回已有记录。
func (s *ConversionService) Record(ctx context.Context, input RecordConversionInput) (*RecordConversionResult, error) {
	saleAmount, err := parseSaleAmount(input.SaleAmount)
	if err != nil {
		return nil, err
	}
	externalID := strings.TrimSpace(input.ExternalID)
	if len(externalID) > 128 {
		return nil, ErrConversionInvalid
	}

	link, err := s.loadLink(input.LinkID, input.ShortCode)
	if err != nil {
		return nil, err
	}
	if externalID != "" {
		existing, err := s.conversionRepo.GetByExternalID(link.ID, externalID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return &RecordConversionResult{Conversion: existing, Replayed: true}, nil
		}
	}
	if link.Partner.ID == 0 {
		return nil, ErrNotFound
	}

	var campaign *models.Campaign
	if link.CampaignID != nil {
		campaign, err = s.campaignRepo.GetByID(*link.CampaignID)
		if err != nil {
			return nil, err
		}
	}

	convertedAt := s.now().UTC()
	if input.ConvertedAt != nil && !input.ConvertedAt.IsZero() {
		convertedAt = input.ConvertedAt.UTC()
	}

	lastClick, err := s.clickRepo.LastBefore(link.ID, convertedAt)
	if err != nil {
		return nil, err
	}
	decision := attribution.Resolve(buildResolveInput(link, campaign, lastClick, convertedAt, s.defaultCookieDays))

	kind, err := attribution.ParseCommissionKind(link.Partner.CommissionType)
	if err != nil {
		return nil, err
	}
	var bonusRate *decimal.Decimal
	if campaign != nil && campaign.BonusCommissionRate != nil {
		bonus := campaign.BonusCommissionRate.Decimal
		bonusRate = &bonus
	}
	commission, err := attribution.ComputeCommission(saleAmount, attribution.CommissionTerms{
		Kind: kind,
		Rate: link.Partner.CommissionRate.Decimal,
	}, bonusRate)
	if err != nil {
		return nil, err
	}

	productID := input.ProductID
	if productID == nil {
		productID = link.ProductID
	}
	conversion := &models.Conversion{
		LinkID:           link.ID,
		ProductID:        productID,
		CommissionType:   kind.String(),
		RatePercent:      models.NewMoneyFromDecimal(commission.RatePercent),
		CommissionAmount: models.NewMoneyFromDecimal(commission.Amount),
		TargetEligible:   decision.TargetEligible,
		AttributionNote:  decision.Note,
		Status:           constants.ConversionStatusPending,
		PayoutStatus:     constants.PayoutStatusUnpaid,
		ConvertedAt:      convertedAt,
	}
	if saleAmount != nil {
		conversion.SaleAmount = models.NewMoneyPtr(*saleAmount)
	}
	if externalID != "" {
		conversion.ExternalID = &externalID
	}

	replayed := false
	err = s.conversionRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.conversionRepo.WithTx(tx)
		if externalID != "" {
			existing, err := repo.GetByExternalID(link.ID, externalID)
			if err != nil {
				return err
			}
			if existing != nil {
				conversion = existing
				replayed = true
				return nil
			}
		}
		return repo.Create(conversion)
	})
	if err != nil {
		// 并发提交同一 external_id 时由唯一索引兜底
		if externalID != "" && isUniqueViolation(err) {
			existing, lookupErr := s.conversionRepo.GetByExternalID(link.ID, externalID)
			if lookupErr == nil && existing != nil {
				return &RecordConversionResult{Conversion: existing, Replayed: true}, nil
			}
		}
		return nil, err
	}
	if replayed {
		return &RecordConversionResult{Conversion: conversion, Replayed: true}, nil
	}

	s.metrics.RecordConversion(conversion.CommissionType, conversion.TargetEligible, saleAmount, commission.Amount)
	logger.Infow("conversion_recorded",
		"conversion_id", conversion.ID,
		"link_id", link.ID,
		"commission", conversion.CommissionAmount.String(),
		"target_eligible", conversion.TargetEligible,
		"attribution_note", conversion.AttributionNote,
	)
	s.publishRecorded(ctx, conversion, link.CampaignID)
	return &RecordConversionResult{Conversion: conversion}, nil
}

// UpdateStatus 变更转化审核状态
func (s *ConversionService) UpdateStatus(id uint, status string) (*models.Conversion, error) {
	return s.transition(id, strings.ToLower(strings.TrimSpace(status)), false)
}

// UpdatePayoutStatus 变更转化结算状态，仅已通过的转化可以推进结算
func (s *ConversionService) UpdatePayoutStatus(id uint, status string) (*models.Conversion, error) {
	return s.transition(id, strings.ToLower(strings.TrimSpace(status)), true)
}

// Get 获取转化详情
func (s *ConversionService) Get(id uint) (*models.Conversion, error) {
	conversion, err := s.conversionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if conversion == nil {
		return nil, ErrNotFound
	}
	return conversion, nil
}

// List 转化列表
func (s *ConversionService) List(filter repository.ConversionListFilter) ([]models.Conversion, int64, error) {
	return s.conversionRepo.List(filter)
}

func (s *ConversionService) transition(id uint, target string, payout bool) (*models.Conversion, error) {
	conversion, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	invalid := ErrConversionStatusInvalid
	transitions := conversionStatusTransitions
	current := conversion.Status
	if payout {
		invalid = ErrPayoutStatusInvalid
		transitions = payoutStatusTransitions
		current = conversion.PayoutStatus
		if conversion.Status != constants.ConversionStatusApproved {
			return nil, invalid
		}
	}
	if !allowedTransition(transitions, current, target) {
		return nil, invalid
	}

	now := s.now().UTC()
	var ok bool
	if payout {
		ok, err = s.conversionRepo.UpdatePayoutStatus(id, current, target, now)
	} else {
		ok, err = s.conversionRepo.UpdateStatus(id, current, target, now)
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		// 状态已被并发修改
		return nil, invalid
	}
	return s.Get(id)
}

func (s *ConversionService) loadLink(linkID uint, shortCode string) (*models.Link, error) {
	var (
		link *models.Link
		err  error
	)
	if linkID != 0 {
		link, err = s.linkRepo.GetByID(linkID)
	} else {
		link, err = s.linkRepo.GetByShortCode(shortCode)
	}
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, ErrNotFound
	}
	return link, nil
}

// publishRecorded 通知异步任务刷新统计缓存，队列不可用时直接失效缓存
func (s *ConversionService) publishRecorded(ctx context.Context, conversion *models.Conversion, campaignID *uint) {
	if s.queueClient.Enabled() {
		err := s.queueClient.EnqueueConversionRecorded(queue.ConversionRecordedPayload{
			ConversionID: conversion.ID,
			LinkID:       conversion.LinkID,
			CampaignID:   campaignID,
		})
		if err == nil {
			return
		}
		logger.Warnw("conversion_recorded_enqueue_failed", "conversion_id", conversion.ID, "error", err)
	}
	if campaignID == nil || s.invalidator == nil {
		return
	}
	if err := s.invalidator.InvalidateCampaign(ctx, *campaignID); err != nil {
		logger.Warnw("campaign_analytics_invalidate_failed", "campaign_id", *campaignID, "error", err)
	}
}

func buildResolveInput(link *models.Link, campaign *models.Campaign, lastClick *models.Click, convertedAt time.Time, fallbackDays int) attribution.ResolveInput {
	input := attribution.ResolveInput{
		ConvertedAt:   convertedAt,
		LinkExpiresAt: link.ExpiresAt,
		Window:        attribution.EffectiveWindow(link.CookieDays, link.Partner.CookieDays, fallbackDays),
	}
	if campaign != nil {
		input.Campaign = &attribution.CampaignRange{StartDate: campaign.StartDate, EndDate: campaign.EndDate}
	}
	if lastClick != nil {
		clickedAt := lastClick.ClickedAt
		input.LastClickAt = &clickedAt
	}
	return input
}

func parseSaleAmount(raw *float64) (*decimal.Decimal, error) {
	if raw == nil {
		return nil, nil
	}
	amount, err := attribution.SaleAmountFromFloat(*raw)
	if err != nil {
		return nil, err
	}
	return &amount, nil
}

func allowedTransition(transitions map[string][]string, from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
