package service

import (
	"context"
	"fmt"
	"time"

	"github.com/clickpath/internal/analytics"
	"github.com/clickpath/internal/cache"
	"github.com/clickpath/internal/constants"
	"github.com/clickpath/internal/logger"
	"github.com/clickpath/internal/metrics"
	"github.com/clickpath/internal/models"
	"github.com/clickpath/internal/repository"
)

var cachedPeriods = []string{
	constants.AnalyticsPeriod7d,
	constants.AnalyticsPeriod14d,
	constants.AnalyticsPeriod30d,
	constants.AnalyticsPeriod90d,
	constants.AnalyticsPeriodAll,
}

// AnalyticsCache 统计结果缓存
type AnalyticsCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// AnalyticsService 推广统计服务
// 说明：按周期拉取链接范围内的事件，交给纯函数聚合后输出。
type AnalyticsService struct {
	campaignRepo   repository.CampaignRepository
	linkRepo       repository.LinkRepository
	productRepo    repository.ProductRepository
	clickRepo      repository.ClickRepository
	conversionRepo repository.ConversionRepository
	metrics        *metrics.Metrics
	cache          AnalyticsCache
	cacheTTL       time.Duration
	now            func() time.Time
}

// AnalyticsServiceOptions 统计服务依赖
type AnalyticsServiceOptions struct {
	CampaignRepo   repository.CampaignRepository
	LinkRepo       repository.LinkRepository
	ProductRepo    repository.ProductRepository
	ClickRepo      repository.ClickRepository
	ConversionRepo repository.ConversionRepository
	Metrics        *metrics.Metrics
	Cache          AnalyticsCache
	CacheTTL       time.Duration // 为 0 时不读写缓存
}

// NewAnalyticsService 创建推广统计服务
func NewAnalyticsService(opts AnalyticsServiceOptions) *AnalyticsService {
	ttl := opts.CacheTTL
	if ttl < 0 {
		ttl = 0
	}
	store := opts.Cache
	if store == nil {
		store = cache.Store{}
	}
	return &AnalyticsService{
		campaignRepo:   opts.CampaignRepo,
		linkRepo:       opts.LinkRepo,
		productRepo:    opts.ProductRepo,
		clickRepo:      opts.ClickRepo,
		conversionRepo: opts.ConversionRepo,
		metrics:        opts.Metrics,
		cache:          store,
		cacheTTL:       ttl,
		now:            time.Now,
	}
}

// AnalyticsQueryInput 统计查询输入
type AnalyticsQueryInput struct {
	Period       string
	ForceRefresh bool
}

// GetCampaignAnalytics 获取活动统计
// 活动下没有链接时返回零值结果而不是错误。
func (s *AnalyticsService) GetCampaignAnalytics(ctx context.Context, campaignID uint, input AnalyticsQueryInput) (*CampaignAnalyticsResponse, error) {
	started := s.now()
	campaign, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrNotFound
	}

	period := analytics.NormalizePeriod(input.Period)
	cacheKey := campaignAnalyticsCacheKey(campaign.ID, period)
	useCache := s.cacheTTL > 0
	if useCache && !input.ForceRefresh {
		var cached CampaignAnalyticsResponse
		hit, cacheErr := s.cache.GetJSON(ctx, cacheKey, &cached)
		if cacheErr != nil {
			logger.Debugw("analytics_cache_read_failed", "key", cacheKey, "error", cacheErr)
		}
		if cacheErr == nil && hit {
			s.metrics.RecordAnalytics("campaign", true, s.now().Sub(started))
			return &cached, nil
		}
	}

	links, err := s.linkRepo.ListByCampaign(campaign.ID)
	if err != nil {
		return nil, err
	}
	key, window := analytics.ResolveWindow(period, campaign.StartDate, campaign.EndDate, s.now())
	result, err := s.aggregate(links, window)
	if err != nil {
		return nil, err
	}

	view := newAnalyticsView(result)
	view.Progress = newProgressView(analytics.ComputeProgress(campaignTargets(campaign), result.ProgressTotals))
	response := &CampaignAnalyticsResponse{
		Campaign:  newCampaignSummaryView(campaign),
		Period:    newPeriodView(key, window),
		Analytics: view,
	}

	if useCache {
		if err := s.cache.SetJSON(ctx, cacheKey, response, s.cacheTTL); err != nil {
			logger.Debugw("analytics_cache_write_failed", "key", cacheKey, "error", err)
		}
	}
	s.metrics.RecordAnalytics("campaign", false, s.now().Sub(started))
	return response, nil
}

// GetLinkAnalytics 获取单条链接统计，all 周期以链接创建时间为起点
func (s *AnalyticsService) GetLinkAnalytics(linkID uint, input AnalyticsQueryInput) (*LinkAnalyticsResponse, error) {
	started := s.now()
	link, err := s.linkRepo.GetByID(linkID)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, ErrNotFound
	}

	// 固定周期不以创建时间截断，回传的转化时间可能早于链接创建
	var floor time.Time
	if analytics.NormalizePeriod(input.Period) == constants.AnalyticsPeriodAll {
		floor = link.CreatedAt
	}
	key, window := analytics.ResolveWindow(input.Period, floor, nil, s.now())
	result, err := s.aggregate([]models.Link{*link}, window)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordAnalytics("link", false, s.now().Sub(started))
	return &LinkAnalyticsResponse{
		Link:      newLinkSummaryView(link),
		Period:    newPeriodView(key, window),
		Analytics: newAnalyticsView(result),
	}, nil
}

// InvalidateCampaign 清除活动全部周期的统计缓存
func (s *AnalyticsService) InvalidateCampaign(ctx context.Context, campaignID uint) error {
	if campaignID == 0 {
		return nil
	}
	keys := make([]string, 0, len(cachedPeriods))
	for _, period := range cachedPeriods {
		keys = append(keys, campaignAnalyticsCacheKey(campaignID, period))
	}
	return s.cache.Del(ctx, keys...)
}

// aggregate 拉取事件并聚合
func (s *AnalyticsService) aggregate(links []models.Link, window analytics.Window) (analytics.Result, error) {
	if len(links) == 0 || window.Empty() {
		return analytics.EmptyResult(), nil
	}

	linkIDs := make([]uint, 0, len(links))
	labels := make(map[uint]analytics.LinkLabel, len(links))
	for _, link := range links {
		linkIDs = append(linkIDs, link.ID)
		labels[link.ID] = analytics.LinkLabel{ShortCode: link.ShortCode, Name: link.Name}
	}

	clicks, err := s.clickRepo.ListByLinks(linkIDs, window.Start, window.End)
	if err != nil {
		return analytics.Result{}, err
	}
	conversions, err := s.conversionRepo.ListByLinks(linkIDs, window.Start, window.End)
	if err != nil {
		return analytics.Result{}, err
	}

	productIDs := make([]uint, 0)
	seen := make(map[uint]struct{})
	for _, conversion := range conversions {
		if conversion.ProductID == nil {
			continue
		}
		if _, ok := seen[*conversion.ProductID]; ok {
			continue
		}
		seen[*conversion.ProductID] = struct{}{}
		productIDs = append(productIDs, *conversion.ProductID)
	}
	productNames, err := s.productRepo.GetNamesByIDs(productIDs)
	if err != nil {
		return analytics.Result{}, err
	}

	return analytics.Aggregate(analytics.Input{
		Window:       window,
		Clicks:       toClickEvents(clicks),
		Conversions:  toConversionEvents(conversions),
		Links:        labels,
		ProductNames: productNames,
	}), nil
}

func campaignAnalyticsCacheKey(campaignID uint, period string) string {
	return fmt.Sprintf("analytics:campaign:%d:%s", campaignID, period)
}

func campaignTargets(campaign *models.Campaign) analytics.Targets {
	targets := analytics.Targets{
		Clicks:      campaign.TargetClicks,
		Conversions: campaign.TargetConversions,
	}
	if campaign.TargetRevenue != nil {
		revenue := campaign.TargetRevenue.Decimal
		targets.Revenue = &revenue
	}
	return targets
}

func toClickEvents(clicks []models.Click) []analytics.ClickEvent {
	events := make([]analytics.ClickEvent, 0, len(clicks))
	for _, click := range clicks {
		events = append(events, analytics.ClickEvent{
			LinkID:      click.LinkID,
			IPAddress:   click.IPAddress,
			DeviceType:  click.DeviceType,
			CountryCode: click.CountryCode,
			Referrer:    click.Referrer,
			ClickedAt:   click.ClickedAt,
		})
	}
	return events
}

func toConversionEvents(conversions []models.Conversion) []analytics.ConversionEvent {
	events := make([]analytics.ConversionEvent, 0, len(conversions))
	for _, conversion := range conversions {
		event := analytics.ConversionEvent{
			LinkID:           conversion.LinkID,
			ProductID:        conversion.ProductID,
			CommissionAmount: conversion.CommissionAmount.Decimal,
			TargetEligible:   conversion.TargetEligible,
			ConvertedAt:      conversion.ConvertedAt,
		}
		if conversion.SaleAmount != nil {
			amount := conversion.SaleAmount.Decimal
			event.SaleAmount = &amount
		}
		events = append(events, event)
	}
	return events
}
