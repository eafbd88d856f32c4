package service

import (
	"errors"
	"strings"
	"time"

	"github.com/clickpath/internal/geo"
	"github.com/clickpath/internal/logger"
	"github.com/clickpath/internal/metrics"
	"github.com/clickpath/internal/models"
	"github.com/clickpath/internal/repository"
)

// ClickService 点击记录服务
type ClickService struct {
	linkRepo  repository.LinkRepository
	clickRepo repository.ClickRepository
	geo       *geo.Resolver
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewClickService 创建点击记录服务
func NewClickService(linkRepo repository.LinkRepository, clickRepo repository.ClickRepository, geoResolver *geo.Resolver, m *metrics.Metrics) *ClickService {
	return &ClickService{
		linkRepo:  linkRepo,
		clickRepo: clickRepo,
		geo:       geoResolver,
		metrics:   m,
		now:       time.Now,
	}
}

// TrackClickInput 点击记录输入
type TrackClickInput struct {
	ShortCode   string
	IPAddress   string
	UserAgent   string
	Referrer    string
	DeviceType  string
	CountryCode string
}

// TrackClickResult 点击记录结果
type TrackClickResult struct {
	Link  *models.Link
	Click *models.Click
}

// Track 记录一次链接点击
// 过期链接的点击仍然记录并跳转，过期只影响转化是否计入活动目标。
func (s *ClickService) Track(input TrackClickInput) (*TrackClickResult, error) {
	link, err := s.linkRepo.GetByShortCode(input.ShortCode)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, ErrNotFound
	}

	deviceType := normalizeDeviceType(input.DeviceType)
	if deviceType == "" {
		deviceType = ClassifyDevice(input.UserAgent)
	}

	click := &models.Click{
		LinkID:      link.ID,
		IPAddress:   strings.TrimSpace(input.IPAddress),
		DeviceType:  deviceType,
		CountryCode: s.resolveCountry(input.CountryCode, input.IPAddress),
		Referrer:    normalizeReferrer(input.Referrer),
		UserAgent:   truncate(strings.TrimSpace(input.UserAgent), 1024),
		ClickedAt:   s.now().UTC(),
	}
	if err := s.clickRepo.Create(click); err != nil {
		return nil, err
	}
	s.metrics.RecordClick(click.DeviceType)
	return &TrackClickResult{Link: link, Click: click}, nil
}

// resolveCountry 优先使用调用方提供的国家代码，否则按 IP 查询
func (s *ClickService) resolveCountry(provided, ip string) string {
	if code := geo.NormalizeCountryCode(provided); code != "" {
		return code
	}
	if !s.geo.Available() || strings.TrimSpace(ip) == "" {
		s.metrics.RecordGeoLookup("skipped")
		return ""
	}
	code, err := s.geo.LookupCountry(ip)
	if err != nil {
		if !errors.Is(err, geo.ErrLookupUnavailable) {
			logger.Debugw("click_geo_lookup_failed", "ip", ip, "error", err)
		}
		s.metrics.RecordGeoLookup("error")
		return ""
	}
	if code == "" {
		s.metrics.RecordGeoLookup("miss")
		return ""
	}
	s.metrics.RecordGeoLookup("hit")
	return code
}

func normalizeReferrer(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	trimmed = truncate(trimmed, 1024)
	return &trimmed
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
