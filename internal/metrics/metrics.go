package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

// Metrics 推广归因相关的 Prometheus 指标
// 所有方法对 nil 接收者安全，未启用指标时可直接传 nil。
type Metrics struct {
	registry *prometheus.Registry

	ClicksRecorded      *prometheus.CounterVec
	ConversionsRecorded *prometheus.CounterVec
	CommissionAmount    *prometheus.CounterVec
	RevenueAmount       prometheus.Counter
	AnalyticsRequests   *prometheus.CounterVec
	AnalyticsLatency    *prometheus.HistogramVec
	GeoLookups          *prometheus.CounterVec
	RateLimitHits       *prometheus.CounterVec
}

// New 创建并注册指标（独立 registry，避免重复注册）
func New(namespace string) *Metrics {
	namespace = strings.TrimSpace(namespace)
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		ClicksRecorded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "clicks_recorded_total",
				Help:      "Total number of recorded link clicks",
			},
			[]string{"device_type"},
		),
		ConversionsRecorded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "conversions_recorded_total",
				Help:      "Total number of recorded conversions",
			},
			[]string{"commission_type", "target_eligible"},
		),
		CommissionAmount: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commission_amount_total",
				Help:      "Sum of commission amounts computed at conversion time",
			},
			[]string{"commission_type"},
		),
		RevenueAmount: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "revenue_amount_total",
				Help:      "Sum of sale amounts carried by conversions",
			},
		),
		AnalyticsRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "analytics_requests_total",
				Help:      "Analytics reads by scope and cache result",
			},
			[]string{"scope", "cache"},
		),
		AnalyticsLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "analytics_latency_seconds",
				Help:      "Analytics aggregation latency in seconds",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"scope"},
		),
		GeoLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "geo_lookups_total",
				Help:      "GeoIP country lookups by result",
			},
			[]string{"result"},
		),
		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limit_hits_total",
				Help:      "Requests rejected by rate limiting",
			},
			[]string{"rule"},
		),
	}
}

// Registry 返回指标 registry
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler 返回 /metrics 处理器
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordClick 记录点击
func (m *Metrics) RecordClick(deviceType string) {
	if m == nil {
		return
	}
	if strings.TrimSpace(deviceType) == "" {
		deviceType = "unknown"
	}
	m.ClicksRecorded.WithLabelValues(deviceType).Inc()
}

// RecordConversion 记录转化与佣金
func (m *Metrics) RecordConversion(commissionType string, targetEligible bool, saleAmount *decimal.Decimal, commission decimal.Decimal) {
	if m == nil {
		return
	}
	m.ConversionsRecorded.WithLabelValues(commissionType, strconv.FormatBool(targetEligible)).Inc()
	m.CommissionAmount.WithLabelValues(commissionType).Add(commission.InexactFloat64())
	if saleAmount != nil {
		m.RevenueAmount.Add(saleAmount.InexactFloat64())
	}
}

// RecordAnalytics 记录统计读取
func (m *Metrics) RecordAnalytics(scope string, cacheHit bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	result := "miss"
	if cacheHit {
		result = "hit"
	}
	m.AnalyticsRequests.WithLabelValues(scope, result).Inc()
	m.AnalyticsLatency.WithLabelValues(scope).Observe(elapsed.Seconds())
}

// RecordGeoLookup 记录 GeoIP 查询结果（hit/miss/error）
func (m *Metrics) RecordGeoLookup(result string) {
	if m == nil {
		return
	}
	m.GeoLookups.WithLabelValues(result).Inc()
}

// RecordRateLimitHit 记录限流拒绝
func (m *Metrics) RecordRateLimitHit(rule string) {
	if m == nil {
		return
	}
	m.RateLimitHits.WithLabelValues(rule).Inc()
}
