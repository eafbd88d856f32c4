package service

import (
	"time"

	"github.com/clickpath/internal/analytics"
	"github.com/clickpath/internal/geo"
	"github.com/clickpath/internal/models"

	"github.com/shopspring/decimal"
)

// CampaignAnalyticsResponse 活动统计响应
type CampaignAnalyticsResponse struct {
	Campaign  CampaignSummaryView `json:"campaign"`
	Period    PeriodView          `json:"period"`
	Analytics AnalyticsView       `json:"analytics"`
}

// LinkAnalyticsResponse 链接统计响应
type LinkAnalyticsResponse struct {
	Link      LinkSummaryView `json:"link"`
	Period    PeriodView      `json:"period"`
	Analytics AnalyticsView   `json:"analytics"`
}

// CampaignSummaryView 活动摘要
type CampaignSummaryView struct {
	ID                  uint       `json:"id"`
	Name                string     `json:"name"`
	Status              string     `json:"status"`
	StartDate           time.Time  `json:"startDate"`
	EndDate             *time.Time `json:"endDate"`
	BonusCommissionRate *float64   `json:"bonusCommissionRate"`
}

// LinkSummaryView 链接摘要
type LinkSummaryView struct {
	ID         uint      `json:"id"`
	ShortCode  string    `json:"shortCode"`
	Name       string    `json:"name"`
	CampaignID *uint     `json:"campaignId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// PeriodView 统计周期
type PeriodView struct {
	Key   string    `json:"key"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Days  int       `json:"days"`
}

// AnalyticsView 统计主体
type AnalyticsView struct {
	Overview    OverviewView     `json:"overview"`
	Progress    *ProgressView    `json:"progress,omitempty"`
	Charts      ChartsView       `json:"charts"`
	TopProducts []TopProductView `json:"topProducts"`
	TopLinks    []TopLinkView    `json:"topLinks"`
}

// OverviewView 总览指标
type OverviewView struct {
	TotalClicks       int64   `json:"totalClicks"`
	UniqueClicks      int64   `json:"uniqueClicks"`
	Conversions       int64   `json:"conversions"`
	Revenue           float64 `json:"revenue"`
	Commission        float64 `json:"commission"`
	ConversionRate    float64 `json:"conversionRate"`
	AverageOrderValue float64 `json:"averageOrderValue"`
}

// ProgressView 目标进度，未设置的目标不输出
type ProgressView struct {
	Clicks      *ProgressEntryView `json:"clicks,omitempty"`
	Conversions *ProgressEntryView `json:"conversions,omitempty"`
	Revenue     *ProgressEntryView `json:"revenue,omitempty"`
}

// ProgressEntryView 单项目标进度
type ProgressEntryView struct {
	Current    float64 `json:"current"`
	Target     float64 `json:"target"`
	Percentage int64   `json:"percentage"`
}

// ChartsView 图表数据
type ChartsView struct {
	ClicksOverTime      []ClickPointView       `json:"clicksOverTime"`
	ConversionsOverTime []ConversionPointView  `json:"conversionsOverTime"`
	DeviceBreakdown     []DeviceBreakdownView  `json:"deviceBreakdown"`
	CountryBreakdown    []CountryBreakdownView `json:"countryBreakdown"`
	ReferrerBreakdown   []ReferrerView         `json:"referrerBreakdown"`
}

// ClickPointView 每日点击
type ClickPointView struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// ConversionPointView 每日转化
type ConversionPointView struct {
	Date    string  `json:"date"`
	Count   int64   `json:"count"`
	Revenue float64 `json:"revenue"`
}

// DeviceBreakdownView 设备分布
type DeviceBreakdownView struct {
	Device     string  `json:"device"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

// CountryBreakdownView 国家分布
type CountryBreakdownView struct {
	Country    string  `json:"country"`
	Name       string  `json:"name"` // 国家通用英文名
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

// ReferrerView 来源分布
type ReferrerView struct {
	Referrer string `json:"referrer"`
	Count    int64  `json:"count"`
}

// TopProductView 商品排行
type TopProductView struct {
	ProductID   uint    `json:"productId"`
	ProductName string  `json:"productName"`
	Conversions int64   `json:"conversions"`
	Revenue     float64 `json:"revenue"`
}

// TopLinkView 链接排行
type TopLinkView struct {
	LinkID    uint   `json:"linkId"`
	ShortCode string `json:"shortCode"`
	Name      string `json:"name"`
	Clicks    int64  `json:"clicks"`
}

func newCampaignSummaryView(campaign *models.Campaign) CampaignSummaryView {
	view := CampaignSummaryView{
		ID:        campaign.ID,
		Name:      campaign.Name,
		Status:    campaign.Status,
		StartDate: campaign.StartDate.UTC(),
		EndDate:   utcPtr(campaign.EndDate),
	}
	if campaign.BonusCommissionRate != nil {
		rate := moneyFloat(campaign.BonusCommissionRate.Decimal)
		view.BonusCommissionRate = &rate
	}
	return view
}

func newLinkSummaryView(link *models.Link) LinkSummaryView {
	return LinkSummaryView{
		ID:         link.ID,
		ShortCode:  link.ShortCode,
		Name:       link.Name,
		CampaignID: link.CampaignID,
		CreatedAt:  link.CreatedAt.UTC(),
	}
}

func newPeriodView(key string, window analytics.Window) PeriodView {
	return PeriodView{Key: key, Start: window.Start, End: window.End, Days: window.Days()}
}

func newAnalyticsView(result analytics.Result) AnalyticsView {
	view := AnalyticsView{
		Overview: OverviewView{
			TotalClicks:       result.Overview.TotalClicks,
			UniqueClicks:      result.Overview.UniqueClicks,
			Conversions:       result.Overview.Conversions,
			Revenue:           moneyFloat(result.Overview.Revenue),
			Commission:        moneyFloat(result.Overview.Commission),
			ConversionRate:    result.Overview.ConversionRate,
			AverageOrderValue: moneyFloat(result.Overview.AverageOrderValue),
		},
		Charts: ChartsView{
			ClicksOverTime:      make([]ClickPointView, 0, len(result.ClicksOverTime)),
			ConversionsOverTime: make([]ConversionPointView, 0, len(result.ConversionsOverTime)),
			DeviceBreakdown:     make([]DeviceBreakdownView, 0, len(result.DeviceBreakdown)),
			CountryBreakdown:    make([]CountryBreakdownView, 0, len(result.CountryBreakdown)),
			ReferrerBreakdown:   make([]ReferrerView, 0, len(result.ReferrerBreakdown)),
		},
		TopProducts: make([]TopProductView, 0, len(result.TopProducts)),
		TopLinks:    make([]TopLinkView, 0, len(result.TopLinks)),
	}
	for _, point := range result.ClicksOverTime {
		view.Charts.ClicksOverTime = append(view.Charts.ClicksOverTime, ClickPointView{Date: point.Date, Count: point.Count})
	}
	for _, point := range result.ConversionsOverTime {
		view.Charts.ConversionsOverTime = append(view.Charts.ConversionsOverTime, ConversionPointView{
			Date:    point.Date,
			Count:   point.Count,
			Revenue: moneyFloat(point.Revenue),
		})
	}
	for _, entry := range result.DeviceBreakdown {
		view.Charts.DeviceBreakdown = append(view.Charts.DeviceBreakdown, DeviceBreakdownView{
			Device: entry.Key, Count: entry.Count, Percentage: entry.Percentage,
		})
	}
	for _, entry := range result.CountryBreakdown {
		view.Charts.CountryBreakdown = append(view.Charts.CountryBreakdown, CountryBreakdownView{
			Country:    entry.Key,
			Name:       geo.CountryName(entry.Key),
			Count:      entry.Count,
			Percentage: entry.Percentage,
		})
	}
	for _, entry := range result.ReferrerBreakdown {
		view.Charts.ReferrerBreakdown = append(view.Charts.ReferrerBreakdown, ReferrerView{Referrer: entry.Key, Count: entry.Count})
	}
	for _, product := range result.TopProducts {
		view.TopProducts = append(view.TopProducts, TopProductView{
			ProductID:   product.ProductID,
			ProductName: product.ProductName,
			Conversions: product.Conversions,
			Revenue:     moneyFloat(product.Revenue),
		})
	}
	for _, link := range result.TopLinks {
		view.TopLinks = append(view.TopLinks, TopLinkView{
			LinkID:    link.LinkID,
			ShortCode: link.ShortCode,
			Name:      link.Name,
			Clicks:    link.Clicks,
		})
	}
	return view
}

func newProgressView(progress analytics.Progress) *ProgressView {
	view := &ProgressView{
		Clicks:      newProgressEntryView(progress.Clicks),
		Conversions: newProgressEntryView(progress.Conversions),
		Revenue:     newProgressEntryView(progress.Revenue),
	}
	return view
}

func newProgressEntryView(entry *analytics.ProgressEntry) *ProgressEntryView {
	if entry == nil {
		return nil
	}
	return &ProgressEntryView{
		Current:    moneyFloat(entry.Current),
		Target:     moneyFloat(entry.Target),
		Percentage: entry.Percentage,
	}
}

func moneyFloat(amount decimal.Decimal) float64 {
	value, _ := amount.Round(2).Float64()
	return value
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
