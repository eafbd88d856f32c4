package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClickEvent 参与统计的点击事件
type ClickEvent struct {
	LinkID      uint
	IPAddress   string
	DeviceType  string
	CountryCode string
	Referrer    *string
	ClickedAt   time.Time
}

// ConversionEvent 参与统计的转化事件
type ConversionEvent struct {
	LinkID           uint
	ProductID        *uint
	SaleAmount       *decimal.Decimal
	CommissionAmount decimal.Decimal
	TargetEligible   bool
	ConvertedAt      time.Time
}

// LinkLabel 链接展示信息
type LinkLabel struct {
	ShortCode string
	Name      string
}

// Input 聚合输入
type Input struct {
	Window       Window
	Clicks       []ClickEvent
	Conversions  []ConversionEvent
	Links        map[uint]LinkLabel
	ProductNames map[uint]string
}

// Overview 总览指标
type Overview struct {
	TotalClicks       int64
	UniqueClicks      int64
	Conversions       int64
	Revenue           decimal.Decimal
	Commission        decimal.Decimal
	ConversionRate    float64
	AverageOrderValue decimal.Decimal
}

// ClickPoint 每日点击
type ClickPoint struct {
	Date  string
	Count int64
}

// ConversionPoint 每日转化
type ConversionPoint struct {
	Date    string
	Count   int64
	Revenue decimal.Decimal
}

// BreakdownEntry 维度分布项
type BreakdownEntry struct {
	Key        string
	Count      int64
	Percentage float64
}

// ProductRank 商品排行项
type ProductRank struct {
	ProductID   uint
	ProductName string
	Conversions int64
	Revenue     decimal.Decimal
}

// LinkRank 链接排行项
type LinkRank struct {
	LinkID    uint
	ShortCode string
	Name      string
	Clicks    int64
}

// ProgressTotals 计入目标进度的累计值
type ProgressTotals struct {
	Clicks      int64
	Conversions int64
	Revenue     decimal.Decimal
}

// Result 聚合结果
type Result struct {
	Overview            Overview
	ClicksOverTime      []ClickPoint
	ConversionsOverTime []ConversionPoint
	DeviceBreakdown     []BreakdownEntry
	CountryBreakdown    []BreakdownEntry
	ReferrerBreakdown   []BreakdownEntry
	TopProducts         []ProductRank
	TopLinks            []LinkRank
	ProgressTotals      ProgressTotals
}

// EmptyResult 空结果：全部为零值与空数组
func EmptyResult() Result {
	return Result{
		Overview: Overview{
			Revenue:           decimal.Zero,
			Commission:        decimal.Zero,
			AverageOrderValue: decimal.Zero,
		},
		ClicksOverTime:      []ClickPoint{},
		ConversionsOverTime: []ConversionPoint{},
		DeviceBreakdown:     []BreakdownEntry{},
		CountryBreakdown:    []BreakdownEntry{},
		ReferrerBreakdown:   []BreakdownEntry{},
		TopProducts:         []ProductRank{},
		TopLinks:            []LinkRank{},
		ProgressTotals:      ProgressTotals{Revenue: decimal.Zero},
	}
}
