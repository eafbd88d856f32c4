package analytics

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Aggregate 对已拉取的事件做统计聚合
// 纯函数：相同输入得到相同输出；范围为空时返回零值结果。
func Aggregate(in Input) Result {
	if in.Window.Empty() {
		return EmptyResult()
	}

	clicks := make([]ClickEvent, 0, len(in.Clicks))
	for _, click := range in.Clicks {
		if in.Window.Contains(click.ClickedAt) {
			clicks = append(clicks, click)
		}
	}
	conversions := make([]ConversionEvent, 0, len(in.Conversions))
	for _, conv := range in.Conversions {
		if in.Window.Contains(conv.ConvertedAt) {
			conversions = append(conversions, conv)
		}
	}

	result := EmptyResult()
	result.Overview = buildOverview(clicks, conversions)
	result.ClicksOverTime = BucketClicksByDay(clicks)
	result.ConversionsOverTime = BucketConversionsByDay(conversions)
	result.DeviceBreakdown = Breakdown(clicks, DeviceKey, deviceTopN)
	result.CountryBreakdown = Breakdown(clicks, CountryKey, countryTopN)
	result.ReferrerBreakdown = Breakdown(clicks, ReferrerKey, referrerTopN)
	result.TopProducts = TopProducts(conversions, in.ProductNames)
	result.TopLinks = TopLinks(clicks, in.Links)
	result.ProgressTotals = buildProgressTotals(clicks, conversions)
	return result
}

func buildOverview(clicks []ClickEvent, conversions []ConversionEvent) Overview {
	overview := Overview{
		TotalClicks:       int64(len(clicks)),
		UniqueClicks:      int64(UniqueCount(clicks)),
		Conversions:       int64(len(conversions)),
		Revenue:           decimal.Zero,
		Commission:        decimal.Zero,
		AverageOrderValue: decimal.Zero,
	}
	for _, conv := range conversions {
		if conv.SaleAmount != nil {
			overview.Revenue = overview.Revenue.Add(*conv.SaleAmount)
		}
		overview.Commission = overview.Commission.Add(conv.CommissionAmount)
	}
	overview.ConversionRate = ratePercent(overview.Conversions, overview.TotalClicks)
	if overview.Conversions > 0 {
		overview.AverageOrderValue = overview.Revenue.Div(decimal.NewFromInt(overview.Conversions)).Round(2)
	}
	return overview
}

func buildProgressTotals(clicks []ClickEvent, conversions []ConversionEvent) ProgressTotals {
	totals := ProgressTotals{Clicks: int64(len(clicks)), Revenue: decimal.Zero}
	for _, conv := range conversions {
		if !conv.TargetEligible {
			continue
		}
		totals.Conversions++
		if conv.SaleAmount != nil {
			totals.Revenue = totals.Revenue.Add(*conv.SaleAmount)
		}
	}
	return totals
}
