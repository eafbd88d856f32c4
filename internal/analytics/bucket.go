package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const dayKeyLayout = "2006-01-02"

// DayKey 返回时间所在的 UTC 自然日
func DayKey(t time.Time) string {
	return t.UTC().Format(dayKeyLayout)
}

// BucketClicksByDay 按 UTC 日统计点击（稀疏序列，不补零）
func BucketClicksByDay(clicks []ClickEvent) []ClickPoint {
	counts := make(map[string]int64)
	for _, click := range clicks {
		counts[DayKey(click.ClickedAt)]++
	}
	points := make([]ClickPoint, 0, len(counts))
	for day, count := range counts {
		points = append(points, ClickPoint{Date: day, Count: count})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

// BucketConversionsByDay 按 UTC 日统计转化数与销售额
func BucketConversionsByDay(conversions []ConversionEvent) []ConversionPoint {
	buckets := make(map[string]*ConversionPoint)
	for _, conv := range conversions {
		day := DayKey(conv.ConvertedAt)
		point, ok := buckets[day]
		if !ok {
			point = &ConversionPoint{Date: day, Revenue: decimal.Zero}
			buckets[day] = point
		}
		point.Count++
		if conv.SaleAmount != nil {
			point.Revenue = point.Revenue.Add(*conv.SaleAmount)
		}
	}
	points := make([]ConversionPoint, 0, len(buckets))
	for _, point := range buckets {
		points = append(points, *point)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}
