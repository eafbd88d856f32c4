package analytics

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	deviceTopN   = 5
	countryTopN  = 10
	referrerTopN = 10
	productTopN  = 10
	linkTopN     = 10

	// UnknownLabel 无法解析名称或维度值时的展示值
	UnknownLabel = "Unknown"
	// DirectLabel 无来源地址的点击
	DirectLabel = "Direct"
)

// Breakdown 按维度分组计数，按数量降序取前 topN
// percentage = count / total * 100，按最大余数法保留 1 位小数，同一分布完整合计恰为 100。
func Breakdown(clicks []ClickEvent, keyFn func(ClickEvent) string, topN int) []BreakdownEntry {
	if len(clicks) == 0 {
		return []BreakdownEntry{}
	}
	counts := make(map[string]int64)
	for _, click := range clicks {
		counts[keyFn(click)]++
	}
	total := int64(len(clicks))
	entries := make([]BreakdownEntry, 0, len(counts))
	for key, count := range counts {
		entries = append(entries, BreakdownEntry{Key: key, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Key < entries[j].Key
	})
	for i, tenths := range shareTenths(entries, total) {
		entries[i].Percentage = float64(tenths) / 10
	}
	if topN > 0 && len(entries) > topN {
		entries = entries[:topN]
	}
	return entries
}

// DeviceKey 设备维度
func DeviceKey(click ClickEvent) string {
	device := strings.ToLower(strings.TrimSpace(click.DeviceType))
	if device == "" {
		return UnknownLabel
	}
	return device
}

// CountryKey 国家维度
func CountryKey(click ClickEvent) string {
	country := strings.ToUpper(strings.TrimSpace(click.CountryCode))
	if country == "" {
		return UnknownLabel
	}
	return country
}

// ReferrerKey 来源维度，空来源归为 Direct
func ReferrerKey(click ClickEvent) string {
	if click.Referrer == nil {
		return DirectLabel
	}
	referrer := strings.TrimSpace(*click.Referrer)
	if referrer == "" {
		return DirectLabel
	}
	return referrer
}

// TopProducts 按商品汇总转化，按销售额降序取前 10
func TopProducts(conversions []ConversionEvent, names map[uint]string) []ProductRank {
	buckets := make(map[uint]*ProductRank)
	for _, conv := range conversions {
		if conv.ProductID == nil {
			continue
		}
		id := *conv.ProductID
		rank, ok := buckets[id]
		if !ok {
			rank = &ProductRank{ProductID: id, ProductName: resolveName(names[id]), Revenue: decimal.Zero}
			buckets[id] = rank
		}
		rank.Conversions++
		if conv.SaleAmount != nil {
			rank.Revenue = rank.Revenue.Add(*conv.SaleAmount)
		}
	}
	ranks := make([]ProductRank, 0, len(buckets))
	for _, rank := range buckets {
		ranks = append(ranks, *rank)
	}
	sort.Slice(ranks, func(i, j int) bool {
		if cmp := ranks[i].Revenue.Cmp(ranks[j].Revenue); cmp != 0 {
			return cmp > 0
		}
		if ranks[i].Conversions != ranks[j].Conversions {
			return ranks[i].Conversions > ranks[j].Conversions
		}
		return ranks[i].ProductID < ranks[j].ProductID
	})
	if len(ranks) > productTopN {
		ranks = ranks[:productTopN]
	}
	return ranks
}

// TopLinks 按链接汇总点击，按点击数降序取前 10
func TopLinks(clicks []ClickEvent, labels map[uint]LinkLabel) []LinkRank {
	counts := make(map[uint]int64)
	for _, click := range clicks {
		counts[click.LinkID]++
	}
	ranks := make([]LinkRank, 0, len(counts))
	for id, count := range counts {
		label, ok := labels[id]
		rank := LinkRank{LinkID: id, ShortCode: UnknownLabel, Name: UnknownLabel, Clicks: count}
		if ok {
			rank.ShortCode = resolveName(label.ShortCode)
			rank.Name = resolveName(label.Name)
		}
		ranks = append(ranks, rank)
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Clicks != ranks[j].Clicks {
			return ranks[i].Clicks > ranks[j].Clicks
		}
		return ranks[i].LinkID < ranks[j].LinkID
	})
	if len(ranks) > linkTopN {
		ranks = ranks[:linkTopN]
	}
	return ranks
}

func resolveName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return UnknownLabel
	}
	return trimmed
}

// ratePercent 比率百分比，half-up 保留 2 位小数，分母为 0 时返回 0
func ratePercent(part, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return decimal.NewFromInt(part).Mul(hundred).Div(decimal.NewFromInt(total)).Round(2).InexactFloat64()
}

// shareTenths 按千分位分配占比，先取下整，剩余单位按余数降序补齐
// entries 须已按数量降序排列，余数相同时靠前者优先。
func shareTenths(entries []BreakdownEntry, total int64) []int64 {
	tenths := make([]int64, len(entries))
	if total <= 0 {
		return tenths
	}
	remainders := make([]int64, len(entries))
	var assigned int64
	for i, entry := range entries {
		tenths[i] = entry.Count * 1000 / total
		remainders[i] = entry.Count * 1000 % total
		assigned += tenths[i]
	}
	order := make([]int, len(entries))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]] > remainders[order[b]]
	})
	for _, idx := range order {
		if assigned >= 1000 {
			break
		}
		if remainders[idx] == 0 {
			continue
		}
		tenths[idx]++
		assigned++
	}
	return tenths
}
