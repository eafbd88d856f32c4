package analytics

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(v string) *string {
	return &v
}

func uintPtr(v uint) *uint {
	return &v
}

func money(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func fixtureWindow() Window {
	return Window{
		Start: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 4, 30, 23, 59, 59, 0, time.UTC),
	}
}

func TestAggregateEmptyScope(t *testing.T) {
	result := Aggregate(Input{Window: fixtureWindow()})

	assert.Equal(t, int64(0), result.Overview.TotalClicks)
	assert.Equal(t, int64(0), result.Overview.UniqueClicks)
	assert.Equal(t, int64(0), result.Overview.Conversions)
	assert.True(t, result.Overview.Revenue.IsZero())
	assert.True(t, result.Overview.Commission.IsZero())
	assert.Equal(t, float64(0), result.Overview.ConversionRate)
	assert.True(t, result.Overview.AverageOrderValue.IsZero())
	assert.NotNil(t, result.ClicksOverTime)
	assert.Empty(t, result.ClicksOverTime)
	assert.Empty(t, result.ConversionsOverTime)
	assert.Empty(t, result.DeviceBreakdown)
	assert.Empty(t, result.CountryBreakdown)
	assert.Empty(t, result.ReferrerBreakdown)
	assert.Empty(t, result.TopProducts)
	assert.Empty(t, result.TopLinks)
}

func TestAggregateEmptyWindowIgnoresEvents(t *testing.T) {
	window := Window{
		Start: time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	result := Aggregate(Input{
		Window: window,
		Clicks: []ClickEvent{{LinkID: 1, IPAddress: "1.1.1.1", ClickedAt: window.End}},
	})
	assert.Equal(t, EmptyResult(), result)
}

func TestAggregateOverviewAndSeries(t *testing.T) {
	day1 := time.Date(2026, 4, 2, 23, 30, 0, 0, time.UTC)
	day2 := time.Date(2026, 4, 3, 0, 15, 0, 0, time.UTC)
	// 东八区 4 月 4 日 01:00 对应 UTC 4 月 3 日
	day2Shanghai := time.Date(2026, 4, 4, 1, 0, 0, 0, time.FixedZone("CST", 8*3600))

	in := Input{
		Window: fixtureWindow(),
		Clicks: []ClickEvent{
			{LinkID: 1, IPAddress: "1.1.1.1", DeviceType: "mobile", CountryCode: "us", ClickedAt: day1},
			{LinkID: 1, IPAddress: "1.1.1.1", DeviceType: "mobile", CountryCode: "US", ClickedAt: day2},
			{LinkID: 2, IPAddress: "2.2.2.2", DeviceType: "desktop", CountryCode: "de", Referrer: strPtr("https://news.example.com"), ClickedAt: day2Shanghai},
			{LinkID: 2, IPAddress: "3.3.3.3", ClickedAt: day2},
			// 超出范围
			{LinkID: 1, IPAddress: "4.4.4.4", ClickedAt: time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)},
		},
		Conversions: []ConversionEvent{
			{LinkID: 1, ProductID: uintPtr(10), SaleAmount: money("100.00"), CommissionAmount: decimal.RequireFromString("10.00"), TargetEligible: true, ConvertedAt: day1},
			{LinkID: 2, ProductID: uintPtr(11), SaleAmount: money("50.50"), CommissionAmount: decimal.RequireFromString("5.05"), TargetEligible: false, ConvertedAt: day2},
			{LinkID: 2, SaleAmount: nil, CommissionAmount: decimal.RequireFromString("2.00"), TargetEligible: true, ConvertedAt: day2},
		},
		Links: map[uint]LinkLabel{
			1: {ShortCode: "spring", Name: "Spring banner"},
		},
		ProductNames: map[uint]string{10: "Course Pro"},
	}

	result := Aggregate(in)

	assert.Equal(t, int64(4), result.Overview.TotalClicks)
	assert.Equal(t, int64(3), result.Overview.UniqueClicks)
	assert.Equal(t, int64(3), result.Overview.Conversions)
	assert.Equal(t, "150.50", result.Overview.Revenue.StringFixed(2))
	assert.Equal(t, "17.05", result.Overview.Commission.StringFixed(2))
	assert.Equal(t, float64(75), result.Overview.ConversionRate)
	assert.Equal(t, "50.17", result.Overview.AverageOrderValue.StringFixed(2))

	require.Len(t, result.ClicksOverTime, 2)
	assert.Equal(t, ClickPoint{Date: "2026-04-02", Count: 1}, result.ClicksOverTime[0])
	assert.Equal(t, ClickPoint{Date: "2026-04-03", Count: 3}, result.ClicksOverTime[1])

	require.Len(t, result.ConversionsOverTime, 2)
	assert.Equal(t, "2026-04-02", result.ConversionsOverTime[0].Date)
	assert.Equal(t, int64(2), result.ConversionsOverTime[1].Count)
	assert.Equal(t, "50.50", result.ConversionsOverTime[1].Revenue.StringFixed(2))

	require.Len(t, result.DeviceBreakdown, 3)
	assert.Equal(t, BreakdownEntry{Key: "mobile", Count: 2, Percentage: 50}, result.DeviceBreakdown[0])
	assert.Equal(t, "Unknown", result.DeviceBreakdown[1].Key)
	assert.Equal(t, "desktop", result.DeviceBreakdown[2].Key)

	assert.Equal(t, "US", result.CountryBreakdown[0].Key)
	assert.Equal(t, int64(2), result.CountryBreakdown[0].Count)

	require.Len(t, result.ReferrerBreakdown, 2)
	assert.Equal(t, BreakdownEntry{Key: "Direct", Count: 3, Percentage: 75}, result.ReferrerBreakdown[0])

	require.Len(t, result.TopProducts, 2)
	assert.Equal(t, uint(10), result.TopProducts[0].ProductID)
	assert.Equal(t, "Course Pro", result.TopProducts[0].ProductName)
	assert.Equal(t, "Unknown", result.TopProducts[1].ProductName)

	require.Len(t, result.TopLinks, 2)
	assert.Equal(t, LinkRank{LinkID: 1, ShortCode: "spring", Name: "Spring banner", Clicks: 2}, result.TopLinks[0])
	assert.Equal(t, LinkRank{LinkID: 2, ShortCode: "Unknown", Name: "Unknown", Clicks: 2}, result.TopLinks[1])

	assert.Equal(t, int64(4), result.ProgressTotals.Clicks)
	assert.Equal(t, int64(2), result.ProgressTotals.Conversions)
	assert.Equal(t, "100.00", result.ProgressTotals.Revenue.StringFixed(2))
}

func TestAggregateIsIdempotent(t *testing.T) {
	base := time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC)
	in := Input{Window: fixtureWindow()}
	for i := 0; i < 40; i++ {
		in.Clicks = append(in.Clicks, ClickEvent{
			LinkID:      uint(i%4 + 1),
			IPAddress:   fmt.Sprintf("10.0.%d.1", i%7),
			DeviceType:  []string{"mobile", "desktop", "tablet"}[i%3],
			CountryCode: fmt.Sprintf("C%d", i%12),
			ClickedAt:   base.Add(time.Duration(i) * 7 * time.Hour),
		})
	}
	for i := 0; i < 15; i++ {
		in.Conversions = append(in.Conversions, ConversionEvent{
			LinkID:           uint(i%4 + 1),
			ProductID:        uintPtr(uint(i%3 + 1)),
			SaleAmount:       money(fmt.Sprintf("%d.25", i*3)),
			CommissionAmount: decimal.RequireFromString("1.10"),
			TargetEligible:   true,
			ConvertedAt:      base.Add(time.Duration(i) * 11 * time.Hour),
		})
	}

	first := Aggregate(in)
	second := Aggregate(in)
	assert.Equal(t, first, second)
}

func TestBreakdownPercentagesNeverExceedHundred(t *testing.T) {
	clicks := make([]ClickEvent, 0, 2000)
	for i := 0; i < 1999; i++ {
		clicks = append(clicks, ClickEvent{DeviceType: "desktop"})
	}
	clicks = append(clicks, ClickEvent{DeviceType: "mobile"})

	entries := Breakdown(clicks, DeviceKey, deviceTopN)
	assert.LessOrEqual(t, sumTenths(entries), int64(1000))

	thirds := []ClickEvent{{DeviceType: "a"}, {DeviceType: "b"}, {DeviceType: "c"}}
	entries = Breakdown(thirds, DeviceKey, deviceTopN)
	require.Len(t, entries, 3)
	assert.Equal(t, 33.4, entries[0].Percentage)
	assert.Equal(t, 33.3, entries[1].Percentage)
	assert.Equal(t, 33.3, entries[2].Percentage)
	assert.Equal(t, int64(1000), sumTenths(entries))
}

func TestBreakdownPercentagesRoundToNearest(t *testing.T) {
	cases := []struct {
		name    string
		devices []string
		want    map[string]float64
	}{
		{
			name:    "two thirds",
			devices: []string{"desktop", "desktop", "mobile"},
			want:    map[string]float64{"desktop": 66.7, "mobile": 33.3},
		},
		{
			name:    "one sixth",
			devices: []string{"desktop", "desktop", "desktop", "desktop", "desktop", "mobile"},
			want:    map[string]float64{"desktop": 83.3, "mobile": 16.7},
		},
		{
			name:    "even split",
			devices: []string{"desktop", "mobile"},
			want:    map[string]float64{"desktop": 50, "mobile": 50},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clicks := make([]ClickEvent, 0, len(tc.devices))
			for _, device := range tc.devices {
				clicks = append(clicks, ClickEvent{DeviceType: device})
			}
			entries := Breakdown(clicks, DeviceKey, deviceTopN)
			require.Len(t, entries, len(tc.want))
			for _, entry := range entries {
				assert.Equal(t, tc.want[entry.Key], entry.Percentage, entry.Key)
			}
			assert.Equal(t, int64(1000), sumTenths(entries))
		})
	}
}

func sumTenths(entries []BreakdownEntry) int64 {
	var sum int64
	for _, entry := range entries {
		sum += int64(math.Round(entry.Percentage * 10))
	}
	return sum
}

func TestBreakdownTruncatesToTopN(t *testing.T) {
	var clicks []ClickEvent
	for i := 0; i < 15; i++ {
		for j := 0; j <= i; j++ {
			clicks = append(clicks, ClickEvent{CountryCode: fmt.Sprintf("K%02d", i)})
		}
	}
	entries := Breakdown(clicks, CountryKey, countryTopN)
	require.Len(t, entries, 10)
	assert.Equal(t, "K14", entries[0].Key)
	assert.Equal(t, int64(15), entries[0].Count)
	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i-1].Count, entries[i].Count)
	}
}

func TestDayKeyUsesUTC(t *testing.T) {
	local := time.Date(2026, 1, 1, 2, 0, 0, 0, time.FixedZone("CET", 3600*3))
	assert.Equal(t, "2025-12-31", DayKey(local))
}
