package analytics

import (
	"math"
	"strings"
	"time"

	"github.com/clickpath/internal/constants"
)

// DefaultPeriod 未识别的周期回退值
const DefaultPeriod = constants.AnalyticsPeriod30d

var periodDays = map[string]int{
	constants.AnalyticsPeriod7d:  7,
	constants.AnalyticsPeriod14d: 14,
	constants.AnalyticsPeriod30d: 30,
	constants.AnalyticsPeriod90d: 90,
}

// Window 统计时间范围（闭区间）
type Window struct {
	Start time.Time
	End   time.Time
}

// Empty 起点晚于终点时为空范围
func (w Window) Empty() bool {
	return w.Start.After(w.End)
}

// Contains 判断时间是否落在范围内（含端点）
func (w Window) Contains(t time.Time) bool {
	if w.Empty() {
		return false
	}
	return !t.Before(w.Start) && !t.After(w.End)
}

// Days 范围覆盖的天数（向上取整）
func (w Window) Days() int {
	if w.Empty() {
		return 0
	}
	days := int(math.Ceil(w.End.Sub(w.Start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// NormalizePeriod 归一化周期参数，未知值回退到 30d
func NormalizePeriod(period string) string {
	key := strings.ToLower(strings.TrimSpace(period))
	if key == constants.AnalyticsPeriodAll {
		return key
	}
	if _, ok := periodDays[key]; ok {
		return key
	}
	return DefaultPeriod
}

// ResolveWindow 计算有效统计范围
// 请求周期与 [floor, ceiling ?? now] 取交集；all 周期以 floor 为起点。
// floor 为零值时固定周期不设下限。
func ResolveWindow(period string, floor time.Time, ceiling *time.Time, now time.Time) (string, Window) {
	key := NormalizePeriod(period)
	now = now.UTC()

	start := floor.UTC()
	if days, ok := periodDays[key]; ok {
		start = now.Add(-time.Duration(days) * 24 * time.Hour)
	}
	end := now

	if start.Before(floor.UTC()) {
		start = floor.UTC()
	}
	if ceiling != nil && ceiling.UTC().Before(end) {
		end = ceiling.UTC()
	}
	return key, Window{Start: start, End: end}
}
