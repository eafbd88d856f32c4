package analytics

import (
	"github.com/shopspring/decimal"
)

// Targets 活动目标，未设置的目标为 nil
type Targets struct {
	Clicks      *int64
	Conversions *int64
	Revenue     *decimal.Decimal
}

// ProgressEntry 单项目标进度
type ProgressEntry struct {
	Current    decimal.Decimal
	Target     decimal.Decimal
	Percentage int64
}

// Progress 活动目标进度，只包含已设置目标的项
type Progress struct {
	Clicks      *ProgressEntry
	Conversions *ProgressEntry
	Revenue     *ProgressEntry
}

// ComputeProgress 计算目标完成度
// percentage = round(current / target * 100)，不截断到 100；目标为 0 时返回 0。
func ComputeProgress(targets Targets, totals ProgressTotals) Progress {
	var progress Progress
	if targets.Clicks != nil {
		progress.Clicks = newProgressEntry(decimal.NewFromInt(totals.Clicks), decimal.NewFromInt(*targets.Clicks))
	}
	if targets.Conversions != nil {
		progress.Conversions = newProgressEntry(decimal.NewFromInt(totals.Conversions), decimal.NewFromInt(*targets.Conversions))
	}
	if targets.Revenue != nil {
		progress.Revenue = newProgressEntry(totals.Revenue, *targets.Revenue)
	}
	return progress
}

func newProgressEntry(current, target decimal.Decimal) *ProgressEntry {
	entry := &ProgressEntry{Current: current, Target: target}
	if target.IsPositive() {
		entry.Percentage = current.Mul(hundred).Div(target).Round(0).IntPart()
	}
	return entry
}
