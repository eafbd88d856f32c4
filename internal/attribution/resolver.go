package attribution

import (
	"time"

	"github.com/clickpath/internal/constants"
)

// CampaignRange 活动有效时间段，EndDate 为空表示持续进行
type CampaignRange struct {
	StartDate time.Time
	EndDate   *time.Time
}

// ResolveInput 归因判定输入
type ResolveInput struct {
	ConvertedAt   time.Time
	LinkExpiresAt *time.Time
	Campaign      *CampaignRange
	LastClickAt   *time.Time // 转化前最近一次点击，无点击记录时为空
	Window        time.Duration
}

// Decision 归因判定结果
type Decision struct {
	Attributed     bool
	TargetEligible bool
	Note           string
}

// Resolve 判定转化归因
// 转化没有携带会话标识，因此提交到某链接的转化一律归因到该链接并计入原始统计；
// 链接过期、超出活动时间段、或距最近点击超过归因窗口时，不计入活动目标进度。
func Resolve(in ResolveInput) Decision {
	decision := Decision{Attributed: true, TargetEligible: true}

	switch {
	case in.LinkExpiresAt != nil && in.ConvertedAt.After(*in.LinkExpiresAt):
		decision.Note = constants.AttributionNoteLinkExpired
	case in.Campaign != nil && in.ConvertedAt.Before(in.Campaign.StartDate):
		decision.Note = constants.AttributionNoteBeforeCampaign
	case in.Campaign != nil && in.Campaign.EndDate != nil && in.ConvertedAt.After(*in.Campaign.EndDate):
		decision.Note = constants.AttributionNoteAfterCampaign
	case !WithinWindow(in.ConvertedAt, in.LastClickAt, in.Window):
		decision.Note = constants.AttributionNoteOutsideWindow
	}
	if decision.Note != "" {
		decision.TargetEligible = false
	}
	return decision
}

// WithinWindow 判断转化是否处于最近点击的归因窗口内
// 没有点击记录或窗口未配置时视为在窗口内。
func WithinWindow(convertedAt time.Time, lastClickAt *time.Time, window time.Duration) bool {
	if lastClickAt == nil || window <= 0 {
		return true
	}
	return convertedAt.Sub(*lastClickAt) <= window
}

// EffectiveWindow 计算链接生效的归因窗口
// 链接覆盖值优先，其次推广方默认值，最后使用兜底天数。
func EffectiveWindow(linkCookieDays *int, partnerCookieDays int, fallbackDays int) time.Duration {
	days := fallbackDays
	if partnerCookieDays > 0 {
		days = partnerCookieDays
	}
	if linkCookieDays != nil && *linkCookieDays > 0 {
		days = *linkCookieDays
	}
	if days <= 0 {
		days = constants.DefaultCookieDays
	}
	return time.Duration(days) * 24 * time.Hour
}
