package constants

// 推广方状态常量
const (
	PartnerStatusActive   = "active"
	PartnerStatusDisabled = "disabled"
)

// 佣金类型常量
const (
	CommissionTypePercentage = "percentage"
	CommissionTypeFixed      = "fixed"
)

// 活动状态常量
const (
	CampaignStatusDraft     = "draft"
	CampaignStatusActive    = "active"
	CampaignStatusPaused    = "paused"
	CampaignStatusCompleted = "completed"
	CampaignStatusCancelled = "cancelled"
)

// 转化状态常量
const (
	ConversionStatusPending  = "pending"
	ConversionStatusApproved = "approved"
	ConversionStatusRejected = "rejected"
	ConversionStatusReversed = "reversed"
)

// 结算状态常量
const (
	PayoutStatusUnpaid     = "unpaid"
	PayoutStatusProcessing = "processing"
	PayoutStatusPaid       = "paid"
)

// 设备类型常量
const (
	DeviceTypeDesktop = "desktop"
	DeviceTypeMobile  = "mobile"
	DeviceTypeTablet  = "tablet"
	DeviceTypeBot     = "bot"
)

// 统计周期常量
const (
	AnalyticsPeriod7d  = "7d"
	AnalyticsPeriod14d = "14d"
	AnalyticsPeriod30d = "30d"
	AnalyticsPeriod90d = "90d"
	AnalyticsPeriodAll = "all"
)

// 归因说明常量（转化不计入目标进度时的原因）
const (
	AttributionNoteLinkExpired    = "link_expired"
	AttributionNoteBeforeCampaign = "before_campaign_start"
	AttributionNoteAfterCampaign  = "after_campaign_end"
	AttributionNoteOutsideWindow  = "outside_attribution_window"
)

// 默认归因窗口（天）
const DefaultCookieDays = 30

// 队列与任务常量
const (
	QueueDefault  = "default"
	QueueCritical = "critical"

	TaskConversionRecorded = "conversion:recorded"
)
