package models

import (
	"time"

	"gorm.io/gorm"
)

// Campaign 推广活动
type Campaign struct {
	ID                  uint           `gorm:"primarykey" json:"id"`                                          // 主键
	PartnerID           *uint          `gorm:"index" json:"partner_id,omitempty"`                             // 所属推广方（为空表示自营活动）
	Name                string         `gorm:"type:varchar(255);not null" json:"name"`                        // 活动名称
	Status              string         `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"` // 活动状态
	StartDate           time.Time      `gorm:"not null;index" json:"start_date"`                              // 开始时间
	EndDate             *time.Time     `gorm:"index" json:"end_date,omitempty"`                               // 结束时间
	BonusCommissionRate *Money         `gorm:"type:decimal(10,2)" json:"bonus_commission_rate,omitempty"`     // 额外佣金比例（百分比）
	TargetClicks        *int64         `json:"target_clicks,omitempty"`                                       // 目标点击数
	TargetConversions   *int64         `json:"target_conversions,omitempty"`                                  // 目标转化数
	TargetRevenue       *Money         `gorm:"type:decimal(20,2)" json:"target_revenue,omitempty"`            // 目标销售额
	CreativeURLs        StringList     `gorm:"type:text" json:"creative_urls"`                                // 素材地址
	NotificationEmails  StringList     `gorm:"type:text" json:"notification_emails"`                          // 通知邮箱
	CreatedAt           time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt           time.Time      `gorm:"index" json:"updated_at"`                                       // 更新时间
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间

	Partner *Partner `gorm:"foreignKey:PartnerID" json:"partner,omitempty"` // 推广方
}

// TableName 指定表名
func (Campaign) TableName() string {
	return "campaigns"
}
