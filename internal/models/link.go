package models

import (
	"time"

	"gorm.io/gorm"
)

// Link 推广链接
type Link struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                    // 主键
	ShortCode      string         `gorm:"type:varchar(32);not null;uniqueIndex" json:"short_code"` // 短码
	Name           string         `gorm:"type:varchar(255)" json:"name"`                           // 链接名称
	PartnerID      uint           `gorm:"not null;index" json:"partner_id"`                        // 所属推广方
	CampaignID     *uint          `gorm:"index" json:"campaign_id,omitempty"`                      // 所属活动
	ProductID      *uint          `gorm:"index" json:"product_id,omitempty"`                       // 关联商品
	DestinationURL string         `gorm:"type:varchar(2048);not null" json:"destination_url"`      // 跳转地址
	ExpiresAt      *time.Time     `gorm:"index" json:"expires_at,omitempty"`                       // 过期时间
	CookieDays     *int           `json:"cookie_days,omitempty"`                                   // 归因窗口覆盖值（天）
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                 // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                                 // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                          // 软删除时间

	Partner Partner `gorm:"foreignKey:PartnerID" json:"partner,omitempty"` // 推广方
}

// TableName 指定表名
func (Link) TableName() string {
	return "links"
}
