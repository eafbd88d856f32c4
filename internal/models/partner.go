package models

import (
	"time"

	"gorm.io/gorm"
)

// Partner 推广合作方
type Partner struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                                  // 主键
	Name           string         `gorm:"type:varchar(128);not null" json:"name"`                                // 名称
	CommissionType string         `gorm:"type:varchar(20);not null;default:'percentage'" json:"commission_type"` // 佣金类型（percentage/fixed）
	CommissionRate Money          `gorm:"type:decimal(10,2);not null;default:0" json:"commission_rate"`          // 佣金比例或固定金额
	CookieDays     int            `gorm:"not null;default:30" json:"cookie_days"`                                // 默认归因窗口（天）
	Status         string         `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`        // 状态
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                               // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                                               // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                                        // 软删除时间
}

// TableName 指定表名
func (Partner) TableName() string {
	return "partners"
}
