package models

import "time"

// Click 链接点击事件（只追加，不更新）
type Click struct {
	ID          uint      `gorm:"primarykey" json:"id"`                                 // 主键
	LinkID      uint      `gorm:"not null;index:idx_click_link_time" json:"link_id"`    // 链接ID
	IPAddress   string    `gorm:"type:varchar(64);not null" json:"ip_address"`          // 访客IP（原样保存，不做归一化）
	DeviceType  string    `gorm:"type:varchar(20)" json:"device_type"`                  // 设备类型
	CountryCode string    `gorm:"type:varchar(8)" json:"country_code"`                  // 国家代码（ISO alpha-2）
	Referrer    *string   `gorm:"type:varchar(1024)" json:"referrer,omitempty"`         // 来源地址
	UserAgent   string    `gorm:"type:varchar(1024)" json:"user_agent"`                 // 客户端UA
	ClickedAt   time.Time `gorm:"not null;index:idx_click_link_time" json:"clicked_at"` // 点击时间
}

// TableName 指定表名
func (Click) TableName() string {
	return "clicks"
}
