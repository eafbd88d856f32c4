package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 推广商品
type Product struct {
	ID        uint           `gorm:"primarykey" json:"id"`                   // 主键
	PartnerID uint           `gorm:"not null;index" json:"partner_id"`       // 所属推广方
	Name      string         `gorm:"type:varchar(255);not null" json:"name"` // 商品名称
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                         // 软删除时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
