package models

import "time"

// Conversion 转化记录
// 佣金在创建时计算并固化，统计查询只汇总已存储的金额。
type Conversion struct {
	ID               uint      `gorm:"primarykey" json:"id"`                                                                       // 主键
	LinkID           uint      `gorm:"not null;index:idx_conversion_link_time;uniqueIndex:idx_conversion_external" json:"link_id"` // 链接ID
	ProductID        *uint     `gorm:"index" json:"product_id,omitempty"`                                                          // 商品ID
	ExternalID       *string   `gorm:"type:varchar(128);uniqueIndex:idx_conversion_external" json:"external_id,omitempty"`         // 外部订单号（幂等键）
	SaleAmount       *Money    `gorm:"type:decimal(20,2)" json:"sale_amount,omitempty"`                                            // 销售金额（可为空）
	CommissionType   string    `gorm:"type:varchar(20);not null" json:"commission_type"`                                           // 佣金类型快照
	RatePercent      Money     `gorm:"type:decimal(10,2);not null;default:0" json:"rate_percent"`                                  // 生效比例快照（含活动加成）
	CommissionAmount Money     `gorm:"type:decimal(20,2);not null;default:0" json:"commission_amount"`                             // 佣金金额
	TargetEligible   bool      `gorm:"not null;default:true" json:"target_eligible"`                                               // 是否计入活动目标进度
	AttributionNote  string    `gorm:"type:varchar(64)" json:"attribution_note,omitempty"`                                         // 归因说明
	Status           string    `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`                            // 转化状态
	PayoutStatus     string    `gorm:"type:varchar(20);not null;default:'unpaid';index" json:"payout_status"`                      // 结算状态
	ConvertedAt      time.Time `gorm:"not null;index:idx_conversion_link_time" json:"converted_at"`                                // 转化时间
	CreatedAt        time.Time `gorm:"index" json:"created_at"`                                                                    // 创建时间
	UpdatedAt        time.Time `gorm:"index" json:"updated_at"`                                                                    // 更新时间
}

// TableName 指定表名
func (Conversion) TableName() string {
	return "conversions"
}
