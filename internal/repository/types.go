package repository

import "time"

// PartnerListFilter 查询推广方列表的过滤条件
type PartnerListFilter struct {
	Page     int
	PageSize int
	Status   string
	Keyword  string
}

// CampaignListFilter 查询活动列表的过滤条件
type CampaignListFilter struct {
	Page      int
	PageSize  int
	PartnerID uint
	Status    string
	Keyword   string
}

// LinkListFilter 查询推广链接列表的过滤条件
type LinkListFilter struct {
	Page       int
	PageSize   int
	PartnerID  uint
	CampaignID uint
	Keyword    string
}

// ConversionListFilter 查询转化列表的过滤条件
type ConversionListFilter struct {
	Page         int
	PageSize     int
	LinkID       uint
	CampaignID   uint
	Status       string
	PayoutStatus string
	From         *time.Time
	To           *time.Time
}
