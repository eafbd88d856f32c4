package repository

import (
	"errors"
	"strings"

	"github.com/clickpath/internal/models"

	"gorm.io/gorm"
)

// LinkRepository 推广链接数据访问接口
type LinkRepository interface {
	GetByID(id uint) (*models.Link, error)
	GetByShortCode(code string) (*models.Link, error)
	Create(link *models.Link) error
	ListByCampaign(campaignID uint) ([]models.Link, error)
	CountByCampaign(campaignID uint) (int64, error)
	List(filter LinkListFilter) ([]models.Link, int64, error)
	WithTx(tx *gorm.DB) *GormLinkRepository
}

// GormLinkRepository GORM 实现
type GormLinkRepository struct {
	db *gorm.DB
}

// NewLinkRepository 创建推广链接仓库
func NewLinkRepository(db *gorm.DB) *GormLinkRepository {
	return &GormLinkRepository{db: db}
}

// WithTx 绑定事务
func (r *GormLinkRepository) WithTx(tx *gorm.DB) *GormLinkRepository {
	if tx == nil {
		return r
	}
	return &GormLinkRepository{db: tx}
}

// GetByID 根据 ID 获取链接（含推广方）
func (r *GormLinkRepository) GetByID(id uint) (*models.Link, error) {
	if id == 0 {
		return nil, nil
	}
	var link models.Link
	if err := r.db.Preload("Partner").First(&link, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

// GetByShortCode 根据短码获取链接（含推广方）
func (r *GormLinkRepository) GetByShortCode(code string) (*models.Link, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}
	var link models.Link
	if err := r.db.Preload("Partner").Where("short_code = ?", code).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

// Create 创建链接
func (r *GormLinkRepository) Create(link *models.Link) error {
	return r.db.Omit("Partner").Create(link).Error
}

// ListByCampaign 获取活动下全部链接
func (r *GormLinkRepository) ListByCampaign(campaignID uint) ([]models.Link, error) {
	if campaignID == 0 {
		return []models.Link{}, nil
	}
	var links []models.Link
	if err := r.db.Where("campaign_id = ?", campaignID).Order("id asc").Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// CountByCampaign 统计活动下的链接数量
func (r *GormLinkRepository) CountByCampaign(campaignID uint) (int64, error) {
	if campaignID == 0 {
		return 0, nil
	}
	var total int64
	if err := r.db.Model(&models.Link{}).Where("campaign_id = ?", campaignID).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// List 链接列表
func (r *GormLinkRepository) List(filter LinkListFilter) ([]models.Link, int64, error) {
	query := r.db.Model(&models.Link{})
	if filter.PartnerID != 0 {
		query = query.Where("partner_id = ?", filter.PartnerID)
	}
	if filter.CampaignID != 0 {
		query = query.Where("campaign_id = ?", filter.CampaignID)
	}
	query = applyKeyword(query, filter.Keyword, "name", "short_code")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var links []models.Link
	if err := query.Order("id desc").Find(&links).Error; err != nil {
		return nil, 0, err
	}
	return links, total, nil
}
