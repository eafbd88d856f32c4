package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/clickpath/internal/models"

	"gorm.io/gorm"
)

// CampaignRepository 活动数据访问接口
type CampaignRepository interface {
	GetByID(id uint) (*models.Campaign, error)
	Create(campaign *models.Campaign) error
	UpdateDetails(campaign *models.Campaign, statuses []string) (bool, error)
	UpdateStatus(id uint, from, to string, updatedAt time.Time) (bool, error)
	Delete(id uint) error
	List(filter CampaignListFilter) ([]models.Campaign, int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormCampaignRepository
}

// GormCampaignRepository GORM 实现
type GormCampaignRepository struct {
	db *gorm.DB
}

// NewCampaignRepository 创建活动仓库
func NewCampaignRepository(db *gorm.DB) *GormCampaignRepository {
	return &GormCampaignRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCampaignRepository) WithTx(tx *gorm.DB) *GormCampaignRepository {
	if tx == nil {
		return r
	}
	return &GormCampaignRepository{db: tx}
}

// Transaction 执行事务
func (r *GormCampaignRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// GetByID 根据 ID 获取活动
func (r *GormCampaignRepository) GetByID(id uint) (*models.Campaign, error) {
	if id == 0 {
		return nil, nil
	}
	var campaign models.Campaign
	if err := r.db.Preload("Partner").First(&campaign, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &campaign, nil
}

// Create 创建活动
func (r *GormCampaignRepository) Create(campaign *models.Campaign) error {
	return r.db.Omit("Partner").Create(campaign).Error
}

// campaignEditableColumns 编辑活动时允许写入的列，状态只走 UpdateStatus
var campaignEditableColumns = []string{
	"PartnerID",
	"Name",
	"StartDate",
	"EndDate",
	"BonusCommissionRate",
	"TargetClicks",
	"TargetConversions",
	"TargetRevenue",
	"CreativeURLs",
	"NotificationEmails",
	"UpdatedAt",
}

// UpdateDetails 在活动仍处于给定状态之一时更新可编辑字段，返回是否命中
func (r *GormCampaignRepository) UpdateDetails(campaign *models.Campaign, statuses []string) (bool, error) {
	if campaign == nil || campaign.ID == 0 || len(statuses) == 0 {
		return false, nil
	}
	result := r.db.Model(&models.Campaign{ID: campaign.ID}).
		Where("status IN ?", statuses).
		Select(campaignEditableColumns).
		Updates(campaign)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdateStatus 按当前状态条件更新活动状态，返回是否命中
func (r *GormCampaignRepository) UpdateStatus(id uint, from, to string, updatedAt time.Time) (bool, error) {
	if id == 0 {
		return false, nil
	}
	result := r.db.Model(&models.Campaign{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": updatedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete 删除活动
func (r *GormCampaignRepository) Delete(id uint) error {
	return r.db.Delete(&models.Campaign{}, id).Error
}

// List 活动列表
func (r *GormCampaignRepository) List(filter CampaignListFilter) ([]models.Campaign, int64, error) {
	query := r.db.Model(&models.Campaign{})
	if filter.PartnerID != 0 {
		query = query.Where("partner_id = ?", filter.PartnerID)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	query = applyKeyword(query, filter.Keyword, "name")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var campaigns []models.Campaign
	if err := query.Preload("Partner").Order("id desc").Find(&campaigns).Error; err != nil {
		return nil, 0, err
	}
	return campaigns, total, nil
}
