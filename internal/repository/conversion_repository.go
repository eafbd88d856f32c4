package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/clickpath/internal/models"

	"gorm.io/gorm"
)

// ConversionRepository 转化事件数据访问接口
type ConversionRepository interface {
	Create(conversion *models.Conversion) error
	GetByID(id uint) (*models.Conversion, error)
	GetByExternalID(linkID uint, externalID string) (*models.Conversion, error)
	ListByLinks(linkIDs []uint, start, end time.Time) ([]models.Conversion, error)
	List(filter ConversionListFilter) ([]models.Conversion, int64, error)
	UpdateStatus(id uint, from, to string, updatedAt time.Time) (bool, error)
	UpdatePayoutStatus(id uint, from, to string, updatedAt time.Time) (bool, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormConversionRepository
}

// GormConversionRepository GORM 实现
type GormConversionRepository struct {
	db *gorm.DB
}

// NewConversionRepository 创建转化仓库
func NewConversionRepository(db *gorm.DB) *GormConversionRepository {
	return &GormConversionRepository{db: db}
}

// WithTx 绑定事务
func (r *GormConversionRepository) WithTx(tx *gorm.DB) *GormConversionRepository {
	if tx == nil {
		return r
	}
	return &GormConversionRepository{db: tx}
}

// Transaction 执行事务
func (r *GormConversionRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// Create 创建转化
func (r *GormConversionRepository) Create(conversion *models.Conversion) error {
	return r.db.Create(conversion).Error
}

// GetByID 根据 ID 获取转化
func (r *GormConversionRepository) GetByID(id uint) (*models.Conversion, error) {
	if id == 0 {
		return nil, nil
	}
	var conversion models.Conversion
	if err := r.db.First(&conversion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conversion, nil
}

// GetByExternalID 根据链接与外部订单号获取转化
func (r *GormConversionRepository) GetByExternalID(linkID uint, externalID string) (*models.Conversion, error) {
	externalID = strings.TrimSpace(externalID)
	if linkID == 0 || externalID == "" {
		return nil, nil
	}
	var conversion models.Conversion
	if err := r.db.Where("link_id = ? AND external_id = ?", linkID, externalID).First(&conversion).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conversion, nil
}

// ListByLinks 获取链接集合在时间范围内的转化（含端点）
func (r *GormConversionRepository) ListByLinks(linkIDs []uint, start, end time.Time) ([]models.Conversion, error) {
	if len(linkIDs) == 0 || start.After(end) {
		return []models.Conversion{}, nil
	}
	var conversions []models.Conversion
	err := r.db.Where("link_id IN ? AND converted_at >= ? AND converted_at <= ?", linkIDs, start, end).
		Order("converted_at asc, id asc").
		Find(&conversions).Error
	if err != nil {
		return nil, err
	}
	return conversions, nil
}

// List 转化列表
func (r *GormConversionRepository) List(filter ConversionListFilter) ([]models.Conversion, int64, error) {
	query := r.db.Model(&models.Conversion{})
	if filter.LinkID != 0 {
		query = query.Where("conversions.link_id = ?", filter.LinkID)
	}
	if filter.CampaignID != 0 {
		query = query.Where("conversions.link_id IN (?)",
			r.db.Model(&models.Link{}).Select("id").Where("campaign_id = ?", filter.CampaignID))
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("conversions.status = ?", status)
	}
	if payout := strings.TrimSpace(filter.PayoutStatus); payout != "" {
		query = query.Where("conversions.payout_status = ?", payout)
	}
	if filter.From != nil {
		query = query.Where("conversions.converted_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("conversions.converted_at <= ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var conversions []models.Conversion
	if err := query.Order("conversions.converted_at desc, conversions.id desc").Find(&conversions).Error; err != nil {
		return nil, 0, err
	}
	return conversions, total, nil
}

// UpdateStatus 按当前状态条件更新转化状态，返回是否命中
func (r *GormConversionRepository) UpdateStatus(id uint, from, to string, updatedAt time.Time) (bool, error) {
	return r.compareAndSet(id, "status", from, to, updatedAt)
}

// UpdatePayoutStatus 按当前结算状态条件更新，返回是否命中
func (r *GormConversionRepository) UpdatePayoutStatus(id uint, from, to string, updatedAt time.Time) (bool, error) {
	return r.compareAndSet(id, "payout_status", from, to, updatedAt)
}

func (r *GormConversionRepository) compareAndSet(id uint, column, from, to string, updatedAt time.Time) (bool, error) {
	if id == 0 {
		return false, nil
	}
	result := r.db.Model(&models.Conversion{}).
		Where("id = ? AND "+column+" = ?", id, from).
		Updates(map[string]interface{}{
			column:       to,
			"updated_at": updatedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
