package repository

import (
	"errors"
	"strings"

	"github.com/clickpath/internal/models"

	"gorm.io/gorm"
)

// PartnerRepository 推广方数据访问接口
type PartnerRepository interface {
	GetByID(id uint) (*models.Partner, error)
	Create(partner *models.Partner) error
	Update(partner *models.Partner) error
	List(filter PartnerListFilter) ([]models.Partner, int64, error)
}

// GormPartnerRepository GORM 实现
type GormPartnerRepository struct {
	db *gorm.DB
}

// NewPartnerRepository 创建推广方仓库
func NewPartnerRepository(db *gorm.DB) *GormPartnerRepository {
	return &GormPartnerRepository{db: db}
}

// GetByID 根据 ID 获取推广方
func (r *GormPartnerRepository) GetByID(id uint) (*models.Partner, error) {
	if id == 0 {
		return nil, nil
	}
	var partner models.Partner
	if err := r.db.First(&partner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &partner, nil
}

// Create 创建推广方
func (r *GormPartnerRepository) Create(partner *models.Partner) error {
	return r.db.Create(partner).Error
}

// Update 更新推广方
func (r *GormPartnerRepository) Update(partner *models.Partner) error {
	return r.db.Save(partner).Error
}

// List 推广方列表
func (r *GormPartnerRepository) List(filter PartnerListFilter) ([]models.Partner, int64, error) {
	query := r.db.Model(&models.Partner{})
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	query = applyKeyword(query, filter.Keyword, "name")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var partners []models.Partner
	if err := query.Order("id desc").Find(&partners).Error; err != nil {
		return nil, 0, err
	}
	return partners, total, nil
}
