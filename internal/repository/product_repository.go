package repository

import (
	"errors"

	"github.com/clickpath/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	GetNamesByIDs(ids []uint) (map[uint]string, error)
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// GetByID 根据 ID 获取商品
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	if id == 0 {
		return nil, nil
	}
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// GetNamesByIDs 批量获取商品名称（含已删除商品，保证历史转化仍能展示名称）
func (r *GormProductRepository) GetNamesByIDs(ids []uint) (map[uint]string, error) {
	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var products []models.Product
	if err := r.db.Unscoped().Select("id", "name").Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	for _, product := range products {
		names[product.ID] = product.Name
	}
	return names, nil
}
