package repository

import (
	"errors"
	"time"

	"github.com/clickpath/internal/models"

	"gorm.io/gorm"
)

// ClickRepository 点击事件数据访问接口（只追加）
type ClickRepository interface {
	Create(click *models.Click) error
	ListByLinks(linkIDs []uint, start, end time.Time) ([]models.Click, error)
	LastBefore(linkID uint, before time.Time) (*models.Click, error)
	WithTx(tx *gorm.DB) *GormClickRepository
}

// GormClickRepository GORM 实现
type GormClickRepository struct {
	db *gorm.DB
}

// NewClickRepository 创建点击仓库
func NewClickRepository(db *gorm.DB) *GormClickRepository {
	return &GormClickRepository{db: db}
}

// WithTx 绑定事务
func (r *GormClickRepository) WithTx(tx *gorm.DB) *GormClickRepository {
	if tx == nil {
		return r
	}
	return &GormClickRepository{db: tx}
}

// Create 追加点击事件
func (r *GormClickRepository) Create(click *models.Click) error {
	return r.db.Create(click).Error
}

// ListByLinks 获取链接集合在时间范围内的点击（含端点）
func (r *GormClickRepository) ListByLinks(linkIDs []uint, start, end time.Time) ([]models.Click, error) {
	if len(linkIDs) == 0 || start.After(end) {
		return []models.Click{}, nil
	}
	var clicks []models.Click
	err := r.db.Where("link_id IN ? AND clicked_at >= ? AND clicked_at <= ?", linkIDs, start, end).
		Order("clicked_at asc, id asc").
		Find(&clicks).Error
	if err != nil {
		return nil, err
	}
	return clicks, nil
}

// LastBefore 获取链接在指定时间之前（含）的最后一次点击
func (r *GormClickRepository) LastBefore(linkID uint, before time.Time) (*models.Click, error) {
	if linkID == 0 {
		return nil, nil
	}
	var click models.Click
	err := r.db.Where("link_id = ? AND clicked_at <= ?", linkID, before).
		Order("clicked_at desc, id desc").
		First(&click).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &click, nil
}
