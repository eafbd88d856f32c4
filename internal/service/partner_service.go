package service

import (
	"math"
	"strings"

	"github.com/clickpath/internal/attribution"
	"github.com/clickpath/internal/constants"
	"github.com/clickpath/internal/models"
	"github.com/clickpath/internal/repository"

	"github.com/shopspring/decimal"
)

// PartnerService 推广方服务
type PartnerService struct {
	repo              repository.PartnerRepository
	defaultCookieDays int
}

// NewPartnerService 创建推广方服务
func NewPartnerService(repo repository.PartnerRepository, defaultCookieDays int) *PartnerService {
	if defaultCookieDays <= 0 {
		defaultCookieDays = constants.DefaultCookieDays
	}
	return &PartnerService{repo: repo, defaultCookieDays: defaultCookieDays}
}

// CreatePartnerInput 创建推广方输入
type CreatePartnerInput struct {
	Name           string
	CommissionType string
	CommissionRate float64
	CookieDays     int
}

// Create 创建推广方
func (s *PartnerService) Create(input CreatePartnerInput) (*models.Partner, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || len(name) > 128 {
		return nil, ErrPartnerInvalid
	}
	kind, err := attribution.ParseCommissionKind(input.CommissionType)
	if err != nil {
		return nil, err
	}
	rate := input.CommissionRate
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate < 0 {
		return nil, ErrCommissionTermsInvalid
	}
	if kind == attribution.CommissionPercentage && rate > 100 {
		return nil, ErrCommissionTermsInvalid
	}
	cookieDays := input.CookieDays
	if cookieDays < 0 {
		return nil, ErrPartnerInvalid
	}
	if cookieDays == 0 {
		cookieDays = s.defaultCookieDays
	}

	partner := &models.Partner{
		Name:           name,
		CommissionType: kind.String(),
		CommissionRate: models.NewMoneyFromDecimal(decimal.NewFromFloat(rate)),
		CookieDays:     cookieDays,
		Status:         constants.PartnerStatusActive,
	}
	if err := s.repo.Create(partner); err != nil {
		return nil, err
	}
	return partner, nil
}

// Get 获取推广方
func (s *PartnerService) Get(id uint) (*models.Partner, error) {
	partner, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, ErrNotFound
	}
	return partner, nil
}

// List 推广方列表
func (s *PartnerService) List(filter repository.PartnerListFilter) ([]models.Partner, int64, error) {
	return s.repo.List(filter)
}
