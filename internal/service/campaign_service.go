package service

import (
	"context"
	"math"
	"net/mail"
	"strings"
	"time"

	"github.com/clickpath/internal/constants"
	"github.com/clickpath/internal/logger"
	"github.com/clickpath/internal/models"
	"github.com/clickpath/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// campaignStatusTransitions 活动状态流转，completed 与 cancelled 为终态
var campaignStatusTransitions = map[string][]string{
	constants.CampaignStatusDraft:  {constants.CampaignStatusActive, constants.CampaignStatusCancelled},
	constants.CampaignStatusActive: {constants.CampaignStatusPaused, constants.CampaignStatusCompleted, constants.CampaignStatusCancelled},
	constants.CampaignStatusPaused: {constants.CampaignStatusActive, constants.CampaignStatusCompleted, constants.CampaignStatusCancelled},
}

// campaignEditableStatuses 允许编辑基础信息的状态
var campaignEditableStatuses = []string{
	constants.CampaignStatusDraft,
	constants.CampaignStatusActive,
	constants.CampaignStatusPaused,
}

// CampaignService 推广活动服务
type CampaignService struct {
	repo        repository.CampaignRepository
	linkRepo    repository.LinkRepository
	partnerRepo repository.PartnerRepository
	invalidator CampaignCacheInvalidator
	now         func() time.Time
}

// NewCampaignService 创建推广活动服务
func NewCampaignService(repo repository.CampaignRepository, linkRepo repository.LinkRepository, partnerRepo repository.PartnerRepository, invalidator CampaignCacheInvalidator) *CampaignService {
	return &CampaignService{
		repo:        repo,
		linkRepo:    linkRepo,
		partnerRepo: partnerRepo,
		invalidator: invalidator,
		now:         time.Now,
	}
}

// SaveCampaignInput 创建/更新活动输入
type SaveCampaignInput struct {
	PartnerID           *uint
	Name                string
	StartDate           time.Time
	EndDate             *time.Time
	BonusCommissionRate *float64
	TargetClicks        *int64
	TargetConversions   *int64
	TargetRevenue       *float64
	CreativeURLs        []string
	NotificationEmails  []string
}

// Create 创建活动（初始为草稿状态）
func (s *CampaignService) Create(input SaveCampaignInput) (*models.Campaign, error) {
	campaign := &models.Campaign{Status: constants.CampaignStatusDraft}
	if err := s.apply(campaign, input); err != nil {
		return nil, err
	}
	if err := s.repo.Create(campaign); err != nil {
		return nil, err
	}
	return s.Get(campaign.ID)
}

// Update 更新活动基础信息，状态只能通过 ChangeStatus 变更
// 已完成或已取消的活动不可编辑；写入时再次校验状态，并发变更为终态时返回状态冲突。
func (s *CampaignService) Update(ctx context.Context, id uint, input SaveCampaignInput) (*models.Campaign, error) {
	campaign, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !campaignEditable(campaign.Status) {
		return nil, ErrCampaignStatusInvalid
	}
	if err := s.apply(campaign, input); err != nil {
		return nil, err
	}
	campaign.Partner = nil
	campaign.UpdatedAt = s.now().UTC()
	ok, err := s.repo.UpdateDetails(campaign, campaignEditableStatuses)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCampaignStatusInvalid
	}
	s.invalidate(ctx, campaign.ID)
	return s.Get(campaign.ID)
}

// Get 获取活动
func (s *CampaignService) Get(id uint) (*models.Campaign, error) {
	campaign, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrNotFound
	}
	return campaign, nil
}

// List 活动列表
func (s *CampaignService) List(filter repository.CampaignListFilter) ([]models.Campaign, int64, error) {
	return s.repo.List(filter)
}

// ChangeStatus 变更活动状态
func (s *CampaignService) ChangeStatus(id uint, status string) (*models.Campaign, error) {
	target := strings.ToLower(strings.TrimSpace(status))
	campaign, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !allowedTransition(campaignStatusTransitions, campaign.Status, target) {
		return nil, ErrCampaignStatusInvalid
	}
	ok, err := s.repo.UpdateStatus(id, campaign.Status, target, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCampaignStatusInvalid
	}
	return s.Get(id)
}

// Delete 删除活动
// 活动下仍有链接时拒绝删除（不做级联删除），调用方应改为取消活动。
func (s *CampaignService) Delete(ctx context.Context, id uint) error {
	err := s.repo.Transaction(func(tx *gorm.DB) error {
		campaignRepo := s.repo.WithTx(tx)
		campaign, err := campaignRepo.GetByID(id)
		if err != nil {
			return err
		}
		if campaign == nil {
			return ErrNotFound
		}
		count, err := s.linkRepo.WithTx(tx).CountByCampaign(id)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrCampaignHasLinks
		}
		return campaignRepo.Delete(id)
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *CampaignService) apply(campaign *models.Campaign, input SaveCampaignInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" || len(name) > 255 || input.StartDate.IsZero() {
		return ErrCampaignInvalid
	}
	startDate := input.StartDate.UTC()
	endDate := utcPtr(input.EndDate)
	if endDate != nil && endDate.Before(startDate) {
		return ErrCampaignInvalid
	}
	if !validNonNegative(input.BonusCommissionRate) || !validNonNegative(input.TargetRevenue) {
		return ErrCampaignInvalid
	}
	if (input.TargetClicks != nil && *input.TargetClicks < 0) || (input.TargetConversions != nil && *input.TargetConversions < 0) {
		return ErrCampaignInvalid
	}
	emails := models.StringList(input.NotificationEmails).Normalize()
	for _, email := range emails {
		if _, err := mail.ParseAddress(email); err != nil {
			return ErrCampaignInvalid
		}
	}
	creatives := models.StringList(input.CreativeURLs).Normalize()
	for _, raw := range creatives {
		if !isHTTPURL(raw) {
			return ErrCampaignInvalid
		}
	}
	if input.PartnerID != nil && *input.PartnerID != 0 {
		partner, err := s.partnerRepo.GetByID(*input.PartnerID)
		if err != nil {
			return err
		}
		if partner == nil {
			return ErrNotFound
		}
		campaign.PartnerID = &partner.ID
	} else {
		campaign.PartnerID = nil
	}

	campaign.Name = name
	campaign.StartDate = startDate
	campaign.EndDate = endDate
	campaign.BonusCommissionRate = moneyPtrFromFloat(input.BonusCommissionRate)
	campaign.TargetClicks = input.TargetClicks
	campaign.TargetConversions = input.TargetConversions
	campaign.TargetRevenue = moneyPtrFromFloat(input.TargetRevenue)
	campaign.CreativeURLs = creatives
	campaign.NotificationEmails = emails
	return nil
}

func (s *CampaignService) invalidate(ctx context.Context, id uint) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.InvalidateCampaign(ctx, id); err != nil {
		logger.Warnw("campaign_analytics_invalidate_failed", "campaign_id", id, "error", err)
	}
}

func campaignEditable(status string) bool {
	for _, item := range campaignEditableStatuses {
		if item == status {
			return true
		}
	}
	return false
}

func validNonNegative(value *float64) bool {
	if value == nil {
		return true
	}
	return !math.IsNaN(*value) && !math.IsInf(*value, 0) && *value >= 0
}

func moneyPtrFromFloat(value *float64) *models.Money {
	if value == nil {
		return nil
	}
	return models.NewMoneyPtr(decimal.NewFromFloat(*value))
}
