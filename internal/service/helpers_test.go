package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/clickpath/internal/constants"
	"github.com/clickpath/internal/models"
	"github.com/clickpath/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type serviceTestEnv struct {
	db          *gorm.DB
	clicks      *ClickService
	conversions *ConversionService
	campaigns   *CampaignService
	links       *LinkService
	partners    *PartnerService
	analytics   *AnalyticsService
}

func setupServiceTest(t *testing.T) *serviceTestEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}

	partnerRepo := repository.NewPartnerRepository(db)
	productRepo := repository.NewProductRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	linkRepo := repository.NewLinkRepository(db)
	clickRepo := repository.NewClickRepository(db)
	conversionRepo := repository.NewConversionRepository(db)

	analyticsService := NewAnalyticsService(AnalyticsServiceOptions{
		CampaignRepo:   campaignRepo,
		LinkRepo:       linkRepo,
		ProductRepo:    productRepo,
		ClickRepo:      clickRepo,
		ConversionRepo: conversionRepo,
	})
	return &serviceTestEnv{
		db:     db,
		clicks: NewClickService(linkRepo, clickRepo, nil, nil),
		conversions: NewConversionService(ConversionServiceOptions{
			LinkRepo:       linkRepo,
			CampaignRepo:   campaignRepo,
			ClickRepo:      clickRepo,
			ConversionRepo: conversionRepo,
			Invalidator:    analyticsService,
		}),
		campaigns: NewCampaignService(campaignRepo, linkRepo, partnerRepo, analyticsService),
		links:     NewLinkService(linkRepo, partnerRepo, campaignRepo, productRepo),
		partners:  NewPartnerService(partnerRepo, 30),
		analytics: analyticsService,
	}
}

func createServiceTestPartner(t *testing.T, env *serviceTestEnv, commissionType string, rate float64) *models.Partner {
	t.Helper()
	partner, err := env.partners.Create(CreatePartnerInput{
		Name:           "partner-" + commissionType,
		CommissionType: commissionType,
		CommissionRate: rate,
	})
	if err != nil {
		t.Fatalf("create partner failed: %v", err)
	}
	return partner
}

func createServiceTestCampaign(t *testing.T, env *serviceTestEnv, start time.Time, bonus *float64) *models.Campaign {
	t.Helper()
	campaign, err := env.campaigns.Create(SaveCampaignInput{
		Name:                "campaign",
		StartDate:           start,
		BonusCommissionRate: bonus,
	})
	if err != nil {
		t.Fatalf("create campaign failed: %v", err)
	}
	return campaign
}

func createServiceTestLink(t *testing.T, env *serviceTestEnv, partnerID uint, campaignID *uint, code string) *models.Link {
	t.Helper()
	link, err := env.links.Create(CreateLinkInput{
		PartnerID:      partnerID,
		CampaignID:     campaignID,
		ShortCode:      code,
		Name:           "link " + code,
		DestinationURL: "https://shop.example.com/landing",
	})
	if err != nil {
		t.Fatalf("create link failed: %v", err)
	}
	return link
}

func createServiceTestClick(t *testing.T, env *serviceTestEnv, linkID uint, ip string, clickedAt time.Time) {
	t.Helper()
	click := &models.Click{
		LinkID:     linkID,
		IPAddress:  ip,
		DeviceType: constants.DeviceTypeDesktop,
		ClickedAt:  clickedAt.UTC(),
	}
	if err := env.db.Create(click).Error; err != nil {
		t.Fatalf("create click failed: %v", err)
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

func int64Ptr(v int64) *int64 {
	return &v
}

func mustDecimal(t *testing.T, raw string) decimal.Decimal {
	t.Helper()
	value, err := decimal.NewFromString(raw)
	if err != nil {
		t.Fatalf("parse decimal %s failed: %v", raw, err)
	}
	return value
}
