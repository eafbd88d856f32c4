package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/clickpath/internal/constants"
	"github.com/clickpath/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupRepositoryTest(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	return db
}

func createTestPartner(t *testing.T, db *gorm.DB, name string) *models.Partner {
	t.Helper()
	partner := &models.Partner{
		Name:           name,
		CommissionType: constants.CommissionTypePercentage,
		CommissionRate: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		CookieDays:     30,
		Status:         constants.PartnerStatusActive,
	}
	if err := db.Create(partner).Error; err != nil {
		t.Fatalf("create partner failed: %v", err)
	}
	return partner
}

func createTestLink(t *testing.T, db *gorm.DB, partnerID uint, campaignID *uint, code string) *models.Link {
	t.Helper()
	link := &models.Link{
		ShortCode:      code,
		Name:           "link " + code,
		PartnerID:      partnerID,
		CampaignID:     campaignID,
		DestinationURL: "https://shop.example.com/" + code,
	}
	if err := db.Omit("Partner").Create(link).Error; err != nil {
		t.Fatalf("create link failed: %v", err)
	}
	return link
}
