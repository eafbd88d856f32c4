package repository

import (
	"testing"
	"time"

	"github.com/clickpath/internal/constants"
	"github.com/clickpath/internal/models"

	"github.com/shopspring/decimal"
)

func TestCampaignRepositoryRoundTripsStringLists(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewCampaignRepository(db)
	partner := createTestPartner(t, db, "p1")

	target := int64(100)
	campaign := &models.Campaign{
		PartnerID:          &partner.ID,
		Name:               "Spring Sale",
		Status:             constants.CampaignStatusDraft,
		StartDate:          time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		TargetConversions:  &target,
		TargetRevenue:      models.NewMoneyPtr(decimal.NewFromInt(5000)),
		CreativeURLs:       models.StringList{"https://cdn.example.com/a.png", "https://cdn.example.com/b.png"},
		NotificationEmails: models.StringList{"ops@example.com"},
	}
	if err := repo.Create(campaign); err != nil {
		t.Fatalf("create campaign failed: %v", err)
	}

	stored, err := repo.GetByID(campaign.ID)
	if err != nil {
		t.Fatalf("get campaign failed: %v", err)
	}
	if stored == nil {
		t.Fatalf("campaign should exist")
	}
	if len(stored.CreativeURLs) != 2 || stored.CreativeURLs[1] != "https://cdn.example.com/b.png" {
		t.Fatalf("creative urls mismatch: %v", stored.CreativeURLs)
	}
	if len(stored.NotificationEmails) != 1 || stored.NotificationEmails[0] != "ops@example.com" {
		t.Fatalf("notification emails mismatch: %v", stored.NotificationEmails)
	}
	if stored.Partner == nil || stored.Partner.ID != partner.ID {
		t.Fatalf("partner should be preloaded")
	}
	if stored.TargetRevenue == nil || !stored.TargetRevenue.Decimal.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("target revenue mismatch: %v", stored.TargetRevenue)
	}

	missing, err := repo.GetByID(campaign.ID + 100)
	if err != nil {
		t.Fatalf("get missing campaign failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("missing campaign should return nil")
	}
}

func TestCampaignUpdateStatusAndListFilters(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewCampaignRepository(db)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	names := []string{"Spring Sale", "Summer Promo", "Spring Clearance"}
	ids := make([]uint, 0, len(names))
	for _, name := range names {
		campaign := &models.Campaign{Name: name, Status: constants.CampaignStatusDraft, StartDate: start}
		if err := repo.Create(campaign); err != nil {
			t.Fatalf("create campaign failed: %v", err)
		}
		ids = append(ids, campaign.ID)
	}

	ok, err := repo.UpdateStatus(ids[0], constants.CampaignStatusDraft, constants.CampaignStatusActive, time.Now())
	if err != nil || !ok {
		t.Fatalf("draft->active should succeed, ok=%v err=%v", ok, err)
	}
	ok, err = repo.UpdateStatus(ids[0], constants.CampaignStatusDraft, constants.CampaignStatusCancelled, time.Now())
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if ok {
		t.Fatalf("stale status should not match")
	}

	rows, total, err := repo.List(CampaignListFilter{Keyword: "spring"})
	if err != nil {
		t.Fatalf("list campaigns failed: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("keyword filter want 2 got total=%d rows=%d", total, len(rows))
	}

	rows, total, err = repo.List(CampaignListFilter{Status: constants.CampaignStatusActive})
	if err != nil {
		t.Fatalf("list campaigns by status failed: %v", err)
	}
	if total != 1 || rows[0].ID != ids[0] {
		t.Fatalf("status filter mismatch, total=%d", total)
	}
}

func TestLinkRepositoryCountAndShortCodeLookup(t *testing.T) {
	db := setupRepositoryTest(t)
	linkRepo := NewLinkRepository(db)
	campaignRepo := NewCampaignRepository(db)
	partner := createTestPartner(t, db, "p1")

	campaign := &models.Campaign{Name: "c1", Status: constants.CampaignStatusActive, StartDate: time.Now().UTC()}
	if err := campaignRepo.Create(campaign); err != nil {
		t.Fatalf("create campaign failed: %v", err)
	}
	createTestLink(t, db, partner.ID, &campaign.ID, "c1-a")
	createTestLink(t, db, partner.ID, &campaign.ID, "c1-b")
	createTestLink(t, db, partner.ID, nil, "solo")

	count, err := linkRepo.CountByCampaign(campaign.ID)
	if err != nil {
		t.Fatalf("count links failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("link count want 2 got %d", count)
	}

	links, err := linkRepo.ListByCampaign(campaign.ID)
	if err != nil {
		t.Fatalf("list links failed: %v", err)
	}
	if len(links) != 2 || links[0].ShortCode != "c1-a" {
		t.Fatalf("campaign links mismatch: %+v", links)
	}

	link, err := linkRepo.GetByShortCode(" solo ")
	if err != nil {
		t.Fatalf("get by short code failed: %v", err)
	}
	if link == nil || link.Partner.ID != partner.ID {
		t.Fatalf("short code lookup should preload partner, got %+v", link)
	}

	if err := db.Delete(&models.Link{}, link.ID).Error; err != nil {
		t.Fatalf("soft delete link failed: %v", err)
	}
	deleted, err := linkRepo.GetByShortCode("solo")
	if err != nil {
		t.Fatalf("get deleted link failed: %v", err)
	}
	if deleted != nil {
		t.Fatalf("soft deleted link should not resolve")
	}
}

func TestProductNamesIncludeDeletedProducts(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewProductRepository(db)
	partner := createTestPartner(t, db, "p1")

	kept := &models.Product{PartnerID: partner.ID, Name: "Widget"}
	removed := &models.Product{PartnerID: partner.ID, Name: "Gadget"}
	for _, product := range []*models.Product{kept, removed} {
		if err := repo.Create(product); err != nil {
			t.Fatalf("create product failed: %v", err)
		}
	}
	if err := db.Delete(&models.Product{}, removed.ID).Error; err != nil {
		t.Fatalf("delete product failed: %v", err)
	}

	names, err := repo.GetNamesByIDs([]uint{kept.ID, removed.ID, 999})
	if err != nil {
		t.Fatalf("get product names failed: %v", err)
	}
	if names[kept.ID] != "Widget" || names[removed.ID] != "Gadget" {
		t.Fatalf("product names mismatch: %v", names)
	}
	if _, ok := names[999]; ok {
		t.Fatalf("unknown product should be absent")
	}
}
