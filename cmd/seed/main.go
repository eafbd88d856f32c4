package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/clickpath/internal/authz"
	"github.com/clickpath/internal/config"
	"github.com/clickpath/internal/constants"
	"github.com/clickpath/internal/logger"
	"github.com/clickpath/internal/models"
	"github.com/clickpath/internal/repository"
	"github.com/clickpath/internal/service"
)

// 演示数据覆盖的天数
const seedDays = 21

type seedLink struct {
	code    string
	name    string
	product string
	weight  int
}

var seedUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36",
	"Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X) AppleWebKit/605.1.15 Mobile/15E148",
	"Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 Chrome/124.0 Mobile Safari/537.36",
	"Mozilla/5.0 (iPad; CPU OS 17_4 like Mac OS X) AppleWebKit/605.1.15 Mobile/15E148",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 14_4) AppleWebKit/605.1.15 Version/17.4 Safari/605.1.15",
}

var seedCountries = []string{"US", "US", "DE", "GB", "FR", "JP", "CN", "BR"}

var seedReferrers = []string{
	"",
	"https://www.google.com/",
	"https://news.ycombinator.com/",
	"https://twitter.com/",
	"https://blog.example.org/review",
}

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, false); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	db := models.DB
	partnerRepo := repository.NewPartnerRepository(db)
	productRepo := repository.NewProductRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	linkRepo := repository.NewLinkRepository(db)
	clickRepo := repository.NewClickRepository(db)
	conversionRepo := repository.NewConversionRepository(db)

	partnerService := service.NewPartnerService(partnerRepo, cfg.Attribution.DefaultCookieDays)
	campaignService := service.NewCampaignService(campaignRepo, linkRepo, partnerRepo, nil)
	linkService := service.NewLinkService(linkRepo, partnerRepo, campaignRepo, productRepo)
	conversionService := service.NewConversionService(service.ConversionServiceOptions{
		LinkRepo:          linkRepo,
		CampaignRepo:      campaignRepo,
		ClickRepo:         clickRepo,
		ConversionRepo:    conversionRepo,
		DefaultCookieDays: cfg.Attribution.DefaultCookieDays,
	})

	// 已有演示短码时不重复生成
	if existing, err := linkRepo.GetByShortCode("spring-hero"); err != nil {
		stdLog.Fatalf("Failed to check existing seed data: %v", err)
	} else if existing != nil {
		stdLog.Printf("Seed data already exists (link %d), skipping", existing.ID)
		printDemoTokens(cfg.JWT, stdLog.Printf)
		return
	}

	// 推广方
	acme, err := partnerService.Create(service.CreatePartnerInput{
		Name:           "Acme Media",
		CommissionType: constants.CommissionTypePercentage,
		CommissionRate: 8,
		CookieDays:     30,
	})
	if err != nil {
		stdLog.Fatalf("Failed to create partner: %v", err)
	}
	bloggers, err := partnerService.Create(service.CreatePartnerInput{
		Name:           "Gadget Bloggers",
		CommissionType: constants.CommissionTypeFixed,
		CommissionRate: 12.5,
		CookieDays:     14,
	})
	if err != nil {
		stdLog.Fatalf("Failed to create partner: %v", err)
	}
	stdLog.Printf("Created partners: %s, %s", acme.Name, bloggers.Name)

	// 商品
	productIDs := map[string]uint{}
	for _, name := range []string{"Wireless Earphones", "Smart Watch", "Travel Backpack"} {
		product := &models.Product{PartnerID: acme.ID, Name: name}
		if err := productRepo.Create(product); err != nil {
			stdLog.Fatalf("Failed to create product %s: %v", name, err)
		}
		productIDs[name] = product.ID
	}

	// 活动
	now := time.Now().UTC()
	start := now.AddDate(0, 0, -seedDays).Truncate(24 * time.Hour)
	end := now.AddDate(0, 1, 0).Truncate(24 * time.Hour)
	bonus := 2.0
	targetClicks := int64(1500)
	targetConversions := int64(120)
	targetRevenue := 15000.0
	campaign, err := campaignService.Create(service.SaveCampaignInput{
		PartnerID:           &acme.ID,
		Name:                "Spring Launch",
		StartDate:           start,
		EndDate:             &end,
		BonusCommissionRate: &bonus,
		TargetClicks:        &targetClicks,
		TargetConversions:   &targetConversions,
		TargetRevenue:       &targetRevenue,
		CreativeURLs:        []string{"https://cdn.example.com/creatives/spring-banner.png"},
		NotificationEmails:  []string{"growth@example.com"},
	})
	if err != nil {
		stdLog.Fatalf("Failed to create campaign: %v", err)
	}
	if _, err := campaignService.ChangeStatus(campaign.ID, constants.CampaignStatusActive); err != nil {
		stdLog.Fatalf("Failed to activate campaign: %v", err)
	}
	stdLog.Printf("Created campaign: %s (%d)", campaign.Name, campaign.ID)

	// 推广链接
	links := []seedLink{
		{code: "spring-hero", name: "Homepage hero", product: "Wireless Earphones", weight: 5},
		{code: "spring-mail", name: "Newsletter", product: "Smart Watch", weight: 3},
		{code: "spring-social", name: "Social post", product: "Travel Backpack", weight: 2},
	}
	rng := rand.New(rand.NewPCG(uint64(campaign.ID), 2024))
	clickCount, conversionCount := 0, 0
	for _, item := range links {
		productID := productIDs[item.product]
		link, err := linkService.Create(service.CreateLinkInput{
			PartnerID:      acme.ID,
			CampaignID:     &campaign.ID,
			ProductID:      &productID,
			ShortCode:      item.code,
			Name:           item.name,
			DestinationURL: "https://shop.example.com/products/" + item.code,
		})
		if err != nil {
			if errors.Is(err, service.ErrShortCodeExists) {
				stdLog.Printf("Link already exists: %s", item.code)
				continue
			}
			stdLog.Fatalf("Failed to create link %s: %v", item.code, err)
		}
		// 回填创建时间，使 all 周期能覆盖全部演示数据
		if err := db.Model(&models.Link{}).Where("id = ?", link.ID).Update("created_at", start).Error; err != nil {
			stdLog.Printf("Failed to backdate link %s: %v", item.code, err)
		}

		clicks, conversions, err := seedEvents(rng, clickRepo, conversionService, link, start, item.weight)
		if err != nil {
			stdLog.Fatalf("Failed to seed events for %s: %v", item.code, err)
		}
		clickCount += clicks
		conversionCount += conversions
	}

	// 不归属活动的独立链接（固定佣金推广方）
	if _, err := linkService.Create(service.CreateLinkInput{
		PartnerID:      bloggers.ID,
		ShortCode:      "gadget-review",
		Name:           "Review article",
		DestinationURL: "https://shop.example.com/products/smart-watch",
	}); err != nil && !errors.Is(err, service.ErrShortCodeExists) {
		stdLog.Fatalf("Failed to create standalone link: %v", err)
	}

	stdLog.Printf("Seeded %d clicks and %d conversions", clickCount, conversionCount)
	printDemoTokens(cfg.JWT, stdLog.Printf)
}

// seedEvents 按天生成点击，并在部分点击后生成转化
func seedEvents(rng *rand.Rand, clickRepo repository.ClickRepository, conversions *service.ConversionService, link *models.Link, start time.Time, weight int) (int, int, error) {
	clickTotal, conversionTotal := 0, 0
	for day := 0; day < seedDays; day++ {
		dayStart := start.AddDate(0, 0, day)
		dailyClicks := weight*3 + rng.IntN(weight*4+1)
		for i := 0; i < dailyClicks; i++ {
			clickedAt := dayStart.Add(time.Duration(rng.IntN(86400)) * time.Second)
			referrer := seedReferrers[rng.IntN(len(seedReferrers))]
			click := &models.Click{
				LinkID:      link.ID,
				IPAddress:   fmt.Sprintf("198.51.100.%d", rng.IntN(60)+1),
				DeviceType:  service.ClassifyDevice(seedUserAgents[rng.IntN(len(seedUserAgents))]),
				CountryCode: seedCountries[rng.IntN(len(seedCountries))],
				UserAgent:   "seed",
				ClickedAt:   clickedAt,
			}
			if referrer != "" {
				click.Referrer = &referrer
			}
			if err := clickRepo.Create(click); err != nil {
				return clickTotal, conversionTotal, err
			}
			clickTotal++

			if rng.IntN(100) >= 9 {
				continue
			}
			convertedAt := clickedAt.Add(time.Duration(rng.IntN(180)+5) * time.Minute)
			amount := float64(rng.IntN(40000)+2000) / 100
			_, err := conversions.Record(context.Background(), service.RecordConversionInput{
				LinkID:      link.ID,
				ExternalID:  fmt.Sprintf("seed-%d-%d-%d", link.ID, day, i),
				SaleAmount:  &amount,
				ConvertedAt: &convertedAt,
			})
			if err != nil {
				return clickTotal, conversionTotal, err
			}
			conversionTotal++
		}
	}
	return clickTotal, conversionTotal, nil
}

// printDemoTokens 输出各内置角色的演示令牌
func printDemoTokens(cfg config.JWTConfig, printf func(format string, args ...interface{})) {
	for _, role := range []string{authz.RoleSuperAdmin, authz.RoleCampaignManager, authz.RoleFinance, authz.RoleAnalyst} {
		token, expiresAt, err := service.GenerateJWT(cfg, "demo-"+role, []string{role})
		if err != nil {
			printf("Failed to sign demo token for %s: %v", role, err)
			continue
		}
		printf("Demo token [%s] (expires %s): %s", role, expiresAt.Format(time.RFC3339), token)
	}
}
