package provider

import (
	"github.com/clickpath/internal/authz"
	"github.com/clickpath/internal/cache"
	"github.com/clickpath/internal/config"
	"github.com/clickpath/internal/geo"
	"github.com/clickpath/internal/logger"
	"github.com/clickpath/internal/metrics"
	"github.com/clickpath/internal/models"
	"github.com/clickpath/internal/queue"
	"github.com/clickpath/internal/repository"
	"github.com/clickpath/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Metrics     *metrics.Metrics
	GeoResolver *geo.Resolver

	// Repositories
	PartnerRepo    repository.PartnerRepository
	ProductRepo    repository.ProductRepository
	CampaignRepo   repository.CampaignRepository
	LinkRepo       repository.LinkRepository
	ClickRepo      repository.ClickRepository
	ConversionRepo repository.ConversionRepository

	// Services
	AuthzService      *authz.Service
	PartnerService    *service.PartnerService
	CampaignService   *service.CampaignService
	LinkService       *service.LinkService
	ClickService      *service.ClickService
	ConversionService *service.ConversionService
	AnalyticsService  *service.AnalyticsService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics.Namespace)
	}

	geoResolver, err := geo.NewResolver(cfg.GeoIP)
	if err != nil {
		logger.Warnw("provider_init_geoip_failed", "error", err)
		geoResolver = &geo.Resolver{}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		Metrics:     m,
		GeoResolver: geoResolver,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

// Close 释放容器持有的外部资源
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Warnw("provider_close_queue_client_failed", "error", err)
		}
	}
	if c.GeoResolver != nil {
		if err := c.GeoResolver.Close(); err != nil {
			logger.Warnw("provider_close_geoip_failed", "error", err)
		}
	}
}

func (c *Container) initRepositories() {
	db := models.DB
	c.PartnerRepo = repository.NewPartnerRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CampaignRepo = repository.NewCampaignRepository(db)
	c.LinkRepo = repository.NewLinkRepository(db)
	c.ClickRepo = repository.NewClickRepository(db)
	c.ConversionRepo = repository.NewConversionRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	cookieDays := c.Config.Attribution.DefaultCookieDays

	c.AnalyticsService = service.NewAnalyticsService(service.AnalyticsServiceOptions{
		CampaignRepo:   c.CampaignRepo,
		LinkRepo:       c.LinkRepo,
		ProductRepo:    c.ProductRepo,
		ClickRepo:      c.ClickRepo,
		ConversionRepo: c.ConversionRepo,
		Metrics:        c.Metrics,
		CacheTTL:       c.Config.Analytics.CacheTTL(),
	})
	c.PartnerService = service.NewPartnerService(c.PartnerRepo, cookieDays)
	c.CampaignService = service.NewCampaignService(c.CampaignRepo, c.LinkRepo, c.PartnerRepo, c.AnalyticsService)
	c.LinkService = service.NewLinkService(c.LinkRepo, c.PartnerRepo, c.CampaignRepo, c.ProductRepo)
	c.ClickService = service.NewClickService(c.LinkRepo, c.ClickRepo, c.GeoResolver, c.Metrics)
	c.ConversionService = service.NewConversionService(service.ConversionServiceOptions{
		LinkRepo:          c.LinkRepo,
		CampaignRepo:      c.CampaignRepo,
		ClickRepo:         c.ClickRepo,
		ConversionRepo:    c.ConversionRepo,
		QueueClient:       c.QueueClient,
		Invalidator:       c.AnalyticsService,
		Metrics:           c.Metrics,
		DefaultCookieDays: cookieDays,
	})
}
