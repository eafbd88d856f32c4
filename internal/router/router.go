package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/clickpath/internal/authz"
	"github.com/clickpath/internal/cache"
	"github.com/clickpath/internal/config"
	adminhandlers "github.com/clickpath/internal/http/handlers/admin"
	publichandlers "github.com/clickpath/internal/http/handlers/public"
	"github.com/clickpath/internal/http/response"
	"github.com/clickpath/internal/logger"
	"github.com/clickpath/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按公开/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "cp"
	}
	redisClient := cache.Client()
	clickRule := RateLimitRule{
		Name:          "click",
		Prefix:        fmt.Sprintf("%s:rate:click", redisPrefix),
		WindowSeconds: cfg.Security.ClickRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.ClickRateLimit.MaxRequests,
	}
	postbackRule := RateLimitRule{
		Name:          "postback",
		Prefix:        fmt.Sprintf("%s:rate:postback", redisPrefix),
		WindowSeconds: cfg.Security.PostbackRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.PostbackRateLimit.MaxRequests,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 短链跳转保持在根路径，便于投放
	r.GET("/r/:code", RateLimitMiddleware(redisClient, clickRule, KeyByIPAndParam("code"), c.Metrics), publicHandler.RedirectLink)

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 转化回传
		postback := apiV1.Group("/postback")
		postback.Use(PostbackTokenMiddleware(cfg.Postback))
		{
			postback.POST("/conversions", RateLimitMiddleware(redisClient, postbackRule, KeyByIPAndJSONField("short_code"), c.Metrics), publicHandler.RecordConversion)
		}

		// 管理端接口（需鉴权）
		admin := apiV1.Group("/admin")
		{
			authorized := admin.Group("")
			authorized.Use(JWTAuthMiddleware(cfg.JWT), AdminRBACMiddleware(c.AuthzService))
			{
				// 权限
				authorized.GET("/authz/policies", adminHandler.GetMyPolicies)
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})

				// 推广方
				authorized.GET("/partners", adminHandler.ListPartners)
				authorized.POST("/partners", adminHandler.CreatePartner)

				// 推广活动
				authorized.GET("/campaigns", adminHandler.ListCampaigns)
				authorized.POST("/campaigns", adminHandler.CreateCampaign)
				authorized.GET("/campaigns/:id", adminHandler.GetCampaign)
				authorized.PUT("/campaigns/:id", adminHandler.UpdateCampaign)
				authorized.DELETE("/campaigns/:id", adminHandler.DeleteCampaign)
				authorized.PATCH("/campaigns/:id/status", adminHandler.UpdateCampaignStatus)
				authorized.GET("/campaigns/:id/analytics", adminHandler.GetCampaignAnalytics)

				// 推广链接
				authorized.GET("/links", adminHandler.ListLinks)
				authorized.POST("/links", adminHandler.CreateLink)
				authorized.GET("/links/:id/analytics", adminHandler.GetLinkAnalytics)

				// 转化
				authorized.GET("/conversions", adminHandler.ListConversions)
				authorized.PATCH("/conversions/:id/status", adminHandler.UpdateConversionStatus)
				authorized.PATCH("/conversions/:id/payout-status", adminHandler.UpdateConversionPayoutStatus)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Prometheus 指标
	if cfg.Metrics.Enabled && c.Metrics != nil {
		path := strings.TrimSpace(cfg.Metrics.Path)
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(c.Metrics.Handler()))
	}

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	return segments[1]
}
