package admin

import (
	"strings"

	handlershared "github.com/clickpath/internal/http/handlers/shared"
	"github.com/clickpath/internal/http/response"
	"github.com/clickpath/internal/service"

	"github.com/gin-gonic/gin"
)

func parseAnalyticsQuery(c *gin.Context) service.AnalyticsQueryInput {
	return service.AnalyticsQueryInput{
		Period:       strings.TrimSpace(c.Query("period")),
		ForceRefresh: parseBoolQuery(c, "refresh"),
	}
}

// GetCampaignAnalytics 活动统计
// period 取 7d/14d/30d/90d/all，未知值按 30d 处理；refresh=true 跳过缓存。
func (h *Handler) GetCampaignAnalytics(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	data, err := h.AnalyticsService.GetCampaignAnalytics(c.Request.Context(), id, parseAnalyticsQuery(c))
	if err != nil {
		respondMappedError(c, err, handlershared.NotFoundRule("error.campaign_not_found"), response.CodeInternal, "error.analytics_fetch_failed")
		return
	}
	response.Success(c, data)
}

// GetLinkAnalytics 单条链接统计
func (h *Handler) GetLinkAnalytics(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	data, err := h.AnalyticsService.GetLinkAnalytics(id, parseAnalyticsQuery(c))
	if err != nil {
		respondMappedError(c, err, handlershared.NotFoundRule("error.link_not_found"), response.CodeInternal, "error.analytics_fetch_failed")
		return
	}
	response.Success(c, data)
}
