package admin

import (
	"strings"

	handlershared "github.com/clickpath/internal/http/handlers/shared"
	"github.com/clickpath/internal/http/response"
	"github.com/clickpath/internal/repository"
	"github.com/clickpath/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateLinkRequest 创建推广链接请求
type CreateLinkRequest struct {
	PartnerID      uint   `json:"partner_id" binding:"required"`
	CampaignID     *uint  `json:"campaign_id"`
	ProductID      *uint  `json:"product_id"`
	ShortCode      string `json:"short_code"` // 为空时随机生成
	Name           string `json:"name"`
	DestinationURL string `json:"destination_url" binding:"required"`
	ExpiresAt      string `json:"expires_at"`
	CookieDays     *int   `json:"cookie_days"`
}

var linkErrorRules = handlershared.ConcatMappedErrors(
	// 链接本身尚未创建，不存在的只可能是关联资源
	handlershared.NotFoundRule("error.not_found"),
	[]handlershared.MappedError{
		{Target: service.ErrLinkInvalid, Code: response.CodeBadRequest, Key: "error.link_invalid"},
		{Target: service.ErrShortCodeExists, Code: response.CodeConflict, Key: "error.short_code_exists"},
		{Target: service.ErrPartnerInactive, Code: response.CodeConflict, Key: "error.partner_inactive"},
	},
)

// ListLinks 推广链接列表
func (h *Handler) ListLinks(c *gin.Context) {
	page, pageSize := parsePagination(c)
	partnerID, ok := handlershared.ParseQueryUint(c, "partner_id")
	if !ok {
		return
	}
	campaignID, ok := handlershared.ParseQueryUint(c, "campaign_id")
	if !ok {
		return
	}

	links, total, err := h.LinkService.List(repository.LinkListFilter{
		Page:       page,
		PageSize:   pageSize,
		PartnerID:  partnerID,
		CampaignID: campaignID,
		Keyword:    strings.TrimSpace(c.Query("keyword")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, links, pagination(page, pageSize, total))
}

// CreateLink 创建推广链接
func (h *Handler) CreateLink(c *gin.Context) {
	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	expiresAt, err := parseTimeNullable(req.ExpiresAt)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.link_invalid", nil)
		return
	}

	link, err := h.LinkService.Create(service.CreateLinkInput{
		PartnerID:      req.PartnerID,
		CampaignID:     req.CampaignID,
		ProductID:      req.ProductID,
		ShortCode:      req.ShortCode,
		Name:           req.Name,
		DestinationURL: req.DestinationURL,
		ExpiresAt:      expiresAt,
		CookieDays:     req.CookieDays,
	})
	if err != nil {
		respondMappedError(c, err, linkErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	response.Success(c, link)
}
