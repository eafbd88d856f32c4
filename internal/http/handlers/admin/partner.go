package admin

import (
	"strings"

	handlershared "github.com/clickpath/internal/http/handlers/shared"
	"github.com/clickpath/internal/http/response"
	"github.com/clickpath/internal/repository"
	"github.com/clickpath/internal/service"

	"github.com/gin-gonic/gin"
)

// CreatePartnerRequest 创建推广方请求
type CreatePartnerRequest struct {
	Name           string  `json:"name" binding:"required"`
	CommissionType string  `json:"commission_type" binding:"required"`
	CommissionRate float64 `json:"commission_rate"`
	CookieDays     int     `json:"cookie_days"`
}

var partnerErrorRules = []handlershared.MappedError{
	{Target: service.ErrPartnerInvalid, Code: response.CodeBadRequest, Key: "error.partner_invalid"},
	{Target: service.ErrCommissionTermsInvalid, Code: response.CodeBadRequest, Key: "error.commission_terms_invalid"},
}

// ListPartners 推广方列表
func (h *Handler) ListPartners(c *gin.Context) {
	page, pageSize := parsePagination(c)
	partners, total, err := h.PartnerService.List(repository.PartnerListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
		Keyword:  strings.TrimSpace(c.Query("keyword")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, partners, pagination(page, pageSize, total))
}

// CreatePartner 创建推广方
func (h *Handler) CreatePartner(c *gin.Context) {
	var req CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	partner, err := h.PartnerService.Create(service.CreatePartnerInput{
		Name:           req.Name,
		CommissionType: req.CommissionType,
		CommissionRate: req.CommissionRate,
		CookieDays:     req.CookieDays,
	})
	if err != nil {
		respondMappedError(c, err, partnerErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	response.Success(c, partner)
}
