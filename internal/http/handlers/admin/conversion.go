package admin

import (
	"strings"

	handlershared "github.com/clickpath/internal/http/handlers/shared"
	"github.com/clickpath/internal/http/response"
	"github.com/clickpath/internal/repository"
	"github.com/clickpath/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateConversionStatusRequest 转化状态变更请求
type UpdateConversionStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

var conversionStatusErrorRules = handlershared.ConcatMappedErrors(
	handlershared.NotFoundRule("error.conversion_not_found"),
	[]handlershared.MappedError{
		{Target: service.ErrConversionStatusInvalid, Code: response.CodeConflict, Key: "error.conversion_status_invalid"},
		{Target: service.ErrPayoutStatusInvalid, Code: response.CodeConflict, Key: "error.payout_status_invalid"},
	},
)

// ListConversions 转化列表
func (h *Handler) ListConversions(c *gin.Context) {
	page, pageSize := parsePagination(c)
	linkID, ok := handlershared.ParseQueryUint(c, "link_id")
	if !ok {
		return
	}
	campaignID, ok := handlershared.ParseQueryUint(c, "campaign_id")
	if !ok {
		return
	}
	from, err := parseTimeNullable(c.Query("from"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	to, err := parseTimeNullable(c.Query("to"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	conversions, total, err := h.ConversionService.List(repository.ConversionListFilter{
		Page:         page,
		PageSize:     pageSize,
		LinkID:       linkID,
		CampaignID:   campaignID,
		Status:       strings.TrimSpace(c.Query("status")),
		PayoutStatus: strings.TrimSpace(c.Query("payout_status")),
		From:         from,
		To:           to,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, conversions, pagination(page, pageSize, total))
}

// UpdateConversionStatus 审核转化
func (h *Handler) UpdateConversionStatus(c *gin.Context) {
	h.changeConversion(c, false)
}

// UpdateConversionPayoutStatus 推进转化结算
func (h *Handler) UpdateConversionPayoutStatus(c *gin.Context) {
	h.changeConversion(c, true)
}

func (h *Handler) changeConversion(c *gin.Context, payout bool) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdateConversionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	update := h.ConversionService.UpdateStatus
	if payout {
		update = h.ConversionService.UpdatePayoutStatus
	}
	conversion, err := update(id, req.Status)
	if err != nil {
		respondMappedError(c, err, conversionStatusErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	handlershared.RequestLog(c).Infow("conversion_status_changed",
		"conversion_id", id,
		"status", conversion.Status,
		"payout_status", conversion.PayoutStatus,
		"operator", handlershared.Operator(c),
	)
	response.Success(c, conversion)
}
