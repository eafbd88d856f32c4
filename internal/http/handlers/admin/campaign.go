package admin

import (
	"strings"

	handlershared "github.com/clickpath/internal/http/handlers/shared"
	"github.com/clickpath/internal/http/response"
	"github.com/clickpath/internal/repository"
	"github.com/clickpath/internal/service"

	"github.com/gin-gonic/gin"
)

// SaveCampaignRequest 创建/更新活动请求
type SaveCampaignRequest struct {
	PartnerID           *uint    `json:"partner_id"`
	Name                string   `json:"name" binding:"required"`
	StartDate           string   `json:"start_date" binding:"required"`
	EndDate             string   `json:"end_date"`
	BonusCommissionRate *float64 `json:"bonus_commission_rate"`
	TargetClicks        *int64   `json:"target_clicks"`
	TargetConversions   *int64   `json:"target_conversions"`
	TargetRevenue       *float64 `json:"target_revenue"`
	CreativeURLs        []string `json:"creative_urls"`
	NotificationEmails  []string `json:"notification_emails"`
}

// UpdateCampaignStatusRequest 活动状态变更请求
type UpdateCampaignStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

var campaignCommonErrorRules = []handlershared.MappedError{
	{Target: service.ErrCampaignInvalid, Code: response.CodeBadRequest, Key: "error.campaign_invalid"},
	{Target: service.ErrCampaignStatusInvalid, Code: response.CodeConflict, Key: "error.campaign_status_invalid"},
	{Target: service.ErrCampaignHasLinks, Code: response.CodeConflict, Key: "error.campaign_has_links"},
}

var campaignErrorRules = handlershared.ConcatMappedErrors(
	handlershared.NotFoundRule("error.campaign_not_found"),
	campaignCommonErrorRules,
)

// 创建时唯一可能不存在的是关联的推广方
var campaignCreateErrorRules = handlershared.ConcatMappedErrors(
	handlershared.NotFoundRule("error.partner_not_found"),
	campaignCommonErrorRules,
)

func (req SaveCampaignRequest) toInput() (service.SaveCampaignInput, error) {
	startDate, err := parseTime(req.StartDate)
	if err != nil {
		return service.SaveCampaignInput{}, err
	}
	endDate, err := parseTimeNullable(req.EndDate)
	if err != nil {
		return service.SaveCampaignInput{}, err
	}
	return service.SaveCampaignInput{
		PartnerID:           req.PartnerID,
		Name:                req.Name,
		StartDate:           startDate,
		EndDate:             endDate,
		BonusCommissionRate: req.BonusCommissionRate,
		TargetClicks:        req.TargetClicks,
		TargetConversions:   req.TargetConversions,
		TargetRevenue:       req.TargetRevenue,
		CreativeURLs:        req.CreativeURLs,
		NotificationEmails:  req.NotificationEmails,
	}, nil
}

// ListCampaigns 活动列表
func (h *Handler) ListCampaigns(c *gin.Context) {
	page, pageSize := parsePagination(c)
	partnerID, ok := handlershared.ParseQueryUint(c, "partner_id")
	if !ok {
		return
	}

	campaigns, total, err := h.CampaignService.List(repository.CampaignListFilter{
		Page:      page,
		PageSize:  pageSize,
		PartnerID: partnerID,
		Status:    strings.TrimSpace(c.Query("status")),
		Keyword:   strings.TrimSpace(c.Query("keyword")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, campaigns, pagination(page, pageSize, total))
}

// GetCampaign 活动详情
func (h *Handler) GetCampaign(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	campaign, err := h.CampaignService.Get(id)
	if err != nil {
		respondMappedError(c, err, campaignErrorRules, response.CodeInternal, "error.fetch_failed")
		return
	}
	response.Success(c, campaign)
}

// CreateCampaign 创建活动
func (h *Handler) CreateCampaign(c *gin.Context) {
	var req SaveCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.campaign_invalid", nil)
		return
	}

	campaign, err := h.CampaignService.Create(input)
	if err != nil {
		respondMappedError(c, err, campaignCreateErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	response.Success(c, campaign)
}

// UpdateCampaign 更新活动
func (h *Handler) UpdateCampaign(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req SaveCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.campaign_invalid", nil)
		return
	}

	campaign, err := h.CampaignService.Update(c.Request.Context(), id, input)
	if err != nil {
		respondMappedError(c, err, campaignErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	response.Success(c, campaign)
}

// UpdateCampaignStatus 变更活动状态
func (h *Handler) UpdateCampaignStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdateCampaignStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	campaign, err := h.CampaignService.ChangeStatus(id, req.Status)
	if err != nil {
		respondMappedError(c, err, campaignErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	handlershared.RequestLog(c).Infow("campaign_status_changed",
		"campaign_id", id,
		"status", campaign.Status,
		"operator", handlershared.Operator(c),
	)
	response.Success(c, campaign)
}

// DeleteCampaign 删除活动，存在推广链接时拒绝
func (h *Handler) DeleteCampaign(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.CampaignService.Delete(c.Request.Context(), id); err != nil {
		respondMappedError(c, err, campaignErrorRules, response.CodeInternal, "error.save_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
