package public

import (
	"strings"
	"time"

	handlershared "github.com/clickpath/internal/http/handlers/shared"
	"github.com/clickpath/internal/http/response"
	"github.com/clickpath/internal/models"
	"github.com/clickpath/internal/service"

	"github.com/gin-gonic/gin"
)

// ConversionPostbackRequest 转化回传请求
type ConversionPostbackRequest struct {
	LinkID      uint     `json:"link_id"`
	ShortCode   string   `json:"short_code"`
	ExternalID  string   `json:"external_id"`
	ProductID   *uint    `json:"product_id"`
	SaleAmount  *float64 `json:"sale_amount"`
	ConvertedAt string   `json:"converted_at"` // RFC3339，空值取服务端时间
}

// ConversionPostbackResponse 转化回传响应
type ConversionPostbackResponse struct {
	ConversionID     uint         `json:"conversion_id"`
	Replayed         bool         `json:"replayed"`
	CommissionType   string       `json:"commission_type"`
	CommissionAmount models.Money `json:"commission_amount"`
	TargetEligible   bool         `json:"target_eligible"`
	AttributionNote  string       `json:"attribution_note,omitempty"`
}

var postbackErrorRules = handlershared.ConcatMappedErrors(
	handlershared.NotFoundRule("error.link_not_found"),
	handlershared.ConversionErrorRules,
)

// RecordConversion 接收商户侧转化回传
func (h *Handler) RecordConversion(c *gin.Context) {
	var req ConversionPostbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if req.LinkID == 0 && strings.TrimSpace(req.ShortCode) == "" {
		respondError(c, response.CodeBadRequest, "error.conversion_invalid", nil)
		return
	}

	var convertedAt *time.Time
	if raw := strings.TrimSpace(req.ConvertedAt); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.conversion_invalid", nil)
			return
		}
		convertedAt = &parsed
	}

	result, err := h.ConversionService.Record(c.Request.Context(), service.RecordConversionInput{
		LinkID:      req.LinkID,
		ShortCode:   req.ShortCode,
		ExternalID:  req.ExternalID,
		ProductID:   req.ProductID,
		SaleAmount:  req.SaleAmount,
		ConvertedAt: convertedAt,
	})
	if err != nil {
		handlershared.RespondMappedError(c, err, postbackErrorRules, response.CodeInternal, "error.conversion_record_failed")
		return
	}

	conversion := result.Conversion
	response.Success(c, ConversionPostbackResponse{
		ConversionID:     conversion.ID,
		Replayed:         result.Replayed,
		CommissionType:   conversion.CommissionType,
		CommissionAmount: conversion.CommissionAmount,
		TargetEligible:   conversion.TargetEligible,
		AttributionNote:  conversion.AttributionNote,
	})
}
