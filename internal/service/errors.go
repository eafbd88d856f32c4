package service

import (
	"errors"
	"strings"

	"github.com/clickpath/internal/attribution"
)

var (
	// ErrNotFound 资源不存在
	ErrNotFound = errors.New("not found")
	// ErrInvalidAmount 销售金额非法（与 attribution 同一哨兵，errors.Is 可互认）
	ErrInvalidAmount = attribution.ErrInvalidAmount
	// ErrCommissionTermsInvalid 佣金条款非法
	ErrCommissionTermsInvalid = attribution.ErrInvalidTerms

	ErrPartnerInvalid          = errors.New("partner invalid")
	ErrPartnerInactive         = errors.New("partner inactive")
	ErrCampaignInvalid         = errors.New("campaign invalid")
	ErrCampaignStatusInvalid   = errors.New("campaign status transition invalid")
	ErrCampaignHasLinks        = errors.New("campaign still has links")
	ErrLinkInvalid             = errors.New("link invalid")
	ErrShortCodeExists         = errors.New("short code already exists")
	ErrConversionInvalid       = errors.New("conversion invalid")
	ErrConversionStatusInvalid = errors.New("conversion status transition invalid")
	ErrPayoutStatusInvalid     = errors.New("payout status transition invalid")
)

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
