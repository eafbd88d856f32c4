package shared

import (
	"errors"

	"github.com/clickpath/internal/http/response"
	"github.com/clickpath/internal/service"

	"github.com/gin-gonic/gin"
)

// MappedError 定义业务错误到接口错误响应的映射关系。
type MappedError struct {
	Target error
	Code   int
	Key    string
}

// RespondMappedError 按规则顺序匹配业务错误，未命中时使用兜底响应并记录原始错误。
func RespondMappedError(c *gin.Context, err error, rules []MappedError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.Target) {
			RespondError(c, rule.Code, rule.Key, nil)
			return
		}
	}
	RespondError(c, fallbackCode, fallbackKey, err)
}

// ConcatMappedErrors 合并多组映射规则。
func ConcatMappedErrors(groups ...[]MappedError) []MappedError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]MappedError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

// NotFoundRule 资源不存在映射
func NotFoundRule(key string) []MappedError {
	return []MappedError{{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: key}}
}

// ConversionErrorRules 转化记录通用映射
var ConversionErrorRules = []MappedError{
	{Target: service.ErrInvalidAmount, Code: response.CodeBadRequest, Key: "error.invalid_amount"},
	{Target: service.ErrConversionInvalid, Code: response.CodeBadRequest, Key: "error.conversion_invalid"},
	{Target: service.ErrCommissionTermsInvalid, Code: response.CodeConflict, Key: "error.commission_terms_invalid"},
	{Target: service.ErrPartnerInactive, Code: response.CodeConflict, Key: "error.partner_inactive"},
}
