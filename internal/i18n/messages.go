package i18n

var catalog = map[string]map[string]string{
	LocaleZhCN: {
		"error.bad_request":               "请求参数错误",
		"error.unauthorized":              "未授权",
		"error.forbidden":                 "无权访问",
		"error.not_found":                 "资源不存在",
		"error.internal":                  "服务器内部错误",
		"error.jwt_secret_missing":        "服务端未配置令牌密钥",
		"error.auth_header_missing":       "缺少 Authorization 请求头",
		"error.auth_header_invalid":       "Authorization 格式错误",
		"error.token_invalid":             "令牌无效或已过期",
		"error.rate_limited":              "请求过于频繁，请 %d 秒后重试",
		"error.rate_limit_unavailable":    "限流服务不可用",
		"error.postback_token_invalid":    "回传令牌无效",
		"error.campaign_not_found":        "活动不存在",
		"error.campaign_invalid":          "活动参数不合法",
		"error.campaign_status_invalid":   "活动状态不允许该变更",
		"error.campaign_has_links":        "活动下仍有推广链接，无法删除，请改为取消活动",
		"error.link_not_found":            "推广链接不存在",
		"error.partner_not_found":         "推广方不存在",
		"error.conversion_not_found":      "转化记录不存在",
		"error.conversion_invalid":        "转化参数不合法",
		"error.conversion_status_invalid": "转化状态不允许该变更",
		"error.payout_status_invalid":     "结算状态不允许该变更",
		"error.invalid_amount":            "销售金额不合法",
		"error.commission_terms_invalid":  "推广方佣金配置不合法",
		"error.analytics_fetch_failed":    "统计数据获取失败",
		"error.click_record_failed":       "点击记录失败",
		"error.conversion_record_failed":  "转化记录失败",
		"error.partner_invalid":           "推广方参数不合法",
		"error.partner_inactive":          "推广方已停用",
		"error.link_invalid":              "推广链接参数不合法",
		"error.short_code_exists":         "短码已存在",
		"error.product_not_found":         "商品不存在",
		"error.fetch_failed":              "数据获取失败",
		"error.save_failed":               "保存失败",
	},
	LocaleEnUS: {
		"error.bad_request":               "Invalid request parameters",
		"error.unauthorized":              "Unauthorized",
		"error.forbidden":                 "Forbidden",
		"error.not_found":                 "Resource not found",
		"error.internal":                  "Internal server error",
		"error.jwt_secret_missing":        "Token secret is not configured",
		"error.auth_header_missing":       "Missing Authorization header",
		"error.auth_header_invalid":       "Malformed Authorization header",
		"error.token_invalid":             "Token is invalid or expired",
		"error.rate_limited":              "Too many requests, retry in %d seconds",
		"error.rate_limit_unavailable":    "Rate limiter unavailable",
		"error.postback_token_invalid":    "Invalid postback token",
		"error.campaign_not_found":        "Campaign not found",
		"error.campaign_invalid":          "Invalid campaign parameters",
		"error.campaign_status_invalid":   "Campaign status transition not allowed",
		"error.campaign_has_links":        "Campaign still has links and cannot be deleted; cancel it instead",
		"error.link_not_found":            "Link not found",
		"error.partner_not_found":         "Partner not found",
		"error.conversion_not_found":      "Conversion not found",
		"error.conversion_invalid":        "Invalid conversion parameters",
		"error.conversion_status_invalid": "Conversion status transition not allowed",
		"error.payout_status_invalid":     "Payout status transition not allowed",
		"error.invalid_amount":            "Invalid sale amount",
		"error.commission_terms_invalid":  "Partner commission terms are invalid",
		"error.analytics_fetch_failed":    "Failed to load analytics",
		"error.click_record_failed":       "Failed to record click",
		"error.conversion_record_failed":  "Failed to record conversion",
		"error.partner_invalid":           "Invalid partner parameters",
		"error.partner_inactive":          "Partner is disabled",
		"error.link_invalid":              "Invalid link parameters",
		"error.short_code_exists":         "Short code already exists",
		"error.product_not_found":         "Product not found",
		"error.fetch_failed":              "Failed to load data",
		"error.save_failed":               "Failed to save",
	},
}
