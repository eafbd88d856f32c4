package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	LocaleZhCN = "zh-CN"
	LocaleEnUS = "en-US"

	// DefaultLocale 默认语言
	DefaultLocale = LocaleZhCN
)

// ResolveLocale 从请求解析语言（?lang= 优先，其次 Accept-Language）
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return NormalizeLocale(lang)
	}
	header := strings.TrimSpace(c.GetHeader("Accept-Language"))
	if header == "" {
		return DefaultLocale
	}
	first := strings.SplitN(header, ",", 2)[0]
	first = strings.SplitN(first, ";", 2)[0]
	return NormalizeLocale(first)
}

// NormalizeLocale 归一化语言标识，未知语言回退到默认语言
func NormalizeLocale(locale string) string {
	normalized := strings.ToLower(strings.TrimSpace(locale))
	switch {
	case strings.HasPrefix(normalized, "zh"):
		return LocaleZhCN
	case strings.HasPrefix(normalized, "en"):
		return LocaleEnUS
	default:
		return DefaultLocale
	}
}

// T 翻译消息 key，缺失时依次回退到默认语言与 key 本身
func T(locale, key string) string {
	if messages, ok := catalog[NormalizeLocale(locale)]; ok {
		if msg, ok := messages[key]; ok {
			return msg
		}
	}
	if msg, ok := catalog[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译并格式化
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}
