package service

import (
	"strings"

	"github.com/clickpath/internal/constants"
)

var (
	botMarkers    = []string{"bot", "crawler", "spider", "slurp", "curl/", "wget/", "python-requests", "headlesschrome", "facebookexternalhit"}
	tabletMarkers = []string{"ipad", "tablet", "kindle", "silk/", "playbook"}
	mobileMarkers = []string{"mobi", "iphone", "ipod", "android", "windows phone", "blackberry", "opera mini"}
)

// ClassifyDevice 根据 User-Agent 粗略识别设备类型，空 UA 返回空字符串
func ClassifyDevice(userAgent string) string {
	ua := strings.ToLower(strings.TrimSpace(userAgent))
	if ua == "" {
		return ""
	}
	if containsAny(ua, botMarkers) {
		return constants.DeviceTypeBot
	}
	if containsAny(ua, tabletMarkers) {
		return constants.DeviceTypeTablet
	}
	// Android 平板的 UA 不带 Mobile 标记
	if strings.Contains(ua, "android") && !strings.Contains(ua, "mobile") {
		return constants.DeviceTypeTablet
	}
	if containsAny(ua, mobileMarkers) {
		return constants.DeviceTypeMobile
	}
	return constants.DeviceTypeDesktop
}

// normalizeDeviceType 校验调用方传入的设备类型
func normalizeDeviceType(raw string) string {
	switch value := strings.ToLower(strings.TrimSpace(raw)); value {
	case constants.DeviceTypeDesktop, constants.DeviceTypeMobile, constants.DeviceTypeTablet, constants.DeviceTypeBot:
		return value
	default:
		return ""
	}
}

func containsAny(s string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}
