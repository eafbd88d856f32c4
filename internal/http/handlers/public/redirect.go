package public

import (
	"errors"
	"net/http"
	"strings"

	"github.com/clickpath/internal/http/response"
	"github.com/clickpath/internal/service"

	"github.com/gin-gonic/gin"
)

// 可选的客户端上报头，前置代理已识别设备或国家时透传
const (
	deviceTypeHeader  = "X-Device-Type"
	countryCodeHeader = "X-Country-Code"
)

// RedirectLink 记录点击并跳转到落地页
func (h *Handler) RedirectLink(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		respondError(c, response.CodeNotFound, "error.link_not_found", nil)
		return
	}

	result, err := h.ClickService.Track(service.TrackClickInput{
		ShortCode:   code,
		IPAddress:   c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
		Referrer:    c.Request.Referer(),
		DeviceType:  c.GetHeader(deviceTypeHeader),
		CountryCode: c.GetHeader(countryCodeHeader),
	})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.link_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.click_record_failed", err)
		return
	}

	requestLog(c).Debugw("link_click_tracked",
		"link_id", result.Link.ID,
		"click_id", result.Click.ID,
	)
	c.Header("Cache-Control", "no-store")
	c.Redirect(http.StatusFound, result.Link.DestinationURL)
}
