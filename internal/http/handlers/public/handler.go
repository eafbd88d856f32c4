package public

import "github.com/clickpath/internal/provider"

// Handler 公开接口处理器入口
// 说明：该处理器仅用于跳转与转化回传等无需登录的接口。
type Handler struct {
	*provider.Container
}

// New 创建公开接口处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
