package shared

import (
	"strconv"
	"strings"

	"github.com/clickpath/internal/http/response"

	"github.com/gin-gonic/gin"
)

// 鉴权中间件写入的上下文键
const (
	ContextKeyOperator = "operator"
	ContextKeyRoles    = "operator_roles"
)

// OperatorRoles 读取当前操作员角色
func OperatorRoles(c *gin.Context) []string {
	value, ok := c.Get(ContextKeyRoles)
	if !ok {
		return nil
	}
	roles, ok := value.([]string)
	if !ok {
		return nil
	}
	return roles
}

// Operator 读取当前操作员标识
func Operator(c *gin.Context) string {
	return c.GetString(ContextKeyOperator)
}

// ParseParamID 解析路径中的正整数 ID，失败时直接写入错误响应。
func ParseParamID(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(id), true
}

// ParseQueryUint 解析可选的正整数查询参数，空值返回 0。
func ParseQueryUint(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(id), true
}
