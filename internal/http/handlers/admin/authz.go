package admin

import (
	handlershared "github.com/clickpath/internal/http/handlers/shared"
	"github.com/clickpath/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetMyPolicies 当前操作员的有效权限（含继承角色）
func (h *Handler) GetMyPolicies(c *gin.Context) {
	roles := handlershared.OperatorRoles(c)
	policies, err := h.AuthzService.PoliciesForRoles(roles)
	if err != nil {
		respondError(c, response.CodeInternal, "error.fetch_failed", err)
		return
	}
	response.Success(c, gin.H{
		"operator": handlershared.Operator(c),
		"roles":    roles,
		"policies": policies,
	})
}
