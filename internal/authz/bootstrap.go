package authz

import "fmt"

// 预置角色名称
const (
	RoleSuperAdmin      = "super_admin"
	RoleAnalyst         = "analyst"
	RoleCampaignManager = "campaign_manager"
	RoleFinance         = "finance"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds 系统预置角色矩阵
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: RoleSuperAdmin,
			Policies: []Policy{
				{Object: "/admin/*", Action: "*"},
			},
		},
		{
			Role: RoleAnalyst,
			Policies: []Policy{
				{Object: "/admin/*", Action: "GET"},
			},
		},
		{
			Role:     RoleCampaignManager,
			Inherits: []string{RoleAnalyst},
			Policies: []Policy{
				{Object: "/admin/campaigns", Action: "POST"},
				{Object: "/admin/campaigns/:id", Action: "PUT"},
				{Object: "/admin/campaigns/:id", Action: "DELETE"},
				{Object: "/admin/campaigns/:id/status", Action: "PATCH"},
				{Object: "/admin/links", Action: "POST"},
				{Object: "/admin/partners", Action: "POST"},
			},
		},
		{
			Role:     RoleFinance,
			Inherits: []string{RoleAnalyst},
			Policies: []Policy{
				{Object: "/admin/conversions/:id/status", Action: "PATCH"},
				{Object: "/admin/conversions/:id/payout-status", Action: "PATCH"},
			},
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略（重复执行幂等）
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		if _, err := s.EnsureRole(seed.Role); err != nil {
			return fmt.Errorf("create builtin role failed: %w", err)
		}
		for _, parent := range seed.Inherits {
			if err := s.InheritRole(seed.Role, parent); err != nil {
				return err
			}
		}
		for _, policy := range seed.Policies {
			if NormalizeAction(policy.Action) == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if err := s.GrantRolePolicy(seed.Role, policy.Object, policy.Action); err != nil {
				return err
			}
		}
	}
	return nil
}
