package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}
	return svc
}

func TestAnalystCanOnlyRead(t *testing.T) {
	svc := setupAuthzServiceTest(t)

	allow, err := svc.EnforceRoles([]string{RoleAnalyst}, "/api/v1/admin/campaigns/:id/analytics", "get")
	if err != nil {
		t.Fatalf("enforce allow failed: %v", err)
	}
	if !allow {
		t.Fatalf("analyst should read campaign analytics")
	}

	allow, err = svc.EnforceRoles([]string{RoleAnalyst}, "/api/v1/admin/campaigns/:id", "DELETE")
	if err != nil {
		t.Fatalf("enforce deny failed: %v", err)
	}
	if allow {
		t.Fatalf("analyst must not delete campaigns")
	}
}

func TestInheritedRolesGrantReadAccess(t *testing.T) {
	svc := setupAuthzServiceTest(t)

	cases := []struct {
		role   string
		object string
		action string
		want   bool
	}{
		{RoleCampaignManager, "/api/v1/admin/campaigns", "GET", true},
		{RoleCampaignManager, "/api/v1/admin/campaigns/:id/status", "PATCH", true},
		{RoleCampaignManager, "/api/v1/admin/conversions/:id/payout-status", "PATCH", false},
		{RoleFinance, "/api/v1/admin/conversions/:id/payout-status", "PATCH", true},
		{RoleFinance, "/api/v1/admin/campaigns", "POST", false},
		{RoleSuperAdmin, "/api/v1/admin/campaigns/:id", "DELETE", true},
	}
	for _, tc := range cases {
		allow, err := svc.EnforceRoles([]string{tc.role}, tc.object, tc.action)
		if err != nil {
			t.Fatalf("enforce %s %s %s failed: %v", tc.role, tc.action, tc.object, err)
		}
		if allow != tc.want {
			t.Fatalf("enforce %s %s %s want %v got %v", tc.role, tc.action, tc.object, tc.want, allow)
		}
	}
}

func TestEnforceRolesIgnoresUnknownAndReservedRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)

	allow, err := svc.EnforceRoles([]string{"", "__anchor__", "ghost"}, "/api/v1/admin/campaigns", "GET")
	if err != nil {
		t.Fatalf("enforce failed: %v", err)
	}
	if allow {
		t.Fatalf("unknown roles must not be allowed")
	}
	allow, err = svc.EnforceRoles(nil, "/api/v1/admin/campaigns", "GET")
	if err != nil || allow {
		t.Fatalf("empty roles must be denied, allow=%v err=%v", allow, err)
	}
}

func TestPoliciesForRolesIncludesInherited(t *testing.T) {
	svc := setupAuthzServiceTest(t)

	policies, err := svc.PoliciesForRoles([]string{RoleFinance})
	if err != nil {
		t.Fatalf("policies for roles failed: %v", err)
	}
	found := map[string]bool{}
	for _, policy := range policies {
		found[policy.Subject+" "+policy.Action+" "+policy.Object] = true
	}
	if !found["role:analyst GET /admin/*"] {
		t.Fatalf("inherited analyst policy missing: %+v", policies)
	}
	if !found["role:finance PATCH /admin/conversions/:id/status"] {
		t.Fatalf("finance policy missing: %+v", policies)
	}
}

func TestBootstrapIsIdempotent(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("second bootstrap failed: %v", err)
	}
	policies, err := svc.PoliciesForRoles([]string{RoleSuperAdmin})
	if err != nil {
		t.Fatalf("policies failed: %v", err)
	}
	if len(policies) != 1 {
		t.Fatalf("super admin should have exactly one policy, got %+v", policies)
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "", want: "/"},
		{input: "/api/v1", want: "/"},
		{input: "/api/v1/admin/campaigns", want: "/admin/campaigns"},
		{input: "admin/links", want: "/admin/links"},
	}
	for _, tc := range cases {
		if got := NormalizeObject(tc.input); got != tc.want {
			t.Fatalf("NormalizeObject(%q) want %q got %q", tc.input, tc.want, got)
		}
	}
}
