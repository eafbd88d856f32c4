package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/clickpath/internal/authz"
	"github.com/clickpath/internal/config"
	"github.com/clickpath/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	generated := w2.Header().Get(requestIDHeader)
	if generated == "" {
		t.Fatalf("generated request id should not be empty")
	}
	if resp := strings.TrimSpace(generated); resp == "" {
		t.Fatalf("generated request id should not be blank")
	}
}

func decodeStatusCode(t *testing.T, w *httptest.ResponseRecorder) int {
	t.Helper()
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return resp.StatusCode
}

func setupRouterAuthz(t *testing.T) *authz.Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := authz.NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}
	return svc
}

func TestJWTAuthMiddlewareMissingSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(JWTAuthMiddleware(config.JWTConfig{}))
	r.GET("/admin/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if code := decodeStatusCode(t, w); code != 401 {
		t.Fatalf("status_code want 401 got %d", code)
	}
}

func TestAdminAuthChain(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := config.JWTConfig{SecretKey: "router-secret", ExpireHours: 1}
	svc := setupRouterAuthz(t)

	r := gin.New()
	admin := r.Group("/api/v1/admin")
	admin.Use(JWTAuthMiddleware(cfg), AdminRBACMiddleware(svc))
	admin.GET("/campaigns/:id/analytics", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status_code": 0})
	})
	admin.DELETE("/campaigns/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status_code": 0})
	})

	analystToken, _, err := service.GenerateJWT(cfg, "alice", []string{authz.RoleAnalyst})
	if err != nil {
		t.Fatalf("generate analyst token failed: %v", err)
	}
	managerToken, _, err := service.GenerateJWT(cfg, "bob", []string{authz.RoleCampaignManager})
	if err != nil {
		t.Fatalf("generate manager token failed: %v", err)
	}
	noRoleToken, _, err := service.GenerateJWT(cfg, "carol", nil)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}

	cases := []struct {
		name   string
		method string
		path   string
		header string
		want   int
	}{
		{name: "missing header", method: http.MethodGet, path: "/api/v1/admin/campaigns/1/analytics", header: "", want: 401},
		{name: "malformed header", method: http.MethodGet, path: "/api/v1/admin/campaigns/1/analytics", header: "Token abc", want: 401},
		{name: "bad token", method: http.MethodGet, path: "/api/v1/admin/campaigns/1/analytics", header: "Bearer nope", want: 401},
		{name: "analyst read", method: http.MethodGet, path: "/api/v1/admin/campaigns/1/analytics", header: "Bearer " + analystToken, want: 0},
		{name: "analyst delete", method: http.MethodDelete, path: "/api/v1/admin/campaigns/1", header: "Bearer " + analystToken, want: 403},
		{name: "manager delete", method: http.MethodDelete, path: "/api/v1/admin/campaigns/1", header: "Bearer " + managerToken, want: 0},
		{name: "no roles", method: http.MethodGet, path: "/api/v1/admin/campaigns/1/analytics", header: "Bearer " + noRoleToken, want: 403},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)
			if code := decodeStatusCode(t, w); code != tc.want {
				t.Fatalf("status_code want %d got %d", tc.want, code)
			}
		})
	}
}

func TestPostbackTokenMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/open", PostbackTokenMiddleware(config.PostbackConfig{}), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status_code": 0})
	})
	r.POST("/guarded", PostbackTokenMiddleware(config.PostbackConfig{Token: "s3cret"}), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status_code": 0})
	})

	cases := []struct {
		name  string
		path  string
		token string
		want  int
	}{
		{name: "no token configured", path: "/open", token: "", want: 0},
		{name: "missing token", path: "/guarded", token: "", want: 401},
		{name: "wrong token", path: "/guarded", token: "guess", want: 401},
		{name: "matching token", path: "/guarded", token: "s3cret", want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, tc.path, strings.NewReader("{}"))
			if tc.token != "" {
				req.Header.Set(postbackTokenHeader, tc.token)
			}
			r.ServeHTTP(w, req)
			if code := decodeStatusCode(t, w); code != tc.want {
				t.Fatalf("status_code want %d got %d", tc.want, code)
			}
		})
	}
}
