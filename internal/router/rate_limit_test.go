package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestKeyByIPAndJSONField(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		body string
		want string
	}{
		{name: "mixed case kept", body: `{"short_code":" Spring-24 "}`, want: "Spring-24|1.2.3.4"},
		{name: "lower case distinct", body: `{"short_code":"spring-24"}`, want: "spring-24|1.2.3.4"},
		{name: "missing field", body: `{"order_id":"o-1"}`, want: "1.2.3.4"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/postback/conversions", strings.NewReader(tc.body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Request.RemoteAddr = "1.2.3.4:5678"

		key := KeyByIPAndJSONField("short_code")(c)
		if key != tc.want {
			t.Fatalf("%s: key want %s got %s", tc.name, tc.want, key)
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			t.Fatalf("%s: read body after key extraction failed: %v", tc.name, err)
		}
		if string(body) != tc.body {
			t.Fatalf("%s: request body should be restored after reading field", tc.name)
		}
	}
}

func TestKeyByIPAndParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var got string
	r := gin.New()
	r.GET("/r/:code", func(c *gin.Context) {
		got = KeyByIPAndParam("code")(c)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/r/abc123", nil)
	req.RemoteAddr = "5.6.7.8:1234"
	r.ServeHTTP(w, req)

	if got != "abc123|5.6.7.8" {
		t.Fatalf("key want abc123|5.6.7.8 got %s", got)
	}
}

func TestRateLimitMiddlewareWithoutClient(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RateLimitMiddleware(nil, RateLimitRule{Name: "click", WindowSeconds: 60, MaxRequests: 1}, KeyByIP, nil))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Fatalf("expected handler response body, got %s", w.Body.String())
	}
}

func TestToInt64(t *testing.T) {
	cases := []struct {
		name  string
		input interface{}
		want  int64
		ok    bool
	}{
		{name: "int64", input: int64(10), want: 10, ok: true},
		{name: "int", input: int(11), want: 11, ok: true},
		{name: "uint8", input: uint8(12), want: 12, ok: true},
		{name: "float64", input: float64(13.9), want: 13, ok: true},
		{name: "string", input: "bad", want: 0, ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := toInt64(tc.input)
			if ok != tc.ok {
				t.Fatalf("ok want %v got %v", tc.ok, ok)
			}
			if got != tc.want {
				t.Fatalf("value want %d got %d", tc.want, got)
			}
		})
	}
}
